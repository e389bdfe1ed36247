// Package champions holds the static champion metadata table used to turn
// champion names into coarse role categories. The table is loaded once at
// process start and never mutated after, so any number of goroutines may
// resolve against it without synchronization.
package champions

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
)

// NotFoundError reports a champion name with no entry in the table.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("champion %q not found in category table", e.Name)
}

// Entry is one champion's metadata in the table document.
type Entry struct {
	Key  int      `json:"key"`
	Tags []string `json:"tags"`
}

// Table maps champion names to their primary role tag.
type Table struct {
	primary    map[string]string // lower-cased name → first tag
	categories []string          // sorted unique primary tags
}

// New builds a table from raw entries. Champions may carry several tags;
// only the first one is kept as the category. An entry with no tags at all
// is rejected up front rather than surfacing as a miss at resolve time.
func New(entries map[string]Entry) (*Table, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("category table is empty")
	}

	primary := make(map[string]string, len(entries))
	seen := make(map[string]bool)
	for name, entry := range entries {
		if len(entry.Tags) == 0 {
			return nil, fmt.Errorf("champion %q has no tags", name)
		}
		primary[strings.ToLower(name)] = entry.Tags[0]
		seen[entry.Tags[0]] = true
	}

	categories := make([]string, 0, len(seen))
	for tag := range seen {
		categories = append(categories, tag)
	}
	sort.Strings(categories)

	return &Table{primary: primary, categories: categories}, nil
}

// Load reads the table document from disk. The document is a JSON object
// mapping champion name → {key, tags}.
func Load(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read category table: %w", err)
	}

	var entries map[string]Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse category table: %w", err)
	}

	return New(entries)
}

// Resolve maps a champion name to its primary category tag. Lookup is
// case-insensitive.
func (t *Table) Resolve(name string) (string, error) {
	tag, ok := t.primary[strings.ToLower(name)]
	if !ok {
		return "", &NotFoundError{Name: name}
	}
	return tag, nil
}

// Categories returns the sorted universe of primary tags present in the
// table. Callers get a copy; the table itself stays immutable.
func (t *Table) Categories() []string {
	out := make([]string, len(t.categories))
	copy(out, t.categories)
	return out
}

// Len reports how many champions the table covers.
func (t *Table) Len() int {
	return len(t.primary)
}
