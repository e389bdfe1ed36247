package champions

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func testEntries() map[string]Entry {
	return map[string]Entry{
		"Ashe":     {Key: 22, Tags: []string{"Marksman", "Support"}},
		"Malphite": {Key: 54, Tags: []string{"Tank", "Fighter"}},
		"Lux":      {Key: 99, Tags: []string{"Mage", "Support"}},
		"Zed":      {Key: 238, Tags: []string{"Assassin"}},
		"Sett":     {Key: 875, Tags: []string{"Fighter", "Tank"}},
		"Soraka":   {Key: 16, Tags: []string{"Support", "Mage"}},
	}
}

func TestResolve(t *testing.T) {
	table, err := New(testEntries())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	tests := []struct {
		name string
		want string
	}{
		{"Ashe", "Marksman"},
		{"ashe", "Marksman"},  // case-insensitive
		{"MALPHITE", "Tank"},
		{"Soraka", "Support"}, // first tag only, secondary Mage ignored
	}

	for _, tt := range tests {
		got, err := table.Resolve(tt.name)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", tt.name, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestResolve_NotFound(t *testing.T) {
	table, err := New(testEntries())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	_, err = table.Resolve("Nonexistent Champ")
	if err == nil {
		t.Fatal("Resolve of unknown champion succeeded, want error")
	}
	var nfe *NotFoundError
	if !errors.As(err, &nfe) {
		t.Fatalf("error = %v, want *NotFoundError", err)
	}
	if nfe.Name != "Nonexistent Champ" {
		t.Errorf("NotFoundError.Name = %q, want %q", nfe.Name, "Nonexistent Champ")
	}
}

func TestCategories_SortedAndImmutable(t *testing.T) {
	table, err := New(testEntries())
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	want := []string{"Assassin", "Fighter", "Mage", "Marksman", "Support", "Tank"}
	got := table.Categories()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Categories() = %v, want %v", got, want)
	}

	// Mutating the returned slice must not affect the table.
	got[0] = "Broken"
	if again := table.Categories(); again[0] != "Assassin" {
		t.Errorf("Categories() leaked internal state: %v", again)
	}
}

func TestNew_RejectsTaglessEntry(t *testing.T) {
	entries := testEntries()
	entries["Glitch"] = Entry{Key: 999}
	if _, err := New(entries); err == nil {
		t.Fatal("New accepted an entry with no tags")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "champions.json")
	doc := `{
		"Ashe": {"key": 22, "tags": ["Marksman", "Support"]},
		"Malphite": {"key": 54, "tags": ["Tank", "Fighter"]}
	}`
	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		t.Fatalf("write table: %v", err)
	}

	table, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if table.Len() != 2 {
		t.Errorf("Len() = %d, want 2", table.Len())
	}
	if tag, _ := table.Resolve("ashe"); tag != "Marksman" {
		t.Errorf("Resolve(ashe) = %q, want Marksman", tag)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("Load of missing file succeeded")
	}
}
