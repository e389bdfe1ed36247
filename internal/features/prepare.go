package features

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrEmptyBatch is returned when there are no rows to transform.
var ErrEmptyBatch = errors.New("empty batch: no rows to transform")

// Resolver maps a champion name to its category tag.
type Resolver interface {
	Resolve(name string) (string, error)
}

// Matrix is a prepared numeric feature matrix with its column names.
type Matrix struct {
	Columns []string
	Rows    [][]float64
}

// Width returns the number of feature columns.
func (m *Matrix) Width() int {
	return len(m.Columns)
}

// Preparer turns batches of flat feature rows into the numeric matrix a
// trained classifier expects. Numeric columns are scaled to zero mean and
// unit variance over the batch; composition and carry columns are one-hot
// encoded against the full category universe declared at construction, so
// the output width never depends on which categories a batch happens to
// contain.
type Preparer struct {
	schema   *Schema
	resolver Resolver
	universe []string
	catIndex map[string]int
}

// NewPreparer builds a preparer over the given schema and category
// universe. The universe is typically champions.Table.Categories(); it is
// copied and sorted so encoded column order is deterministic.
func NewPreparer(schema *Schema, resolver Resolver, universe []string) *Preparer {
	u := make([]string, len(universe))
	copy(u, universe)
	sort.Strings(u)

	idx := make(map[string]int, len(u))
	for i, tag := range u {
		idx[tag] = i
	}

	return &Preparer{
		schema:   schema,
		resolver: resolver,
		universe: u,
		catIndex: idx,
	}
}

// Universe returns the sorted category universe.
func (p *Preparer) Universe() []string {
	out := make([]string, len(p.universe))
	copy(out, p.universe)
	return out
}

// Prepare transforms a batch of flat rows into the prepared matrix: scaled
// numeric columns first (lexicographic order), then one one-hot block per
// categorical column with categories in sorted order. The output has exactly
// one row per input row. Resolution failures surface with the row and
// column that triggered them; they are never zero-filled.
func (p *Preparer) Prepare(rows []Row) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	numCols := p.schema.NumericColumns()
	catCols := p.schema.CategoricalColumns()

	numeric, err := p.extractNumeric(rows, numCols, p.schema)
	if err != nil {
		return nil, err
	}
	standardize(numeric)

	// Resolve every categorical cell to its category index up front so a
	// bad cell fails the batch before any output is assembled.
	catIdx := make([][]int, len(rows))
	for i, row := range rows {
		catIdx[i] = make([]int, len(catCols))
		for j, col := range catCols {
			name, ok := row[col].(string)
			if !ok {
				return nil, fmt.Errorf("row %d column %q: expected champion name, got %T", i, col, row[col])
			}
			tag, err := p.resolver.Resolve(name)
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i, col, err)
			}
			k, ok := p.catIndex[tag]
			if !ok {
				return nil, fmt.Errorf("row %d column %q: category %q outside the declared universe", i, col, tag)
			}
			catIdx[i][j] = k
		}
	}

	columns := make([]string, 0, len(numCols)+len(catCols)*len(p.universe))
	columns = append(columns, numCols...)
	for _, col := range catCols {
		for _, tag := range p.universe {
			columns = append(columns, col+"="+tag)
		}
	}

	out := make([][]float64, len(rows))
	for i := range rows {
		vec := make([]float64, 0, len(columns))
		vec = append(vec, numeric[i]...)
		hot := make([]float64, len(catCols)*len(p.universe))
		for j, k := range catIdx[i] {
			hot[j*len(p.universe)+k] = 1
		}
		vec = append(vec, hot...)
		out[i] = vec
	}

	return &Matrix{Columns: columns, Rows: out}, nil
}

// PrepareNumeric is the variant for schemas served without composition or
// carry columns: every column is treated as numeric and scaled; rows must
// carry exactly the schema's numeric column set.
func (p *Preparer) PrepareNumeric(rows []Row) (*Matrix, error) {
	if len(rows) == 0 {
		return nil, ErrEmptyBatch
	}

	numCols := p.schema.NumericColumns()
	numericOnly := &Schema{numeric: numCols, all: make(map[string]bool, len(numCols))}
	for _, c := range numCols {
		numericOnly.all[c] = true
	}

	numeric, err := p.extractNumeric(rows, numCols, numericOnly)
	if err != nil {
		return nil, err
	}
	standardize(numeric)

	columns := make([]string, len(numCols))
	copy(columns, numCols)
	return &Matrix{Columns: columns, Rows: numeric}, nil
}

// extractNumeric validates each row against the given schema and pulls the
// numeric columns into a dense row-major block.
func (p *Preparer) extractNumeric(rows []Row, numCols []string, schema *Schema) ([][]float64, error) {
	out := make([][]float64, len(rows))
	for i, row := range rows {
		if err := schema.Validate(row); err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = make([]float64, len(numCols))
		for j, col := range numCols {
			v, err := toFloat(row[col])
			if err != nil {
				return nil, fmt.Errorf("row %d column %q: %w", i, col, err)
			}
			out[i][j] = v
		}
	}
	return out, nil
}

// standardize scales each column to zero mean and unit variance in place.
// A constant column keeps its zero-centered values (scale 1) instead of
// dividing by zero.
func standardize(block [][]float64) {
	if len(block) == 0 {
		return
	}
	n := float64(len(block))
	width := len(block[0])

	for j := 0; j < width; j++ {
		var sum float64
		for i := range block {
			sum += block[i][j]
		}
		mean := sum / n

		var sq float64
		for i := range block {
			d := block[i][j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / n)
		if std == 0 {
			std = 1
		}

		for i := range block {
			block[i][j] = (block[i][j] - mean) / std
		}
	}
}

func toFloat(v any) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("expected numeric value, got %T", v)
	}
}
