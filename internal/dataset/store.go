// Package dataset persists flattened match rows in SQLite so batch
// ingestion runs can be exported later as training data.
package dataset

import (
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/riftlab/predict-api/internal/features"
)

// RowRecord is one flattened match bound for the store.
type RowRecord struct {
	ID      string // assigned if empty
	MatchID string
	Row     features.Row
}

// Store wraps the SQLite database holding flattened rows. The table layout
// is derived from the fixed feature schema: one column per feature, REAL
// for numeric columns, TEXT for composition and carry columns.
type Store struct {
	conn      *sql.DB
	schema    *features.Schema
	cols      []string
	insertSQL string
}

// Open opens (or creates) the dataset database at the given path and
// applies the schema.
func Open(path string, schema *features.Schema) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_journal_mode=WAL", path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open dataset db: %w", err)
	}

	s := &Store{conn: conn, schema: schema, cols: schema.Columns()}
	if err := s.init(); err != nil {
		conn.Close()
		return nil, err
	}
	s.insertSQL = s.buildInsertSQL()
	return s, nil
}

func (s *Store) init() error {
	numeric := make(map[string]bool)
	for _, c := range s.schema.NumericColumns() {
		numeric[c] = true
	}

	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS match_rows (\n")
	b.WriteString("\tid TEXT PRIMARY KEY,\n")
	b.WriteString("\tmatch_id TEXT NOT NULL,\n")
	b.WriteString("\tingested_at TEXT NOT NULL")
	for _, col := range s.cols {
		kind := "TEXT"
		if numeric[col] {
			kind = "REAL"
		}
		fmt.Fprintf(&b, ",\n\t%q %s", col, kind)
	}
	b.WriteString("\n)")

	if _, err := s.conn.Exec(b.String()); err != nil {
		return fmt.Errorf("apply dataset schema: %w", err)
	}
	return nil
}

func (s *Store) buildInsertSQL() string {
	var b strings.Builder
	b.WriteString("INSERT INTO match_rows (id, match_id, ingested_at")
	for _, col := range s.cols {
		fmt.Fprintf(&b, ", %q", col)
	}
	b.WriteString(") VALUES (?, ?, ?")
	b.WriteString(strings.Repeat(", ?", len(s.cols)))
	b.WriteString(")")
	return b.String()
}

// InsertRows writes a batch of rows in one transaction. Every row is
// validated against the fixed schema before anything is written, so a bad
// row rejects the batch instead of leaving it half-applied.
func (s *Store) InsertRows(ctx context.Context, records []RowRecord) error {
	if len(records) == 0 {
		return nil
	}
	for i, rec := range records {
		if err := s.schema.Validate(rec.Row); err != nil {
			return fmt.Errorf("record %d (match %s): %w", i, rec.MatchID, err)
		}
	}

	tx, err := s.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin dataset tx: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, s.insertSQL)
	if err != nil {
		return fmt.Errorf("prepare dataset insert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		args := make([]any, 0, len(s.cols)+3)
		args = append(args, id, rec.MatchID, now)
		for _, col := range s.cols {
			args = append(args, rec.Row[col])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row for match %s: %w", rec.MatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit dataset tx: %w", err)
	}
	return nil
}

// Count reports how many rows the store holds.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM match_rows").Scan(&n); err != nil {
		return 0, fmt.Errorf("count dataset rows: %w", err)
	}
	return n, nil
}

// ExportCSV streams the whole dataset with the stable column header:
// match_id first, then the schema columns in matrix order.
func (s *Store) ExportCSV(ctx context.Context, w io.Writer) error {
	var b strings.Builder
	b.WriteString("SELECT match_id")
	for _, col := range s.cols {
		fmt.Fprintf(&b, ", %q", col)
	}
	b.WriteString(" FROM match_rows ORDER BY ingested_at, id")

	rows, err := s.conn.QueryContext(ctx, b.String())
	if err != nil {
		return fmt.Errorf("query dataset rows: %w", err)
	}
	defer rows.Close()

	cw := csv.NewWriter(w)
	header := append([]string{"match_id"}, s.cols...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	vals := make([]any, len(header))
	ptrs := make([]any, len(header))
	for i := range vals {
		ptrs[i] = &vals[i]
	}

	record := make([]string, len(header))
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return fmt.Errorf("scan dataset row: %w", err)
		}
		for i, v := range vals {
			switch x := v.(type) {
			case nil:
				record[i] = ""
			case []byte:
				record[i] = string(x)
			case float64:
				record[i] = strconv.FormatFloat(x, 'g', -1, 64)
			default:
				record[i] = fmt.Sprint(x)
			}
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate dataset rows: %w", err)
	}

	cw.Flush()
	return cw.Error()
}

// Ping checks the underlying connection; used by the readiness probe.
func (s *Store) Ping(ctx context.Context) error {
	return s.conn.PingContext(ctx)
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	return s.conn.Close()
}
