package dataset

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/riftlab/predict-api/internal/features"
)

func testRow(schema *features.Schema, base float64) features.Row {
	row := make(features.Row)
	for i, col := range schema.NumericColumns() {
		row[col] = base + float64(i)
	}
	for _, col := range schema.CategoricalColumns() {
		row[col] = "Ashe"
	}
	return row
}

func openTestStore(t *testing.T) (*Store, *features.Schema) {
	t.Helper()
	schema := features.NewSchema()
	store, err := Open(filepath.Join(t.TempDir(), "rows.db"), schema)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, schema
}

func TestInsertAndCount(t *testing.T) {
	store, schema := openTestStore(t)
	ctx := context.Background()

	records := []RowRecord{
		{MatchID: "NA1_4034399637", Row: testRow(schema, 10)},
		{MatchID: "NA1_4034399638", Row: testRow(schema, 20)},
	}
	if err := store.InsertRows(ctx, records); err != nil {
		t.Fatalf("InsertRows failed: %v", err)
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Count = %d, want 2", n)
	}
}

func TestInsertRows_RejectsBadRowAtomically(t *testing.T) {
	store, schema := openTestStore(t)
	ctx := context.Background()

	bad := testRow(schema, 0)
	delete(bad, "gameLengthMin")

	err := store.InsertRows(ctx, []RowRecord{
		{MatchID: "ok", Row: testRow(schema, 1)},
		{MatchID: "bad", Row: bad},
	})
	if err == nil {
		t.Fatal("InsertRows accepted a row violating the schema")
	}

	n, err := store.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if n != 0 {
		t.Errorf("Count = %d after rejected batch, want 0", n)
	}
}

func TestExportCSV(t *testing.T) {
	store, schema := openTestStore(t)
	ctx := context.Background()

	if err := store.InsertRows(ctx, []RowRecord{
		{MatchID: "NA1_1", Row: testRow(schema, 5)},
	}); err != nil {
		t.Fatalf("InsertRows failed: %v", err)
	}

	var sb strings.Builder
	if err := store.ExportCSV(ctx, &sb); err != nil {
		t.Fatalf("ExportCSV failed: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("exported %d lines, want header + 1 row", len(lines))
	}

	header := strings.Split(lines[0], ",")
	wantHeader := append([]string{"match_id"}, schema.Columns()...)
	if len(header) != len(wantHeader) {
		t.Fatalf("header has %d columns, want %d", len(header), len(wantHeader))
	}
	for i := range header {
		if header[i] != wantHeader[i] {
			t.Errorf("header[%d] = %q, want %q", i, header[i], wantHeader[i])
		}
	}

	fields := strings.Split(lines[1], ",")
	if fields[0] != "NA1_1" {
		t.Errorf("match_id field = %q, want NA1_1", fields[0])
	}
	if fields[1] != "5" {
		t.Errorf("first feature field = %q, want 5", fields[1])
	}
}
