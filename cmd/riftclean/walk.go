package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/riftlab/predict-api/internal/aggregate"
	"github.com/riftlab/predict-api/internal/dataset"
	"github.com/riftlab/predict-api/internal/features"
)

var (
	walkCSV         string
	walkConcurrency int
)

var walkCmd = &cobra.Command{
	Use:   "walk <match-history-dir>",
	Short: "Aggregate every match under a match-history directory",
	Long: "Walks <dir>/match_*/<id>.json files, aggregates and flattens each match, " +
		"and appends the rows to the SQLite dataset. Matches that fail to parse or " +
		"aggregate are logged and skipped.",
	Args: cobra.ExactArgs(1),
	RunE: runWalk,
}

func init() {
	walkCmd.Flags().StringVar(&walkCSV, "csv", "", "also export the dataset to this CSV file")
	walkCmd.Flags().IntVar(&walkConcurrency, "concurrency", 8, "matches aggregated in parallel")
}

func runWalk(cmd *cobra.Command, args []string) error {
	dir := args[0]

	paths, err := filepath.Glob(filepath.Join(dir, "match_*", "*.json"))
	if err != nil {
		return fmt.Errorf("scan %s: %w", dir, err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no match files under %s", dir)
	}

	var (
		mu      sync.Mutex
		records []dataset.RowRecord
		skipped int
	)

	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(walkConcurrency)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			record, err := processMatch(path)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				fmt.Fprintf(os.Stderr, "skip %s: %v\n", path, err)
				skipped++
				return nil
			}
			records = append(records, record)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if len(records) == 0 {
		return fmt.Errorf("all %d matches failed", len(paths))
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}
	store, err := dataset.Open(dbPath, features.NewSchema())
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.InsertRows(ctx, records); err != nil {
		return fmt.Errorf("insert rows: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Stored %d rows (%d matches skipped) in %s\n", len(records), skipped, dbPath)

	if walkCSV != "" {
		if err := exportCSV(ctx, store, walkCSV); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Exported dataset to %s\n", walkCSV)
	}
	return nil
}

func processMatch(path string) (dataset.RowRecord, error) {
	match, err := readMatch(path)
	if err != nil {
		return dataset.RowRecord{}, err
	}
	summary, err := aggregate.Aggregate(match)
	if err != nil {
		return dataset.RowRecord{}, err
	}
	row, err := features.Flatten(summary)
	if err != nil {
		return dataset.RowRecord{}, err
	}
	return dataset.RowRecord{MatchID: match.Metadata.MatchID, Row: row}, nil
}
