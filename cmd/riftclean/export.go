package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riftlab/predict-api/internal/dataset"
	"github.com/riftlab/predict-api/internal/features"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Dump the dataset as CSV with the stable column header",
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "csv", "dataset.csv", "output CSV path")
}

func runExport(cmd *cobra.Command, args []string) error {
	store, err := dataset.Open(dbPath, features.NewSchema())
	if err != nil {
		return fmt.Errorf("open dataset: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	count, err := store.Count(ctx)
	if err != nil {
		return fmt.Errorf("count rows: %w", err)
	}

	if err := exportCSV(ctx, store, exportOut); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Exported %d rows to %s\n", count, exportOut)
	return nil
}

func exportCSV(ctx context.Context, store *dataset.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := store.ExportCSV(ctx, f); err != nil {
		return fmt.Errorf("export csv: %w", err)
	}
	return nil
}
