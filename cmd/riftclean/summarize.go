package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/riftlab/predict-api/internal/aggregate"
	"github.com/riftlab/predict-api/internal/features"
	"github.com/riftlab/predict-api/internal/models"
)

var summarizeFlat bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize <match.json>",
	Short: "Print the nested summary for one raw match document",
	Args:  cobra.ExactArgs(1),
	RunE:  runSummarize,
}

func init() {
	summarizeCmd.Flags().BoolVar(&summarizeFlat, "flat", false, "print the flat feature row instead of the nested summary")
}

func runSummarize(cmd *cobra.Command, args []string) error {
	match, err := readMatch(args[0])
	if err != nil {
		return err
	}

	summary, err := aggregate.Aggregate(match)
	if err != nil {
		return fmt.Errorf("aggregate %s: %w", args[0], err)
	}

	var out any = summary
	if summarizeFlat {
		row, err := features.Flatten(summary)
		if err != nil {
			return fmt.Errorf("flatten %s: %w", args[0], err)
		}
		out = row
	}

	payload, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, string(payload))
	return nil
}

func readMatch(path string) (*models.RawMatch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read match: %w", err)
	}
	var match models.RawMatch
	if err := json.Unmarshal(data, &match); err != nil {
		return nil, fmt.Errorf("parse match %s: %w", path, err)
	}
	return &match, nil
}
