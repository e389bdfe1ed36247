package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "riftclean",
	Short: "Match-history cleaning tool",
	Long:  "Aggregate exported match-history JSON dumps into flattened training rows.",
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	defaultDB := filepath.Join(mustUserHome(), ".riftclean", "dataset.db")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDB, "path to SQLite dataset")

	rootCmd.AddCommand(summarizeCmd)
	rootCmd.AddCommand(walkCmd)
	rootCmd.AddCommand(exportCmd)
}

func mustUserHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
