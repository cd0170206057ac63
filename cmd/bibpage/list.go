package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/matsen/bibpage/internal/publications"
	"github.com/matsen/bibpage/internal/storage"
	"github.com/spf13/cobra"
)

var (
	listFormat string
	listDB     string
	listJSONL  string
)

func init() {
	listCmd.Flags().StringVar(&listFormat, "format", FormatJSON, "Output format: json or yaml")
	listCmd.Flags().StringVar(&listDB, "db", "", "SQLite snapshot to read (default db_path)")
	listCmd.Flags().StringVar(&listJSONL, "jsonl", "", "JSONL stream to read instead of a snapshot")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the lists stored by a previous build",
	Long: `Print the publication lists stored by "bibpage build --db" or
"bibpage build --jsonl", without reading the bibliography again.

Examples:
  bibpage list --db site.db
  bibpage list --jsonl site.jsonl --format yaml`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func runList(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	var buckets *publications.Buckets
	var count int
	switch {
	case listJSONL != "":
		buckets, count = mustReadJSONL(listJSONL)
	case listDB != "":
		buckets, count = mustReadSnapshot(listDB)
	case cfg.DBPath != "":
		buckets, count = mustReadSnapshot(cfg.DBPath)
	case cfg.JSONLPath != "":
		buckets, count = mustReadJSONL(cfg.JSONLPath)
	default:
		exitWithError(ExitConfigError, "no stored lists: pass --db or --jsonl, or set db_path")
	}

	if humanOutput {
		printBucketsHuman(os.Stdout, buckets)
		fmt.Printf("%d entries\n", count)
		return nil
	}
	if err := outputFormatted(listFormat, buckets); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return nil
}

func mustReadSnapshot(path string) (*publications.Buckets, int) {
	// OpenDB would create an empty database.
	if _, err := os.Stat(path); err != nil {
		exitWithError(ExitConfigError, "no snapshot at %s", path)
	}

	db, err := storage.OpenDB(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	buckets, err := db.Load()
	if err != nil {
		exitWithError(ExitError, "reading snapshot: %v", err)
	}
	count, err := db.Count()
	if err != nil {
		exitWithError(ExitError, "counting entries: %v", err)
	}
	return buckets, count
}

func mustReadJSONL(path string) (*publications.Buckets, int) {
	buckets, err := storage.ReadJSONL(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			exitWithError(ExitConfigError, "no jsonl stream at %s", path)
		}
		exitWithError(ExitError, "reading jsonl: %v", err)
	}
	return buckets, buckets.Len()
}
