package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibpage/internal/publications"
	"github.com/matsen/bibpage/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildFormat string
	buildDB     string
	buildJSONL  string
)

func init() {
	buildCmd.Flags().StringVar(&buildFormat, "format", FormatJSON, "Output format: json or yaml")
	buildCmd.Flags().StringVar(&buildDB, "db", "", "Also write an SQLite snapshot to this path")
	buildCmd.Flags().StringVar(&buildJSONL, "jsonl", "", "Also write a JSONL stream to this path")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the publication lists",
	Long: `Build the three publication lists from the configured bibliography.

A bibliography that cannot be parsed produces a warning and no lists;
use "bibpage check" to see the error. Without a configured bibliography
build does nothing.

Examples:
  bibpage build --src refs.bib
  bibpage build --format yaml > _data/publications.yml
  bibpage build --db site.db --jsonl site.jsonl`,
	RunE: runBuild,
}

func runBuild(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	// No source configured is a no-op, like a bibliography that fails to parse.
	src := cfg.PublicationsSrc
	buckets := publications.Generate(src, logger)
	if buckets == nil {
		if humanOutput {
			fmt.Fprintln(os.Stderr, "No publication lists built")
			return nil
		}
		return outputJSON(StatusResponse{Status: "skipped", Path: src})
	}

	dbPath := buildDB
	if dbPath == "" {
		dbPath = cfg.DBPath
	}
	jsonlPath := buildJSONL
	if jsonlPath == "" {
		jsonlPath = cfg.JSONLPath
	}

	if dbPath != "" {
		if err := writeSnapshot(dbPath, buckets); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		logger.Debug("wrote sqlite snapshot", zap.String("path", dbPath))
	}
	if jsonlPath != "" {
		if err := storage.WriteJSONL(jsonlPath, buckets); err != nil {
			exitWithError(ExitError, "writing jsonl: %v", err)
		}
		logger.Debug("wrote jsonl stream", zap.String("path", jsonlPath))
	}

	if humanOutput {
		printBucketsHuman(os.Stdout, buckets)
		return nil
	}
	if err := outputFormatted(buildFormat, buckets); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	return nil
}

func writeSnapshot(path string, b *publications.Buckets) error {
	db, err := storage.OpenDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.ReplaceAll(b); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}
	return nil
}
