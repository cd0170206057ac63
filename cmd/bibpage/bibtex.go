package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibpage/internal/bibtex"
	"github.com/matsen/bibpage/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(bibtexCmd)
}

var bibtexCmd = &cobra.Command{
	Use:   "bibtex [key...]",
	Short: "Print standalone BibTeX for entries",
	Long: `Print standalone BibTeX for the given keys, or for the whole
bibliography (including its @preamble) when no key is given.

Examples:
  bibpage bibtex
  bibpage bibtex Smith2020 Doe2021 > subset.bib`,
	RunE: runBibtex,
}

func runBibtex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	src := mustGetSource(cfg)

	bib, err := bibtex.ParseFile(src)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	// BibTeX is always text output, never JSON
	if len(args) == 0 {
		if err := bibtex.Write(os.Stdout, bib); err != nil {
			exitWithError(ExitError, "%v", err)
		}
		return nil
	}

	recs := make([]*reference.Record, 0, len(args))
	for _, key := range args {
		rec, ok := bib.Lookup(key)
		if !ok {
			exitWithError(ExitError, "unknown key: %s", key)
		}
		recs = append(recs, rec)
	}
	fmt.Print(bibtex.ToBibTeXList(recs))
	return nil
}
