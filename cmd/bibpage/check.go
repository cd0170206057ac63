package main

import (
	"errors"
	"fmt"

	"github.com/matsen/bibpage/internal/bibtex"
	"github.com/matsen/bibpage/internal/publications"
	"github.com/matsen/bibpage/internal/reference"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the bibliography parses",
	Long: `Parse the bibliography strictly and report problems.

A parse failure exits with code 3. Entries without a usable year or
without authors are reported as issues but do not fail the check.`,
	RunE: runCheck,
}

// CheckResult is the response for the check command.
type CheckResult struct {
	Status       string       `json:"status"`
	Entries      int          `json:"entries"`
	Publications int          `json:"publications"`
	Reports      int          `json:"reports"`
	Unpublished  int          `json:"unpublished"`
	Issues       []CheckIssue `json:"issues"`
}

// CheckIssue represents a single issue found during check.
type CheckIssue struct {
	Type string `json:"type"`
	Key  string `json:"key"`
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	src := mustGetSource(cfg)

	buckets, bib, err := publications.Load(src)
	if err != nil {
		var perr *bibtex.ParseError
		if errors.As(err, &perr) {
			exitWithError(ExitDataError, "%v", perr)
		}
		exitWithError(ExitError, "reading bibliography: %v", err)
	}

	result := CheckResult{
		Status:       "ok",
		Entries:      bib.Len(),
		Publications: len(buckets.Publications),
		Reports:      len(buckets.Reports),
		Unpublished:  len(buckets.Unpublished),
		Issues:       checkRecords(bib.Entries),
	}
	if len(result.Issues) > 0 {
		result.Status = "issues"
	}

	if humanOutput {
		fmt.Printf("%d entries: %d publications, %d reports, %d unpublished\n",
			result.Entries, result.Publications, result.Reports, result.Unpublished)
		for _, issue := range result.Issues {
			fmt.Printf("  %s: %s\n", issue.Type, issue.Key)
		}
		return nil
	}
	return outputJSON(result)
}

// checkRecords reports entries that format but sort or render poorly.
func checkRecords(recs []*reference.Record) []CheckIssue {
	issues := []CheckIssue{}
	for _, rec := range recs {
		if !publications.ParseYear(rec.Get("year")).Valid {
			issues = append(issues, CheckIssue{Type: "missing_year", Key: rec.Key})
		}
		if len(rec.Authors) == 0 && len(rec.Editors) == 0 {
			issues = append(issues, CheckIssue{Type: "missing_author", Key: rec.Key})
		}
	}
	return issues
}
