package main

import (
	"fmt"

	"github.com/matsen/bibpage/internal/publications"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show <key>",
	Short: "Show the formatted citation for one entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runShow,
}

// ShowResponse is the response for the show command.
type ShowResponse struct {
	Bucket publications.Bucket `json:"bucket"`
	publications.Entry
}

func runShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	src := mustGetSource(cfg)

	buckets, _, err := publications.Load(src)
	if err != nil {
		exitWithError(ExitDataError, "%v", err)
	}

	entry, bucket, err := buckets.Find(args[0])
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("%s (%s, %s)\n", entry.Key, bucket, entry.SortKey.Year)
		fmt.Println(entry.Text)
		return nil
	}
	return outputJSON(ShowResponse{Bucket: bucket, Entry: entry})
}
