package main

import (
	"fmt"

	"github.com/matsen/bibpage/internal/storage"
	"github.com/spf13/cobra"
)

// DefaultSearchLimit is the default limit for search results.
const DefaultSearchLimit = 50

var (
	searchDB    string
	searchLimit int
)

func init() {
	searchCmd.Flags().StringVar(&searchDB, "db", "", "SQLite snapshot to search (default db_path)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", DefaultSearchLimit, "Maximum results")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search a snapshot written by build --db",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	path := searchDB
	if path == "" {
		path = mustLoadConfig().DBPath
	}
	if path == "" {
		exitWithError(ExitConfigError, "no snapshot: pass --db or set db_path")
	}

	db, err := storage.OpenDB(path)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	defer db.Close()

	results, err := db.Search(args[0], searchLimit)
	if err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if results == nil {
		results = []storage.SearchResult{}
	}

	if humanOutput {
		for i, r := range results {
			fmt.Printf("%d. [%s] %s\n", i+1, r.Key, truncateString(singleLine(r.Text), ListTextMaxLen))
		}
		if len(results) == 0 {
			fmt.Println("No matches")
		}
		return nil
	}
	return outputJSON(results)
}
