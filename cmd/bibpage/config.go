package main

import (
	"fmt"

	"github.com/matsen/bibpage/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Show the effective configuration after the config file, .env and
environment overrides have been applied.

Keys:
  publications_src  BibTeX file to read
  db_path           SQLite snapshot written by build
  jsonl_path        JSONL stream written by build`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a value in the config file",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

// UpdateResponse is the response for config set.
type UpdateResponse struct {
	Status string `json:"status"`
	Key    string `json:"key"`
	Value  string `json:"value"`
	Path   string `json:"path"`
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	if humanOutput {
		fmt.Printf("publications_src: %s\n", cfg.PublicationsSrc)
		fmt.Printf("db_path: %s\n", cfg.DBPath)
		fmt.Printf("jsonl_path: %s\n", cfg.JSONLPath)
		return nil
	}
	return outputJSON(cfg)
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}

	// Edit the file itself so environment overrides are not persisted.
	cfg, err := config.LoadFile(path)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}

	key, value := args[0], args[1]
	if err := setConfigKey(cfg, key, value); err != nil {
		exitWithError(ExitError, "%v", err)
	}
	if err := cfg.Save(path); err != nil {
		exitWithError(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Set %s = %s in %s\n", key, value, path)
		return nil
	}
	return outputJSON(UpdateResponse{Status: "updated", Key: key, Value: value, Path: path})
}

func setConfigKey(cfg *config.Config, key, value string) error {
	switch key {
	case "publications_src":
		cfg.PublicationsSrc = value
	case "db_path":
		cfg.DBPath = value
	case "jsonl_path":
		cfg.JSONLPath = value
	default:
		return fmt.Errorf("unknown config key %q (valid: publications_src, db_path, jsonl_path)", key)
	}
	return nil
}
