// Package main provides the bibpage CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/matsen/bibpage/internal/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	configPath  string
	srcFlag     string
	verbose     bool

	logger *zap.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "bibpage",
	Short: "Format a BibTeX bibliography for a publications page",
	Long: `bibpage reads a BibTeX file and produces three ordered lists of HTML
citations for a publications page: journal articles (publications),
reports, and unpublished work. Each list is sorted by year and venue,
most recent first.

All commands output JSON by default for integration with site generators.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("initializing logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default $XDG_CONFIG_HOME/bibpage/config.yml)")
	rootCmd.PersistentFlags().StringVar(&srcFlag, "src", "", "BibTeX file to read (overrides publications_src)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Version = Version
}

// mustLoadConfig loads configuration and applies --src, exits on error.
func mustLoadConfig() *config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		exitWithError(ExitConfigError, "loading config: %v", err)
	}
	if srcFlag != "" {
		cfg.PublicationsSrc = config.ExpandPath(srcFlag)
	}
	return cfg
}

// mustGetSource returns the configured bibliography path, exits if none.
func mustGetSource(cfg *config.Config) string {
	src, err := cfg.Source()
	if err != nil {
		if humanOutput {
			fmt.Fprintln(os.Stderr, config.HelpfulConfigMessage())
			os.Exit(ExitConfigError)
		}
		exitWithError(ExitConfigError, "%v", err)
	}
	return src
}
