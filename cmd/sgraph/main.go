// Package main provides the sgraph CLI entry point.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/matsen/simgraph/internal/config"
	"github.com/matsen/simgraph/internal/storage"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	verbose     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// SilenceErrors is set, so cobra errors are printed here
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sgraph",
	Short: "Explore papers through a weighted similarity graph",
	Long: `sgraph builds a graph around a root paper from a similarity snapshot.

Each link carries one similarity value per metric. Slider weights decide how
the metrics are blended into link width, visibility and layout distance, and
persist between runs. Node size follows citation count, opacity follows
publication year and color follows field of study.

All commands output JSON by default. Use --human for tables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug details to stderr")
	rootCmd.Version = Version
}

// setupLogging routes slog to stderr so stdout stays machine readable.
func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// mustLoadConfig loads the global configuration, exits on error.
func mustLoadConfig() *config.GlobalConfig {
	cfg, err := config.LoadGlobalConfig()
	if err != nil {
		exitWithError(ExitConfigError, "loading config %s: %v", config.GlobalConfigPath(), err)
	}
	return cfg
}

// mustOpenState opens the state database, exits on error.
// The caller is responsible for calling Close() on the returned DB.
func mustOpenState(cfg *config.GlobalConfig) *storage.DB {
	db, err := storage.OpenDB(cfg.StatePath)
	if err != nil {
		exitWithError(ExitError, "opening state database: %v", err)
	}
	return db
}
