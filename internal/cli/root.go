// Package cli implements the thecube command-line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/thecube/internal/config"
	"github.com/SeamusWaldron/thecube/internal/logging"
	"github.com/SeamusWaldron/thecube/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath string
	dbPath     string
	verbose    bool

	prefs  config.Preferences
	logger = zerolog.Nop()
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "thecube",
	Short: "A 3x3x3 twisty puzzle in the terminal",
	Long: `thecube simulates a 3x3x3 twisty puzzle. Play it in the terminal with
mouse drags or notation keys, replay scrambles headlessly, keep a best time,
or mirror a GoCube smart cube over Bluetooth.`,
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Preferences file (default: ~/.thecube/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database file path (default: ~/.thecube/thecube.db)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// setup loads preferences and installs the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	var err error
	if prefs, err = config.Load(path); err != nil {
		return err
	}
	if dbPath != "" {
		prefs.DBPath = dbPath
	}

	level := prefs.LogLevel
	if verbose {
		level = "debug"
	}
	if logger, err = logging.Init("thecube", level, os.Stderr); err != nil {
		return err
	}
	logger.Debug().Str("config", path).Str("storage", string(prefs.Storage)).Msg("preferences loaded")
	return nil
}

// openStore opens the configured best-time backend.
func openStore() (storage.BestTimeStore, error) {
	store, err := storage.OpenBackend(prefs.Storage, prefs.DBPath, storage.DefaultAppName)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s storage: %w", prefs.Storage, err)
	}
	return store, nil
}
