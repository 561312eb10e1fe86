// Package main provides the memobook CLI entry point: a personal assistant
// that keeps contacts and notes locally and fetches weather and jokes for
// good measure. Run without arguments for the interactive menu, or use the
// subcommands for scripting.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"memobook/internal/config"
	"memobook/internal/logging"
)

var (
	// Global flags
	verbose    bool
	configPath string
	dataPath   string

	// Logger
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "memobook",
	Short: "memobook - personal contacts and notes assistant",
	Long: `memobook keeps your contacts and notes in a local book.

Contacts carry phones, emails, an address and a birthday; notes carry
keyword tags. Everything is validated on the way in and snapshotted to a
local SQLite database on the way out. The goodies commands fetch weather,
jokes and translations purely for display.

Run without arguments to start the interactive menu.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// The interactive menu has its own UI; skip the console logger there.
		if cmd.Name() == "memobook" {
			return nil
		}

		zcfg := zap.NewProductionConfig()
		if verbose {
			zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zcfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
		logging.CloseAll()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu()
	},
}

// loadConfig loads the YAML config honoring the --config and --data flags.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if dataPath != "" {
		cfg.Storage.DatabasePath = dataPath
	}

	dataDir := filepath.Dir(cfg.Storage.DatabasePath)
	if err := logging.Initialize(dataDir, cfg.Logging); err != nil {
		fmt.Fprintf(os.Stderr, "warning: file logging disabled: %v\n", err)
	}
	return cfg, nil
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.memobook/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataPath, "data", "", "snapshot database path (overrides config)")

	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(noteCmd)
	rootCmd.AddCommand(birthdaysCmd)
	rootCmd.AddCommand(weatherCmd)
	rootCmd.AddCommand(jokeCmd)
	rootCmd.AddCommand(translateCmd)
	rootCmd.AddCommand(goodiesCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
