package cmd

import (
	"context"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/puzzle-scout/pkg/config"
	"github.com/puzzle-scout/pkg/telemetry"
	"github.com/puzzle-scout/pkg/utils"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfg    *config.Config
	logger utils.Logger

	telemetryShutdown telemetry.ShutdownFunc
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "puzzle-scout",
	Short: "A state-graph explorer for grid puzzles",
	Long: `puzzle-scout explores every configuration reachable in a grid puzzle,
classifies each one relative to the player's position, and renders ghost
previews of possible futures at chosen look-ahead distances.

Maps are plain text files: '#' wall, '.' floor, '@' the player, '^' trap,
'%' pushable block, '*' goal, and lowercase/uppercase letter pairs for
trigger-bound doors.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		level := utils.ParseLogLevel(cfg.Log.Level)
		if verbose {
			level = utils.LevelDebug
		}
		logger = utils.NewDefaultLogger(level, os.Stdout)

		shutdown, err := telemetry.Init(cmd.Context())
		if err != nil {
			logger.Warn("telemetry disabled: %v", err)
			shutdown = nil
		}
		telemetryShutdown = shutdown

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if telemetryShutdown != nil {
			if err := telemetryShutdown(context.Background()); err != nil {
				logger.Warn("telemetry shutdown: %v", err)
			}
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// GetLogger returns the logger initialized for this invocation.
func GetLogger() utils.Logger {
	if logger == nil {
		logger = utils.NewDefaultLogger(utils.LevelInfo, os.Stdout)
	}
	return logger
}

// BinName returns the name of the running binary.
func BinName() string {
	return filepath.Base(os.Args[0])
}
