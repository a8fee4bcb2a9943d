// Package cli implements the ecocoach command tree.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/dayimpact/ecocoach/internal/config"
	"github.com/dayimpact/ecocoach/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// NewRootCmd creates the root Cobra command for the ecocoach CLI. It
// wires up configuration loading, logging, and the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "ecocoach",
		Short:   "Daily environmental impact coach",
		Long:    "ecocoach: log daily actions, quantify their carbon and water footprint, and get next-step recommendations",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			config.SetGlobal(cfg)

			setupLogging(cmd, cfg)
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "path to config file (YAML)")
	cmd.PersistentFlags().String("db", "", "path to the sqlite database (overrides config)")

	cmd.AddCommand(
		NewServeCmd(), NewLogCmd(), NewCoachCmd(),
		NewChatCmd(), NewFactorsCmd(), NewReportCmd(),
	)

	return cmd
}

// setupLogging configures the package logger from config and CLI flags.
// Debug mode forces console output at debug level; when stderr is not a
// terminal the format falls back to json for machine consumption.
func setupLogging(cmd *cobra.Command, cfg *config.Config) {
	loggingCfg := cfg.Logging

	debug, _ := cmd.Flags().GetBool("debug")
	if debug {
		loggingCfg.Level = "debug"
		loggingCfg.Format = "console"
		loggingCfg.File = ""
	}
	if loggingCfg.Format == "console" && !debug && !isTerminal(os.Stderr) {
		loggingCfg.Format = "json"
	}

	base := logging.New(loggingCfg.ToLoggingConfig())
	logger = logging.ComponentLogger(base, "cli")

	ctx := logging.WithContext(cmd.Context(), base)
	cmd.SetContext(ctx)

	logger.Debug().Str("command", cmd.Name()).Msg("Command started")
}

// databasePath resolves the database path from the --db flag or config.
func databasePath(cmd *cobra.Command) string {
	if path, _ := cmd.Flags().GetString("db"); path != "" {
		return path
	}
	return config.Global().Database.Path
}

const rootCmdExample = `  # Start the HTTP API server
  ecocoach serve

  # Log a taxi ride of 5 km
  ecocoach log --category mobility --item taxi_ice --amount 5

  # Log peak-hour electricity use
  ecocoach log --category home_energy --item electricity_kwh --amount 3 --time-of-day peak

  # Get today's coaching summary and recommendations
  ecocoach coach

  # Log actions in natural language
  ecocoach chat "오늘 택시로 5km 이동했어"

  # Browse the emission factor tables
  ecocoach factors --category mobility

  # Render today's report as markdown
  ecocoach report --format markdown`
