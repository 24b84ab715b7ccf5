package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/fleetfocus/fleetfocus/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the fleetfocus CLI.
// It wires up configuration, logging, and the dash and snapshot subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var cfg *config.Config

	cmd := &cobra.Command{
		Use:     "fleetfocus",
		Short:   "Rental fleet dashboard",
		Long:    "FleetFocus: Monitor rental equipment status, predictions, and emissions from the terminal",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			loaded, err := config.Load(configPath)
			if err != nil {
				return err
			}

			// CLI flags override environment variables and config file.
			if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
				loaded.Service.BaseURL = apiURL
			}
			cfg = loaded

			return setupLogging(cmd, cfg)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			logger.Info().Str("command", cmd.Name()).Msg("command finished")
			config.CloseLogFile()
			return nil
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file path (default $HOME/.fleetfocus/config.yaml)")
	cmd.PersistentFlags().String("api-url", "", "fleet service base URL (overrides config and FLEETFOCUS_API_URL)")

	cmd.AddCommand(newDashCmd(&cfg), newSnapshotCmd(&cfg))

	return cmd
}

const rootCmdExample = `  # Open the interactive dashboard
  fleetfocus dash

  # Jump straight to a category listing
  fleetfocus dash --screen category --category Excavator

  # Inspect one unit
  fleetfocus dash --screen vehicle --equipment EXC001

  # Print a non-interactive fleet snapshot (summary, emissions, forecast)
  fleetfocus snapshot

  # Point at a different service instance
  fleetfocus snapshot --api-url http://fleet.internal:5000`

// requireConfig guards subcommand RunE bodies against a missing
// PersistentPreRunE (only possible when a test invokes RunE directly).
func requireConfig(cfg **config.Config) (*config.Config, error) {
	if cfg == nil || *cfg == nil {
		return nil, fmt.Errorf("configuration not loaded")
	}
	return *cfg, nil
}
