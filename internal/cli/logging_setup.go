package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fleetfocus/fleetfocus/internal/config"
)

// setupLogging configures logging based on config file, environment, and CLI
// flags. The dash command owns the terminal's alternate screen, so console
// logging is enabled only when a command is not about to start the TUI.
func setupLogging(cmd *cobra.Command, cfg *config.Config) error {
	level := cfg.Logging.Level
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		level = "debug"
	}

	consoleToo := cmd.Name() != "dash"
	if err := config.InitLogger(level, cfg.Logging.File, consoleToo); err != nil {
		return err
	}
	logger = config.GetLogger().With().Str("component", "cli").Logger()

	logger.Info().
		Str("command", cmd.Name()).
		Str("api_url", cfg.Service.BaseURL).
		Msg("command started")

	if cfg.Logging.File != "" && isTerminal(os.Stderr) && consoleToo {
		cmd.PrintErrf("Logging to %s\n", cfg.Logging.File)
	}

	return nil
}
