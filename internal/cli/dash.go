package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/fleetfocus/fleetfocus/internal/api"
	"github.com/fleetfocus/fleetfocus/internal/config"
	"github.com/fleetfocus/fleetfocus/internal/tui"
)

// newDashCmd creates the dash command, which runs the interactive dashboard.
func newDashCmd(cfg **config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dash",
		Short: "Open the interactive fleet dashboard",
		Long: "Open the full-screen dashboard. Navigate with the arrow keys, " +
			"Enter to drill into a category or unit, Esc to go back, q to quit.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := requireConfig(cfg)
			if err != nil {
				return err
			}

			screen, _ := cmd.Flags().GetString("screen")
			category, _ := cmd.Flags().GetString("category")
			equipment, _ := cmd.Flags().GetString("equipment")

			ref, err := initialScreenRef(screen, category, equipment)
			if err != nil {
				return err
			}

			client := api.NewClient(conf.Service.BaseURL, conf.Timeout(), config.GetLogger())
			app := tui.NewApp(client, config.GetLogger(), ref)

			logger.Debug().
				Str("screen", ref.Kind.String()).
				Msg("starting dashboard")

			p := tea.NewProgram(app, tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("running dashboard: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("screen", "", "initial screen: dashboard, category, vehicle, sustainability, bim, demand")
	cmd.Flags().String("category", "", "equipment category for --screen category")
	cmd.Flags().String("equipment", "", "equipment id for --screen vehicle")

	return cmd
}

// initialScreenRef builds the starting screen from the dash flags. Screens
// that need a parameter reject a bare --screen so the user is not dropped
// onto an empty listing.
func initialScreenRef(screen, category, equipment string) (tui.ScreenRef, error) {
	kind := tui.ParseScreenKind(screen)

	params := map[string]string{}
	switch kind {
	case tui.ScreenCategory:
		if category == "" {
			return tui.ScreenRef{}, fmt.Errorf("--screen category requires --category")
		}
		params[tui.ParamCategory] = category
	case tui.ScreenVehicle:
		if equipment == "" {
			return tui.ScreenRef{}, fmt.Errorf("--screen vehicle requires --equipment")
		}
		params[tui.ParamEquipmentID] = equipment
		if category != "" {
			params[tui.ParamCategory] = category
		}
	case tui.ScreenDashboard, tui.ScreenSustainability, tui.ScreenBim, tui.ScreenDemandForecast:
	}

	return tui.NewScreenRef(kind, params), nil
}
