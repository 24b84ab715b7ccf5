package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fleetfocus/fleetfocus/internal/api"
	"github.com/fleetfocus/fleetfocus/internal/config"
	"github.com/fleetfocus/fleetfocus/internal/fleet"
	"github.com/fleetfocus/fleetfocus/internal/tui"
)

// newSnapshotCmd creates the snapshot command: a non-interactive dump of the
// fleet summary, emissions report, and demand forecast for pipes and cron.
func newSnapshotCmd(cfg **config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Print a non-interactive fleet snapshot",
		Long: "Fetch the fleet summary, sustainability report, and demand forecast " +
			"and print them to stdout. Output is styled on a terminal and plain " +
			"when piped or when --plain is set.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := requireConfig(cfg)
			if err != nil {
				return err
			}

			client := api.NewClient(conf.Service.BaseURL, conf.Timeout(), config.GetLogger())

			var (
				rows     []fleet.SummaryRow
				report   map[string]fleet.SustainabilityEntry
				forecast []fleet.ForecastPoint
			)

			// The three endpoints are independent; fetch them concurrently
			// and fail the command on the first error.
			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(3)
			g.Go(func() error {
				var err error
				rows, err = client.Summary(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				report, err = client.SustainabilityReport(ctx)
				return err
			})
			g.Go(func() error {
				var err error
				forecast, err = client.DemandForecast(ctx)
				return err
			})
			if err := g.Wait(); err != nil {
				logger.Error().Err(err).Msg("snapshot fetch failed")
				return err
			}

			plain, _ := cmd.Flags().GetBool("plain")
			styled := tui.DetectOutputMode(plain) == tui.OutputModeStyled

			out := cmd.OutOrStdout()
			fmt.Fprint(out, tui.RenderSummarySnapshot(rows, styled))
			fmt.Fprintln(out)
			fmt.Fprint(out, tui.RenderSustainabilitySnapshot(report, styled))
			fmt.Fprintln(out)
			fmt.Fprint(out, tui.RenderForecastSnapshot(forecast, styled))
			return nil
		},
	}

	cmd.Flags().Bool("plain", false, "force unstyled output")

	return cmd
}
