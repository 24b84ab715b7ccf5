package tui

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fleetfocus/fleetfocus/internal/fleet"
)

// RenderSummarySnapshot renders the fleet summary for the non-interactive
// snapshot command.
func RenderSummarySnapshot(rows []fleet.SummaryRow, styled bool) string {
	var b strings.Builder
	writeHeader(&b, "FLEET SUMMARY", styled)

	if len(rows) == 0 {
		b.WriteString("No equipment categories reported.\n")
		return b.String()
	}

	for _, row := range rows {
		line := fmt.Sprintf("%-16s %3d total  %3d available  %3d in-use  %3d maintenance",
			row.Category, row.Total, row.Available, row.InUse, row.Maintenance)
		if styled {
			line = ValueStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderSustainabilitySnapshot renders the emissions report.
func RenderSustainabilitySnapshot(report map[string]fleet.SustainabilityEntry, styled bool) string {
	printer := message.NewPrinter(language.English)

	var b strings.Builder
	writeHeader(&b, "SUSTAINABILITY", styled)

	if len(report) == 0 {
		b.WriteString("No emissions data reported.\n")
		return b.String()
	}

	types := make([]string, 0, len(report))
	for t := range report {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, t := range types {
		entry := report[t]
		line := printer.Sprintf("%-16s %10.0f engine hours  %5.1f%% avg fuel  %10.1f kg CO2e",
			t, entry.TotalEngineHours, entry.AverageFuelLevel, entry.TotalEmissionsKg)
		if styled {
			line = ValueStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// RenderForecastSnapshot renders the next few days of the demand forecast.
func RenderForecastSnapshot(points []fleet.ForecastPoint, styled bool) string {
	const maxRows = 14

	printer := message.NewPrinter(language.English)

	var b strings.Builder
	writeHeader(&b, "DEMAND FORECAST", styled)

	if len(points) == 0 {
		b.WriteString("No forecast data available.\n")
		return b.String()
	}

	shown := points
	if len(shown) > maxRows {
		shown = shown[:maxRows]
	}
	for _, p := range shown {
		actual := "    -"
		if p.Actual != nil {
			actual = printer.Sprintf("%5.0f", *p.Actual)
		}
		line := printer.Sprintf("%s  actual %s  predicted %6.1f", p.Date, actual, p.Predicted)
		if p.LowerBound != nil && p.UpperBound != nil {
			line += printer.Sprintf("  [%.1f, %.1f]", *p.LowerBound, *p.UpperBound)
		}
		if styled {
			line = ValueStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	if len(points) > maxRows {
		b.WriteString(fmt.Sprintf("... %d more days\n", len(points)-maxRows))
	}
	return b.String()
}

// writeHeader writes a section header, styled when the terminal supports it.
func writeHeader(b *strings.Builder, title string, styled bool) {
	if styled {
		b.WriteString(HeaderStyle.Render(title))
	} else {
		b.WriteString(title)
	}
	b.WriteString("\n")
}
