package tui

import (
	"context"
	"sort"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/fleetfocus/fleetfocus/internal/api"
	"github.com/fleetfocus/fleetfocus/internal/fleet"
)

// sustainabilityReportMsg carries the emissions report completion.
type sustainabilityReportMsg struct {
	token  string
	report map[string]fleet.SustainabilityEntry
	err    error
}

// sustainabilityModel shows per-type emissions aggregates.
type sustainabilityModel struct {
	client *api.Client
	logger zerolog.Logger

	report lifecycle[map[string]fleet.SustainabilityEntry]

	tbl    table.Model
	spin   spinner.Model
	width  int
	height int
}

func newSustainabilityModel(client *api.Client, logger zerolog.Logger) sustainabilityModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)

	m := sustainabilityModel{
		client: client,
		logger: logger,
		spin:   s,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.report.start()
	return m
}

// Init issues the load-on-entry report fetch.
func (m sustainabilityModel) Init() tea.Cmd {
	return tea.Batch(m.fetchReport(m.report.token), m.spin.Tick)
}

func (m sustainabilityModel) fetchReport(token string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		report, err := client.SustainabilityReport(context.Background())
		return sustainabilityReportMsg{token: token, report: report, err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m sustainabilityModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.report.ok() {
			m.tbl = m.buildTable()
		}
		return m, nil

	case sustainabilityReportMsg:
		m.report.resolve(msg.token, msg.report, msg.err)
		if m.report.ok() {
			m.tbl = m.buildTable()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.report.pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			return m, navigateTo(ScreenDashboard, nil)
		default:
			var cmd tea.Cmd
			m.tbl, cmd = m.tbl.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *sustainabilityModel) buildTable() table.Model {
	printer := message.NewPrinter(language.English)

	types := make([]string, 0, len(m.report.value))
	for t := range m.report.value {
		types = append(types, t)
	}
	sort.Strings(types)

	columns := []table.Column{
		{Title: "Equipment Type", Width: 20},
		{Title: "Engine Hours", Width: 14},
		{Title: "Avg Fuel %", Width: 10},
		{Title: "Emissions (kg CO2e)", Width: 20},
	}

	rows := make([]table.Row, 0, len(types))
	for _, t := range types {
		entry := m.report.value[t]
		rows = append(rows, table.Row{
			t,
			printer.Sprintf("%.0f", entry.TotalEngineHours),
			printer.Sprintf("%.1f", entry.AverageFuelLevel),
			printer.Sprintf("%.1f", entry.TotalEmissionsKg),
		})
	}

	availableHeight := m.height - 7
	if availableHeight < minHeight {
		availableHeight = minHeight
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(availableHeight),
	)

	s := table.DefaultStyles()
	s.Header = TableHeaderStyle
	s.Selected = TableSelectedStyle
	t.SetStyles(s)

	return t
}

// View renders the sustainability report (Bubble Tea interface).
func (m sustainabilityModel) View() string {
	header := HeaderStyle.Render("SUSTAINABILITY REPORT") + "\n\n"

	switch {
	case m.report.pending():
		return header + m.spin.View() + " Loading emissions report..."
	case m.report.failed():
		return header + CriticalStyle.Render("Error: "+m.report.errMsg)
	case len(m.report.value) == 0:
		return header + SubtleStyle.Render("No emissions data reported.")
	}

	help := SubtleStyle.Render("Esc: dashboard · q: quit")
	return header + m.tbl.View() + "\n" + help
}
