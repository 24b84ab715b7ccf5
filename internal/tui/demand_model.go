package tui

import (
	"context"

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

// demandForecastMsg carries the demand forecast completion.
type demandForecastMsg struct {
	token  string
	points []fleet.ForecastPoint
	err    error
}

// demandModel shows the rental demand forecast as a date table with
// prediction bounds. Historical rows carry the observed value; future rows
// carry the confidence interval.
type demandModel struct {
	client *api.Client
	logger zerolog.Logger

	forecast lifecycle[[]fleet.ForecastPoint]

	tbl    table.Model
	spin   spinner.Model
	width  int
	height int
}

func newDemandModel(client *api.Client, logger zerolog.Logger) demandModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)

	m := demandModel{
		client: client,
		logger: logger,
		spin:   s,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.forecast.start()
	return m
}

// Init issues the load-on-entry forecast fetch.
func (m demandModel) Init() tea.Cmd {
	return tea.Batch(m.fetchForecast(m.forecast.token), m.spin.Tick)
}

func (m demandModel) fetchForecast(token string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		points, err := client.DemandForecast(context.Background())
		return demandForecastMsg{token: token, points: points, err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m demandModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.forecast.ok() {
			m.tbl = m.buildTable()
		}
		return m, nil

	case demandForecastMsg:
		m.forecast.resolve(msg.token, msg.points, msg.err)
		if m.forecast.ok() {
			m.tbl = m.buildTable()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.forecast.pending() {
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

func (m *demandModel) buildTable() table.Model {
	printer := message.NewPrinter(language.English)

	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Actual", Width: 8},
		{Title: "Predicted", Width: 10},
		{Title: "Low", Width: 8},
		{Title: "High", Width: 8},
	}

	rows := make([]table.Row, 0, len(m.forecast.value))
	for _, p := range m.forecast.value {
		actual := "-"
		if p.Actual != nil {
			actual = printer.Sprintf("%.0f", *p.Actual)
		}
		low := "-"
		if p.LowerBound != nil {
			low = printer.Sprintf("%.1f", *p.LowerBound)
		}
		high := "-"
		if p.UpperBound != nil {
			high = printer.Sprintf("%.1f", *p.UpperBound)
		}
		rows = append(rows, table.Row{
			p.Date,
			actual,
			printer.Sprintf("%.1f", p.Predicted),
			low,
			high,
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

// View renders the forecast (Bubble Tea interface).
func (m demandModel) View() string {
	header := HeaderStyle.Render("DEMAND FORECAST") + "\n\n"

	switch {
	case m.forecast.pending():
		return header + m.spin.View() + " Loading demand forecast..."
	case m.forecast.failed():
		return header + CriticalStyle.Render("Error: "+m.forecast.errMsg)
	case len(m.forecast.value) == 0:
		return header + SubtleStyle.Render("No forecast data available.")
	}

	help := SubtleStyle.Render("Esc: dashboard · q: quit")
	return header + m.tbl.View() + "\n" + help
}
