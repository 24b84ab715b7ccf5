package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fleetfocus/fleetfocus/internal/api"
	"github.com/fleetfocus/fleetfocus/internal/fleet"
)

// dashboardSummaryMsg carries the fleet summary completion.
type dashboardSummaryMsg struct {
	token string
	rows  []fleet.SummaryRow
	err   error
}

// dashboardModel is the landing screen: one card per equipment category.
type dashboardModel struct {
	client *api.Client
	logger zerolog.Logger

	summary lifecycle[[]fleet.SummaryRow]

	spin   spinner.Model
	cursor int
	width  int
	height int
}

func newDashboardModel(client *api.Client, logger zerolog.Logger) dashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)

	m := dashboardModel{
		client: client,
		logger: logger,
		spin:   s,
		width:  defaultWidth,
		height: defaultHeight,
	}
	m.summary.start()
	return m
}

// Init issues the load-on-entry summary fetch.
func (m dashboardModel) Init() tea.Cmd {
	return tea.Batch(m.fetchSummary(m.summary.token), m.spin.Tick)
}

// fetchSummary returns the command for one summary request generation.
func (m dashboardModel) fetchSummary(token string) tea.Cmd {
	client := m.client
	return func() tea.Msg {
		rows, err := client.Summary(context.Background())
		return dashboardSummaryMsg{token: token, rows: rows, err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m dashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case dashboardSummaryMsg:
		m.summary.resolve(msg.token, msg.rows, msg.err)
		if m.summary.failed() {
			m.logger.Warn().Str("error", m.summary.errMsg).Msg("summary load failed")
		}
		return m, nil

	case spinner.TickMsg:
		if !m.summary.pending() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m dashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "left", "h":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "right", "l":
		if m.summary.ok() && m.cursor < len(m.summary.value)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.summary.ok() && m.cursor < len(m.summary.value) {
			category := m.summary.value[m.cursor].Category
			return m, navigateTo(ScreenCategory, map[string]string{ParamCategory: category})
		}
		return m, nil
	case "s":
		return m, navigateTo(ScreenSustainability, nil)
	case "d":
		return m, navigateTo(ScreenDemandForecast, nil)
	case "b":
		return m, navigateTo(ScreenBim, nil)
	case "R":
		tok := m.summary.start()
		return m, tea.Batch(m.fetchSummary(tok), m.spin.Tick)
	}
	return m, nil
}

// View renders the dashboard (Bubble Tea interface).
func (m dashboardModel) View() string {
	header := HeaderStyle.Render("FLEET DASHBOARD") + "\n\n"

	switch {
	case m.summary.pending():
		return header + m.spin.View() + " Loading fleet summary..."
	case m.summary.failed():
		return header + CriticalStyle.Render("Error: "+m.summary.errMsg)
	case len(m.summary.value) == 0:
		return header + SubtleStyle.Render("No equipment categories reported.")
	}

	cards := make([]string, 0, len(m.summary.value))
	for i, row := range m.summary.value {
		cards = append(cards, m.renderCard(row, i == m.cursor))
	}

	help := SubtleStyle.Render(
		"←/→: select · Enter: open category · s: sustainability · d: demand · b: BIM · R: reload · q: quit")

	return header +
		lipgloss.JoinHorizontal(lipgloss.Top, cards...) +
		"\n\n" + help
}

// renderCard renders one category summary card.
func (m dashboardModel) renderCard(row fleet.SummaryRow, selected bool) string {
	var content string
	content += HeaderStyle.Render(row.Category) + "\n"
	content += ValueStyle.Render(fmt.Sprintf("%d Total Units", row.Total)) + "\n"
	content += OKStyle.Render(fmt.Sprintf("%d Available", row.Available)) + "\n"
	content += InfoStyle.Render(fmt.Sprintf("%d In-Use", row.InUse)) + "\n"
	content += WarningStyle.Render(fmt.Sprintf("%d Maintenance", row.Maintenance))

	if selected {
		return CardSelectedStyle.Render(content)
	}
	return CardStyle.Render(content)
}
