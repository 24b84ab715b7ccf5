package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/fleetfocus/fleetfocus/internal/api"
	"github.com/fleetfocus/fleetfocus/internal/fleet"
)

// categoryListMsg carries the category listing completion.
type categoryListMsg struct {
	token   string
	records []fleet.EquipmentRecord
	err     error
}

// categoryModel lists every unit in one equipment category with a status
// filter. The filter is owned by this screen alone and resets implicitly
// when the screen is reconstructed for another category.
type categoryModel struct {
	client   *api.Client
	logger   zerolog.Logger
	category string

	list   lifecycle[[]fleet.EquipmentRecord]
	filter fleet.StatusFilter

	// visible is the current projection of list.value through filter,
	// rebuilt whenever either changes. Source records are never mutated.
	visible []fleet.EquipmentRecord

	tbl    table.Model
	spin   spinner.Model
	width  int
	height int
}

func newCategoryModel(client *api.Client, logger zerolog.Logger, category string) categoryModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(ColorSpinner)

	m := categoryModel{
		client:   client,
		logger:   logger,
		category: category,
		filter:   fleet.FilterAll,
		spin:     s,
		width:    defaultWidth,
		height:   defaultHeight,
	}
	m.list.start()
	m.tbl = m.buildTable()
	return m
}

// Init issues the load-on-entry listing fetch.
func (m categoryModel) Init() tea.Cmd {
	return tea.Batch(m.fetchList(m.list.token), m.spin.Tick)
}

func (m categoryModel) fetchList(token string) tea.Cmd {
	client := m.client
	category := m.category
	return func() tea.Msg {
		records, err := client.EquipmentByType(context.Background(), category)
		return categoryListMsg{token: token, records: records, err: err}
	}
}

// Update handles messages (Bubble Tea interface).
func (m categoryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refreshTable()
		return m, nil

	case categoryListMsg:
		m.list.resolve(msg.token, msg.records, msg.err)
		if m.list.failed() {
			m.logger.Warn().
				Str("category", m.category).
				Str("error", m.list.errMsg).
				Msg("category list load failed")
		}
		m.refreshTable()
		return m, nil

	case spinner.TickMsg:
		if !m.list.pending() {
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

func (m categoryModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		return m, navigateTo(ScreenDashboard, nil)
	case "a":
		return m.setFilter(fleet.FilterAll), nil
	case "v":
		return m.setFilter(fleet.FilterAvailable), nil
	case "u":
		return m.setFilter(fleet.FilterInUse), nil
	case "m":
		return m.setFilter(fleet.FilterMaintenance), nil
	case "enter":
		cursor := m.tbl.Cursor()
		if m.list.ok() && cursor >= 0 && cursor < len(m.visible) {
			return m, navigateTo(ScreenVehicle, map[string]string{
				ParamEquipmentID: m.visible[cursor].EquipmentID,
				ParamCategory:    m.category,
			})
		}
		return m, nil
	default:
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}
}

// setFilter replaces the filter predicate and recomputes the projection.
func (m categoryModel) setFilter(f fleet.StatusFilter) categoryModel {
	m.filter = f
	m.refreshTable()
	return m
}

// refreshTable recomputes the projection and rebuilds the table rows.
func (m *categoryModel) refreshTable() {
	m.visible = fleet.Project(m.list.value, m.filter)
	m.tbl = m.buildTable()
}

func (m *categoryModel) buildTable() table.Model {
	columns := []table.Column{
		{Title: "ID", Width: 10},
		{Title: "Status", Width: 12},
		{Title: "Customer", Width: 20},
		{Title: "Job Site", Width: 20},
		{Title: "Return", Width: 12},
		{Title: "Fuel%", Width: 6},
		{Title: "Hours", Width: 8},
	}

	rows := make([]table.Row, len(m.visible))
	for i, rec := range m.visible {
		customer := rec.Customer
		if customer == "" {
			customer = "-"
		}
		jobSite := rec.JobSite
		if jobSite == "" {
			jobSite = "-"
		}
		returnDate := rec.ExpectedReturnDate
		if returnDate == "" {
			returnDate = "-"
		}
		rows[i] = table.Row{
			rec.EquipmentID,
			rec.Status().String(),
			customer,
			jobSite,
			returnDate,
			fmt.Sprintf("%.0f", rec.FuelLevel),
			fmt.Sprintf("%.0f", rec.EngineHours),
		}
	}

	availableHeight := m.height - 8
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

// View renders the category listing (Bubble Tea interface).
func (m categoryModel) View() string {
	header := HeaderStyle.Render(m.category+" FLEET") + "\n\n"

	switch {
	case m.list.pending():
		return header + m.spin.View() + " Loading equipment..."
	case m.list.failed():
		return header + CriticalStyle.Render("Error: "+m.list.errMsg)
	}

	filterBar := m.renderFilterBar()

	if len(m.visible) == 0 {
		placeholder := SubtleStyle.Render(
			fmt.Sprintf("No equipment matches the %q filter.", m.filter.String()))
		return header + filterBar + "\n\n" + placeholder + "\n\n" + m.renderHelp()
	}

	return header + filterBar + "\n" + m.tbl.View() + "\n" + m.renderHelp()
}

// renderFilterBar shows the active filter and counts.
func (m categoryModel) renderFilterBar() string {
	active := ValueStyle.Render(m.filter.String())
	count := SubtleStyle.Render(fmt.Sprintf(" (%d/%d units)", len(m.visible), len(m.list.value)))
	return LabelStyle.Render("Filter: ") + active + count
}

func (m categoryModel) renderHelp() string {
	return SubtleStyle.Render(
		"a/v/u/m: filter All/Available/In-Use/Maintenance · Enter: detail · Esc: dashboard · q: quit")
}
