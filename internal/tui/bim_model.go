package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// bimModel is the 3-D/GIS visualization screen. The visualization itself is
// rendered by an external viewer; in the terminal this screen is a static
// placeholder so the screen set stays closed and exhaustively dispatched.
type bimModel struct{}

func newBimModel() bimModel { return bimModel{} }

// Init is a no-op; the screen issues no requests.
func (m bimModel) Init() tea.Cmd { return nil }

// Update handles navigation keys (Bubble Tea interface).
func (m bimModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "q":
			return m, tea.Quit
		case "esc":
			return m, navigateTo(ScreenDashboard, nil)
		}
	}
	return m, nil
}

// View renders the placeholder (Bubble Tea interface).
func (m bimModel) View() string {
	header := HeaderStyle.Render("BIM / GIS VIEW") + "\n\n"
	body := SubtleStyle.Render(
		"Site visualization opens in the external BIM viewer.\n" +
			"This terminal session only tracks which screen is active.")
	help := SubtleStyle.Render("\n\nEsc: dashboard · q: quit")
	return header + body + help
}
