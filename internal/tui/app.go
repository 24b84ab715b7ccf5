package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/fleetfocus/fleetfocus/internal/api"
)

// App is the top-level Bubble Tea model. It is the view router: it owns the
// single active ScreenRef and the screen model built for it, and performs
// transitions requested by screens through navigateMsg. Replacement is
// unconditional and atomic; there is no history stack. Screens navigate
// "back" by naming their parent screen with the parameters they already
// hold.
type App struct {
	client *api.Client
	logger zerolog.Logger

	active ScreenRef
	screen tea.Model

	width  int
	height int
}

// NewApp creates the router with its initial screen.
func NewApp(client *api.Client, logger zerolog.Logger, initial ScreenRef) App {
	a := App{
		client: client,
		logger: logger.With().Str("component", "tui").Logger(),
		width:  defaultWidth,
		height: defaultHeight,
	}
	a.active, a.screen = a.buildScreen(initial)
	return a
}

// buildScreen constructs a fresh screen model for ref. Construction starts
// a new generation: every load-on-entry lifecycle begins Pending with new
// tokens, so responses addressed to any earlier generation can no longer
// mutate visible state. An unrecognized kind falls back to the dashboard.
func (a App) buildScreen(ref ScreenRef) (ScreenRef, tea.Model) {
	switch ref.Kind {
	case ScreenDashboard:
		return ref, newDashboardModel(a.client, a.logger)
	case ScreenCategory:
		return ref, newCategoryModel(a.client, a.logger, ref.Param(ParamCategory))
	case ScreenVehicle:
		return ref, newVehicleModel(a.client, a.logger, ref.Param(ParamEquipmentID), ref.Param(ParamCategory))
	case ScreenSustainability:
		return ref, newSustainabilityModel(a.client, a.logger)
	case ScreenBim:
		return ref, newBimModel()
	case ScreenDemandForecast:
		return ref, newDemandModel(a.client, a.logger)
	default:
		fallback := NewScreenRef(ScreenDashboard, nil)
		return fallback, newDashboardModel(a.client, a.logger)
	}
}

// ActiveScreen returns the active screen reference.
func (a App) ActiveScreen() ScreenRef { return a.active }

// Init starts the initial screen's load-on-entry requests.
func (a App) Init() tea.Cmd {
	return a.screen.Init()
}

// Update routes messages. Navigation replaces the active screen wholesale;
// everything else is delegated to it, including completions addressed to
// screens that no longer exist (their stale tokens make them no-ops).
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		var cmd tea.Cmd
		a.screen, cmd = a.screen.Update(msg)
		return a, cmd

	case navigateMsg:
		a.logger.Debug().
			Str("from", a.active.Kind.String()).
			Str("to", msg.ref.Kind.String()).
			Msg("navigate")
		a.active, a.screen = a.buildScreen(msg.ref)
		a.screen, _ = a.screen.Update(tea.WindowSizeMsg{Width: a.width, Height: a.height})
		return a, a.screen.Init()

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return a, tea.Quit
		}
	}

	var cmd tea.Cmd
	a.screen, cmd = a.screen.Update(msg)
	return a, cmd
}

// View renders the active screen with a one-line footer.
func (a App) View() string {
	footer := SubtleStyle.Render(a.active.Kind.String() + " · " + a.client.BaseURL())
	return a.screen.View() + "\n" + footer
}
