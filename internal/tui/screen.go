package tui

import tea "github.com/charmbracelet/bubbletea"

// ScreenKind identifies one full-page dashboard screen. The set is closed:
// the App's screen constructor switches exhaustively over these values, so
// adding a screen is a compile-time-checked change.
type ScreenKind int

const (
	// ScreenDashboard is the fleet summary landing screen.
	ScreenDashboard ScreenKind = iota
	// ScreenCategory lists every unit in one equipment category.
	ScreenCategory
	// ScreenVehicle shows one unit with its on-demand analytics.
	ScreenVehicle
	// ScreenSustainability shows per-type emissions aggregates.
	ScreenSustainability
	// ScreenBim is the 3-D/GIS visualization placeholder.
	ScreenBim
	// ScreenDemandForecast shows the rental demand forecast.
	ScreenDemandForecast
)

// String returns the display name of the screen kind.
func (k ScreenKind) String() string {
	switch k {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenCategory:
		return "Category"
	case ScreenVehicle:
		return "Vehicle"
	case ScreenSustainability:
		return "Sustainability"
	case ScreenBim:
		return "BIM"
	case ScreenDemandForecast:
		return "Demand Forecast"
	default:
		return "Dashboard"
	}
}

// ParseScreenKind maps a user-supplied screen name to a kind. Unknown
// names fall back to the dashboard.
func ParseScreenKind(name string) ScreenKind {
	switch name {
	case "dashboard", "":
		return ScreenDashboard
	case "category":
		return ScreenCategory
	case "vehicle":
		return ScreenVehicle
	case "sustainability":
		return ScreenSustainability
	case "bim":
		return ScreenBim
	case "demand", "demand-forecast":
		return ScreenDemandForecast
	default:
		return ScreenDashboard
	}
}

// Screen parameter keys.
const (
	// ParamCategory is the equipment category a Category screen lists and
	// the back-reference a Vehicle screen returns to.
	ParamCategory = "category"
	// ParamEquipmentID selects the unit a Vehicle screen shows.
	ParamEquipmentID = "equipmentId"
)

// ScreenRef names one screen instance: which screen is showing, with what
// parameters. Immutable once constructed; the App holds exactly one active
// ScreenRef at a time.
type ScreenRef struct {
	Kind   ScreenKind
	Params map[string]string
}

// NewScreenRef builds a ScreenRef, copying params so later map mutation by
// the caller cannot leak into the active reference.
func NewScreenRef(kind ScreenKind, params map[string]string) ScreenRef {
	copied := make(map[string]string, len(params))
	for k, v := range params {
		copied[k] = v
	}
	return ScreenRef{Kind: kind, Params: copied}
}

// Param returns the named parameter or "".
func (r ScreenRef) Param(key string) string {
	return r.Params[key]
}

// navigateMsg asks the App to replace the active screen. Screens emit it
// via navigateTo; they never construct other screens themselves.
type navigateMsg struct {
	ref ScreenRef
}

// navigateTo returns a command that requests a screen transition.
func navigateTo(kind ScreenKind, params map[string]string) tea.Cmd {
	ref := NewScreenRef(kind, params)
	return func() tea.Msg {
		return navigateMsg{ref: ref}
	}
}
