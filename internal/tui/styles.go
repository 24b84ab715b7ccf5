package tui

import "github.com/charmbracelet/lipgloss"

// Palette shared by every screen.
var (
	ColorHeader   = lipgloss.AdaptiveColor{Light: "25", Dark: "39"}
	ColorLabel    = lipgloss.AdaptiveColor{Light: "243", Dark: "246"}
	ColorValue    = lipgloss.AdaptiveColor{Light: "235", Dark: "252"}
	ColorMuted    = lipgloss.AdaptiveColor{Light: "245", Dark: "241"}
	ColorInfo     = lipgloss.AdaptiveColor{Light: "31", Dark: "45"}
	ColorWarning  = lipgloss.AdaptiveColor{Light: "130", Dark: "214"}
	ColorCritical = lipgloss.AdaptiveColor{Light: "124", Dark: "203"}
	ColorOK       = lipgloss.AdaptiveColor{Light: "28", Dark: "76"}
	ColorSpinner  = lipgloss.AdaptiveColor{Light: "61", Dark: "105"}
)

// Styles shared by every screen.
var (
	HeaderStyle   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	LabelStyle    = lipgloss.NewStyle().Foreground(ColorLabel)
	ValueStyle    = lipgloss.NewStyle().Foreground(ColorValue).Bold(true)
	SubtleStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	CriticalStyle = lipgloss.NewStyle().Foreground(ColorCritical).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 2).
			MarginRight(1)

	CardSelectedStyle = CardStyle.
				BorderForeground(ColorHeader)

	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(ColorHeader).
				Bold(true).
				BorderStyle(lipgloss.NormalBorder()).
				BorderBottom(true).
				BorderForeground(ColorMuted)

	TableSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57")).
				Bold(false)
)

// statusStyle picks the style used to render an equipment status tag.
func statusStyle(label string) lipgloss.Style {
	switch label {
	case "Available":
		return OKStyle
	case "In-Use":
		return InfoStyle
	case "Maintenance":
		return WarningStyle
	default:
		return SubtleStyle
	}
}

// Layout constants.
const (
	defaultWidth  = 100
	defaultHeight = 30
	minHeight     = 5
)
