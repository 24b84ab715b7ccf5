package tui

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how non-TUI command output is rendered.
type OutputMode int

const (
	// OutputModePlain emits unstyled text (pipes, CI).
	OutputModePlain OutputMode = iota
	// OutputModeStyled emits lipgloss-styled text on a terminal.
	OutputModeStyled
)

// DetectOutputMode picks the rendering mode for stdout. plainFlag forces
// plain output regardless of the terminal.
func DetectOutputMode(plainFlag bool) OutputMode {
	if plainFlag {
		return OutputModePlain
	}
	if os.Getenv("NO_COLOR") != "" {
		return OutputModePlain
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return OutputModePlain
	}
	return OutputModeStyled
}

// TerminalWidth returns the stdout terminal width, or the default layout
// width when stdout is not a terminal.
func TerminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
