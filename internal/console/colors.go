// Package console renders stream-channel output and DebugState transitions
// with ANSI styling when stdout is a terminal, matching the teacher's
// lipgloss-based theme package repurposed from phase-status colors to
// MI-channel/state colors.
package console

import "github.com/charmbracelet/lipgloss"

// Color palette - dark theme inspired by Catppuccin Mocha, carried over
// from the teacher's phase-status palette.
var (
	colorText    = lipgloss.Color("#cdd6f4")
	colorOverlay = lipgloss.Color("#6c7086")

	colorGreen  = lipgloss.Color("#a6e3a1")
	colorYellow = lipgloss.Color("#f9e2af")
	colorRed    = lipgloss.Color("#f38ba8")
	colorBlue   = lipgloss.Color("#89b4fa")
	colorMauve  = lipgloss.Color("#cba6f7")
	colorTeal   = lipgloss.Color("#94e2d5")
	colorPeach  = lipgloss.Color("#fab387")
)

// Channel styles, one per MI stream channel.
var (
	styleConsole = lipgloss.NewStyle().Foreground(colorText)
	styleTarget  = lipgloss.NewStyle().Foreground(colorTeal)
	styleLog     = lipgloss.NewStyle().Foreground(colorOverlay).Italic(true)
)

// State styles, one per DebugState value.
var (
	styleStopped  = lipgloss.NewStyle().Foreground(colorOverlay)
	styleStarting = lipgloss.NewStyle().Foreground(colorYellow)
	styleLoaded   = lipgloss.NewStyle().Foreground(colorBlue)
	styleRunning  = lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
	stylePaused   = lipgloss.NewStyle().Foreground(colorPeach).Bold(true)
	styleExited   = lipgloss.NewStyle().Foreground(colorMauve)
	styleError    = lipgloss.NewStyle().Foreground(colorRed).Bold(true)
)

// Channel renders content styled for the named MI stream channel
// ("console", "target", "log") when color output is enabled.
func Channel(name, content string) string {
	if !Enabled() {
		return content
	}
	switch name {
	case "target":
		return styleTarget.Render(content)
	case "log":
		return styleLog.Render(content)
	default:
		return styleConsole.Render(content)
	}
}

// State renders a DebugState label styled for its value when color output
// is enabled. label is the caller-supplied text (typically
// state.DebugState.String()).
func State(kind, label string) string {
	if !Enabled() {
		return label
	}
	switch kind {
	case "starting":
		return styleStarting.Render(label)
	case "loaded":
		return styleLoaded.Render(label)
	case "running":
		return styleRunning.Render(label)
	case "paused":
		return stylePaused.Render(label)
	case "exited":
		return styleExited.Render(label)
	case "error":
		return styleError.Render(label)
	default:
		return styleStopped.Render(label)
	}
}
