package tui

import "github.com/charmbracelet/lipgloss"

// styles contains all lipgloss styles used by the timer preview.
var styles = struct {
	// Layout styles
	Container lipgloss.Style

	// Clock display
	Clock lipgloss.Style

	// Phase labels
	Work       lipgloss.Style
	ShortBreak lipgloss.Style
	LongBreak  lipgloss.Style
	Paused     lipgloss.Style

	// Iteration dots
	DotFilled lipgloss.Style
	DotEmpty  lipgloss.Style

	// Session counter
	Sessions lipgloss.Style

	// Footer style
	Footer lipgloss.Style
}{
	Container: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(1, 2),

	Clock: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("252")),

	Work: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("203")),

	ShortBreak: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("114")),

	LongBreak: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("78")),

	Paused: lipgloss.NewStyle().
		Foreground(lipgloss.Color("214")),

	DotFilled: lipgloss.NewStyle().
		Foreground(lipgloss.Color("203")),

	DotEmpty: lipgloss.NewStyle().
		Foreground(lipgloss.Color("240")),

	Sessions: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),

	Footer: lipgloss.NewStyle().
		Foreground(lipgloss.Color("245")),
}
