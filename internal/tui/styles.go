package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent    = "86"
	colorHighlight = "205"
	colorDanger    = "196"
	colorMuted     = "241"
	colorText      = "252"
)

var styles = struct {
	Title     lipgloss.Style
	Card      lipgloss.Style
	CardTitle lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	Badge     lipgloss.Style
	Error     lipgloss.Style
	Loading   lipgloss.Style
	Hint      lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)),
	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorHighlight)).
		Padding(0, 1).
		MarginTop(1),
	CardTitle: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(colorAccent)),
	Label: lipgloss.NewStyle().
		Bold(true).
		Width(15).
		Foreground(lipgloss.Color(colorMuted)),
	Value: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorText)),
	Badge: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorHighlight)),
	Error: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(colorDanger)).
		Foreground(lipgloss.Color(colorDanger)).
		Padding(0, 1).
		MarginTop(1),
	Loading: lipgloss.NewStyle().
		Italic(true).
		MarginTop(1).
		Foreground(lipgloss.Color(colorMuted)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(colorMuted)),
}
