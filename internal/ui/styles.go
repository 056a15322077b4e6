package ui

import "github.com/charmbracelet/lipgloss"

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - for titles, highlights
	ColorHighlight = "205" // Magenta - for selected items, borders
	ColorDanger    = "196" // Red - for warnings, errors
	ColorMuted     = "241" // Gray - for dimmed text, hints
	ColorText      = "252" // Light gray - for normal text
)

// Styles contains shared style definitions used by the host and screens.
var Styles = struct {
	Title    lipgloss.Style // Bold accent color - for screen titles
	Box      lipgloss.Style // Standard box with rounded border
	Selected lipgloss.Style // Highlighted/selected items
	Muted    lipgloss.Style // Dimmed text
	Normal   lipgloss.Style // Normal text
	Hint     lipgloss.Style // Help/hint text
	Status   lipgloss.Style // Status line
	Error    lipgloss.Style // Status line errors
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	Selected: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true),
	Muted: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Normal: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorText)),
	Hint: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Status: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorAccent)),
	Error: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
}
