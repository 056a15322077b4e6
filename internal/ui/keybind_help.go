package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the transient help view shown after SPC.
// Displays SPC-prefixed bindings in a compact bar format.
// When keyHandler is in leader mode with a buffer (e.g. "SPC t"), shows next-level hints.
func RenderKeybindHelp(keyHandler *KeyHandler) string {
	if keyHandler == nil {
		return ""
	}
	bindings := NewKeyMap(keyHandler.Registry, keyHandler).ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	helpModel := help.New()
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	helpModel.Styles.ShortDesc = Styles.Hint
	helpModel.Styles.ShortSeparator = Styles.Hint

	helpContent := helpModel.ShortHelpView(bindings)

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1)

	prefix := "SPC"
	if len(keyHandler.Buffer) > 0 {
		prefix = strings.Join(keyHandler.Buffer, " ")
	}
	return boxStyle.Render(Styles.Muted.Render(prefix) + " " + helpContent)
}
