package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

// RenderKeybindHelp produces the transient help bar shown after SPC.
// Displays SPC-prefixed bindings filtered by panel; while a multi-key
// sequence is in progress (e.g. "SPC o"), shows the next-level hints.
func RenderKeybindHelp(keyHandler *KeyHandler, mode AppMode) string {
	if keyHandler == nil {
		return ""
	}
	km := NewKeyMap(keyHandler.Registry, keyHandler, mode)
	bindings := km.ShortHelp()
	if len(bindings) == 0 {
		return ""
	}

	helpModel := help.New()
	helpModel.Styles.ShortKey = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)).
		Bold(true)
	helpModel.Styles.ShortDesc = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))
	helpModel.Styles.ShortSeparator = lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorAccent)).
		Padding(0, 1).
		MarginTop(1)

	prefix := keyHandler.LeaderSeq
	if len(keyHandler.Buffer) > 0 {
		prefix = strings.Join(keyHandler.Buffer, " ")
	}
	content := Styles.Muted.Render(prefix) + " " + helpModel.ShortHelpView(bindings)
	return boxStyle.Render(content)
}
