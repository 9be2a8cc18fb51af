package ui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"chainboard/internal/api"
)

// Theme colors used throughout the UI
const (
	ColorAccent    = "86"  // Cyan/green - titles, highlights, healthy state
	ColorHighlight = "205" // Magenta - selected items, borders
	ColorDanger    = "196" // Red - errors, delayed, high risk
	ColorMuted     = "241" // Gray - dimmed text, hints
	ColorText      = "252" // Light gray - normal text
	ColorDim       = "243" // Darker gray - very dim text
	ColorWarning   = "208" // Orange - medium risk, warnings
)

// Styles contains shared style definitions used across panels and modals.
var Styles = struct {
	// Titles
	Title        lipgloss.Style // Bold accent - panel and modal titles
	TitleWarning lipgloss.Style // Bold danger - destructive-action titles

	// Boxes
	Box        lipgloss.Style // Standard rounded box (highlight border)
	BoxDanger  lipgloss.Style // Confirmation box (danger border)
	BoxCompact lipgloss.Style // Compact box for lists and result blocks

	// Text
	Selected    lipgloss.Style // Focused field labels, selected rows
	Muted       lipgloss.Style // Dimmed text
	Normal      lipgloss.Style // Normal text
	Hint        lipgloss.Style // Key hints
	Status      lipgloss.Style // Healthy state, progress
	StatusError lipgloss.Style // Error text in the status bar
	Section     lipgloss.Style // Section headers inside panels
	Empty       lipgloss.Style // Empty-state text
	Label       lipgloss.Style // Modal body text
	Details     lipgloss.Style // Warning details

	// Tabs
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Verdicts
	Good lipgloss.Style // Reliable / On Time / Low risk
	Warn lipgloss.Style // Medium risk
	Bad  lipgloss.Style // Unreliable / Delayed / High risk
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TitleWarning: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
	Box: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(1, 2).
		Margin(1),
	BoxDanger: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorDanger)).
		Padding(1, 2).
		Margin(1),
	BoxCompact: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1).
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
	StatusError: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorDanger)),
	Section: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorHighlight)),
	Empty: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)).
		Italic(true),
	Label: lipgloss.NewStyle(),
	Details: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWarning)),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	TabInactive: lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorMuted)),
	Good: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent)),
	Warn: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorWarning)),
	Bad: lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(ColorDanger)),
}

// RiskStyle maps a backend risk level to its display style.
func RiskStyle(level string) lipgloss.Style {
	switch level {
	case api.RiskLow:
		return Styles.Good
	case api.RiskMedium:
		return Styles.Warn
	case api.RiskHigh:
		return Styles.Bad
	default:
		return Styles.Normal
	}
}

// NewCompactListDelegate returns a delegate with zero spacing and shared styles.
// This factory standardizes list delegate configuration across the codebase.
func NewCompactListDelegate() list.DefaultDelegate {
	d := list.NewDefaultDelegate()
	d.SetSpacing(0)
	d.ShowDescription = false
	d.Styles.SelectedTitle = Styles.Selected
	d.Styles.SelectedDesc = Styles.Selected
	d.Styles.NormalTitle = Styles.Muted
	d.Styles.NormalDesc = Styles.Muted
	return d
}
