package ui

import (
	"strings"

	"chainboard/internal/ui/textutil"
)

// Panel is one dashboard tab. Panels build their request from form input,
// emit a submit message on enter, and render the last result under the form.
type Panel interface {
	View
	Title() string
	// EditingText reports whether a focused field wants printable keys
	// (including space) for itself, which suppresses leader and bracket
	// bindings.
	EditingText() bool
	// Reset clears the panel's form and last result.
	Reset()
}

// kvWidth is the label column width for result blocks.
const kvWidth = 16

// kv renders an aligned label/value line for result blocks.
func kv(label, value string) string {
	return Styles.Muted.Render(textutil.PadRight(label, kvWidth)) + " " + Styles.Normal.Render(value)
}

// kvStyled renders an aligned label/value line with a styled value.
func kvStyled(label, value string, style func(...string) string) string {
	return Styles.Muted.Render(textutil.PadRight(label, kvWidth)) + " " + style(value)
}

// bar renders a horizontal ratio bar, clamped to 0..1.
func bar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return Styles.Status.Render(strings.Repeat("█", filled)) +
		Styles.Muted.Render(strings.Repeat("░", width-filled))
}
