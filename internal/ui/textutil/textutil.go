// Package textutil provides unicode-aware width helpers for aligning
// dashboard columns.
package textutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

// Width returns the number of terminal columns a string occupies.
func Width(s string) int {
	return runewidth.StringWidth(s)
}

// Truncate shortens s to at most max columns, appending the ellipsis when
// anything was cut.
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) <= max {
		return s
	}
	avail := max - runewidth.StringWidth(Ellipsis)
	if avail <= 0 {
		return Ellipsis
	}
	var b strings.Builder
	used := 0
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if used+w > avail {
			break
		}
		b.WriteRune(r)
		used += w
	}
	return b.String() + Ellipsis
}

// PadRight pads s with spaces to exactly width columns, truncating when it
// is already wider.
func PadRight(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	return s + strings.Repeat(" ", width-w)
}

// PadLeft pads s with spaces on the left to exactly width columns,
// truncating when it is already wider.
func PadLeft(s string, width int) string {
	w := runewidth.StringWidth(s)
	if w >= width {
		return Truncate(s, width)
	}
	return strings.Repeat(" ", width-w) + s
}
