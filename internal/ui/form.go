package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/ui/textutil"
)

// Field is one labeled input in a Form.
type Field struct {
	Label string
	Hint  string // unit or range note shown after the input
	Text  bool   // free-text field; keeps printable keys while focused
	Err   string // inline validation error
	Input textinput.Model
}

// NewField creates a numeric field. Numeric fields cede space and bracket
// keys to the keybind system.
func NewField(label, placeholder, hint string) Field {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.Width = 14
	return Field{Label: label, Hint: hint, Input: ti}
}

// NewTextField creates a free-text field (names, file paths).
func NewTextField(label, placeholder, hint string) Field {
	f := NewField(label, placeholder, hint)
	f.Text = true
	f.Input.Width = 32
	return f
}

// Form is a vertical group of fields with a single focused input.
// A focus of -1 means no field is focused (the hosting panel has moved
// focus to another element, e.g. a result table).
type Form struct {
	Fields []Field
	focus  int
}

// NewForm creates a form with the first field focused.
func NewForm(fields ...Field) *Form {
	f := &Form{Fields: fields, focus: -1}
	if len(f.Fields) > 0 {
		f.SetFocus(0)
	}
	return f
}

// Focused returns the focused field index, or -1.
func (f *Form) Focused() int {
	return f.focus
}

// SetFocus moves focus to field i, blurring the rest.
func (f *Form) SetFocus(i int) {
	if i < 0 || i >= len(f.Fields) {
		return
	}
	for j := range f.Fields {
		f.Fields[j].Input.Blur()
	}
	f.Fields[i].Input.Focus()
	f.focus = i
}

// Blur removes focus from every field.
func (f *Form) Blur() {
	for j := range f.Fields {
		f.Fields[j].Input.Blur()
	}
	f.focus = -1
}

// Next focuses the next field, wrapping to the first.
func (f *Form) Next() {
	if len(f.Fields) == 0 {
		return
	}
	f.SetFocus((f.focus + 1) % len(f.Fields))
}

// Prev focuses the previous field, wrapping to the last.
func (f *Form) Prev() {
	if len(f.Fields) == 0 {
		return
	}
	f.SetFocus((f.focus - 1 + len(f.Fields)) % len(f.Fields))
}

// EditingText reports whether the focused field accepts free text. The app
// keeps printable keys away from the keybind system while this is true.
func (f *Form) EditingText() bool {
	return f.focus >= 0 && f.focus < len(f.Fields) && f.Fields[f.focus].Text
}

// Update routes msg to the focused input.
func (f *Form) Update(msg tea.Msg) tea.Cmd {
	if f.focus < 0 || f.focus >= len(f.Fields) {
		return nil
	}
	var cmd tea.Cmd
	f.Fields[f.focus].Input, cmd = f.Fields[f.focus].Input.Update(msg)
	return cmd
}

// Value returns the trimmed value of field i.
func (f *Form) Value(i int) string {
	if i < 0 || i >= len(f.Fields) {
		return ""
	}
	return strings.TrimSpace(f.Fields[i].Input.Value())
}

// SetValue replaces the value of field i.
func (f *Form) SetValue(i int, v string) {
	if i < 0 || i >= len(f.Fields) {
		return
	}
	f.Fields[i].Input.SetValue(v)
}

// SetErr attaches an inline error to field i.
func (f *Form) SetErr(i int, msg string) {
	if i < 0 || i >= len(f.Fields) {
		return
	}
	f.Fields[i].Err = msg
}

// ClearErrs removes every inline error.
func (f *Form) ClearErrs() {
	for i := range f.Fields {
		f.Fields[i].Err = ""
	}
}

// Reset clears all values and errors and focuses the first field.
func (f *Form) Reset() {
	for i := range f.Fields {
		f.Fields[i].Input.SetValue("")
		f.Fields[i].Err = ""
	}
	if len(f.Fields) > 0 {
		f.SetFocus(0)
	}
}

// View renders the fields as aligned label/input rows with inline errors.
func (f *Form) View() string {
	width := 0
	for _, fl := range f.Fields {
		if w := textutil.Width(fl.Label); w > width {
			width = w
		}
	}
	var b strings.Builder
	for i, fl := range f.Fields {
		label := textutil.PadRight(fl.Label, width)
		if i == f.focus {
			b.WriteString(Styles.Selected.Render(label))
		} else {
			b.WriteString(Styles.Muted.Render(label))
		}
		b.WriteString("  " + fl.Input.View())
		if fl.Hint != "" {
			b.WriteString("  " + Styles.Hint.Render(fl.Hint))
		}
		b.WriteString("\n")
		if fl.Err != "" {
			b.WriteString(strings.Repeat(" ", width+2) + Styles.StatusError.Render(fl.Err) + "\n")
		}
	}
	return b.String()
}

// parseInt parses a whole-number field value.
func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// parseFloat parses a numeric field value.
func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(strings.TrimSpace(s), 64)
}
