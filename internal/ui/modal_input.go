package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputModal prompts for a single line of text, e.g. a scenario name.
type InputModal struct {
	Title    string
	OnSubmit func(value string) tea.Msg
	input    textinput.Model
}

// Ensure InputModal implements View.
var _ View = (*InputModal)(nil)

// NewInputModal creates a single-line input modal.
func NewInputModal(title, placeholder string, onSubmit func(value string) tea.Msg) *InputModal {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Width = 40
	ti.Focus()
	return &InputModal{Title: title, OnSubmit: onSubmit, input: ti}
}

// NewSaveScenarioModal prompts for the name to save the routing form under.
func NewSaveScenarioModal() *InputModal {
	return NewInputModal("Save scenario", "scenario name", func(value string) tea.Msg {
		return SaveScenarioMsg{Name: value}
	})
}

// Init implements View.
func (m *InputModal) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (m *InputModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value != "" && m.OnSubmit != nil {
				return m, func() tea.Msg { return m.OnSubmit(value) }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements View.
func (m *InputModal) View() string {
	content := Styles.Title.Render(m.Title) + "\n\n"
	content += m.input.View() + "\n\n"
	content += Styles.Hint.Render("Enter: save  Esc: cancel")
	return Styles.Box.Render(content)
}
