package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// ConfirmModal asks before an action that touches the backend or disk.
// Enter or y confirms; Esc cancels.
type ConfirmModal struct {
	Title     string
	Label     string
	Details   string // optional warning details
	OnConfirm func() tea.Msg
}

// Ensure ConfirmModal implements View.
var _ View = (*ConfirmModal)(nil)

// NewConfirmModal creates a confirmation modal.
func NewConfirmModal(title, label string, onConfirm func() tea.Msg) *ConfirmModal {
	return &ConfirmModal{Title: title, Label: label, OnConfirm: onConfirm}
}

// WithDetails adds warning details to the modal.
func (m *ConfirmModal) WithDetails(details string) *ConfirmModal {
	m.Details = details
	return m
}

// NewReloadModelsConfirmModal confirms a backend model reload.
func NewReloadModelsConfirmModal() *ConfirmModal {
	return NewConfirmModal(
		"Reload models?",
		"The backend will re-read every model from disk.",
		func() tea.Msg { return ReloadModelsMsg{} },
	).WithDetails("In-flight predictions may fail while models reload")
}

// NewDeleteScenarioConfirmModal confirms deleting a saved routing scenario.
func NewDeleteScenarioConfirmModal(name string) *ConfirmModal {
	return NewConfirmModal(
		"Delete scenario?",
		fmt.Sprintf("Scenario: %s", name),
		func() tea.Msg { return DeleteScenarioMsg{Name: name} },
	).WithDetails("The scenario file will be removed from disk")
}

// Init implements View.
func (m *ConfirmModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ConfirmModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "n":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter", "y":
			if m.OnConfirm != nil {
				return m, m.OnConfirm
			}
		}
	}
	return m, nil
}

// View implements View.
func (m *ConfirmModal) View() string {
	content := Styles.TitleWarning.Render(m.Title) + "\n\n"
	content += Styles.Label.Render(m.Label)
	if m.Details != "" {
		content += "\n" + Styles.Details.Render(m.Details)
	}
	content += "\n\n" + Styles.Hint.Render("y/Enter: confirm  Esc: cancel")
	return Styles.BoxDanger.Render(content)
}
