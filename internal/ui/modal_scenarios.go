package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/scenario"
)

// ScenarioPickerModal lists saved routing scenarios for loading or deletion.
type ScenarioPickerModal struct {
	list list.Model
}

type scenarioItem struct {
	scenario.Scenario
}

func (s scenarioItem) FilterValue() string { return s.Name }
func (s scenarioItem) Title() string {
	return fmt.Sprintf("%s  %d customers, %.0f demand", s.Name, len(s.Customers), s.TotalDemand())
}
func (s scenarioItem) Description() string { return "" }

// Ensure ScenarioPickerModal implements View.
var _ View = (*ScenarioPickerModal)(nil)

// NewScenarioPickerModal creates a picker over the given scenarios.
func NewScenarioPickerModal(scenarios []scenario.Scenario) *ScenarioPickerModal {
	items := make([]list.Item, len(scenarios))
	for i, s := range scenarios {
		items[i] = scenarioItem{Scenario: s}
	}
	delegate := NewCompactListDelegate()
	l := list.New(items, delegate, 48, 12)
	l.Title = "Load scenario"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	l.Styles.Title = Styles.Title
	return &ScenarioPickerModal{list: l}
}

// Selected returns the highlighted scenario name, or "".
func (m *ScenarioPickerModal) Selected() string {
	if item, ok := m.list.SelectedItem().(scenarioItem); ok {
		return item.Name
	}
	return ""
}

// RemoveSelected drops the highlighted scenario from the list after a
// confirmed delete.
func (m *ScenarioPickerModal) RemoveSelected() {
	m.list.RemoveItem(m.list.Index())
}

// Init implements View.
func (m *ScenarioPickerModal) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (m *ScenarioPickerModal) Update(msg tea.Msg) (View, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && m.list.FilterState() != list.Filtering {
		switch key.String() {
		case "esc":
			return m, func() tea.Msg { return DismissModalMsg{} }
		case "enter":
			if name := m.Selected(); name != "" {
				return m, func() tea.Msg { return ScenarioPickedMsg{Name: name} }
			}
			return m, nil
		case "x":
			// Deleting a file gets its own confirmation on top.
			if name := m.Selected(); name != "" {
				return m, func() tea.Msg { return ShowDeleteScenarioMsg{Name: name} }
			}
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements View.
func (m *ScenarioPickerModal) View() string {
	help := "Enter: load  x: delete  Esc: cancel"
	return Styles.BoxCompact.Render(m.list.View() + "\n" + Styles.Hint.Render(help))
}
