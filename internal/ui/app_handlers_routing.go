package ui

import tea "github.com/charmbracelet/bubbletea"

// Handlers for the routing panel: optimization requests, the customer
// modal, and the scenario save/load/delete flow. Scenario modals stack,
// so a delete confirmation sits on top of the picker.

func (a *appModelAdapter) handleRoutingSubmit(msg RoutingSubmitMsg) (tea.Model, tea.Cmd) {
	a.setStatus("", false)
	return a, optimizeRoutesCmd(a.Client, msg.Request)
}

func (a *appModelAdapter) handleRoutingOptimized(msg RoutingOptimizedMsg) (tea.Model, tea.Cmd) {
	a.Routing.finish(msg.Plan, msg.Err)
	if msg.Err != nil {
		a.setStatus("Route optimization failed", true)
	} else {
		a.setStatus("Routing plan ready", false)
	}
	return a, nil
}

func (a *appModelAdapter) handleShowAddCustomer() (tea.Model, tea.Cmd) {
	modal := NewAddCustomerModal()
	a.Overlays.Push(modal)
	return a, modal.Init()
}

func (a *appModelAdapter) handleCustomerAdded(msg CustomerAddedMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	a.Routing.AddCustomer(msg.Customer)
	name := msg.Customer.Name
	if name == "" {
		name = "customer"
	}
	a.setStatus("Added "+name, false)
	return a, nil
}

func (a *appModelAdapter) handleShowScenarioPicker() (tea.Model, tea.Cmd) {
	return a, listScenariosCmd(a.Scenarios)
}

func (a *appModelAdapter) handleScenarioList(msg ScenarioListMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.setStatus(msg.Err.Error(), true)
		return a, nil
	}
	if len(msg.Scenarios) == 0 {
		a.setStatus("No saved scenarios yet, use SPC o w to save one", false)
		return a, nil
	}
	modal := NewScenarioPickerModal(msg.Scenarios)
	a.Overlays.Push(modal)
	return a, modal.Init()
}

func (a *appModelAdapter) handleScenarioPicked(msg ScenarioPickedMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	return a, loadScenarioCmd(a.Scenarios, msg.Name)
}

func (a *appModelAdapter) handleScenarioLoaded(msg ScenarioLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.setStatus(msg.Err.Error(), true)
		return a, nil
	}
	a.Routing.SetScenario(msg.Scenario)
	a.setStatus("Loaded scenario "+msg.Scenario.Name, false)
	return a, nil
}

func (a *appModelAdapter) handleShowSaveScenario() (tea.Model, tea.Cmd) {
	modal := NewSaveScenarioModal()
	a.Overlays.Push(modal)
	return a, modal.Init()
}

func (a *appModelAdapter) handleSaveScenario(msg SaveScenarioMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	sc, ok := a.Routing.Scenario(msg.Name)
	if !ok {
		a.setStatus("Fix the routing form before saving", true)
		return a, nil
	}
	return a, saveScenarioCmd(a.Scenarios, sc)
}

func (a *appModelAdapter) handleScenarioSaved(msg ScenarioSavedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.setStatus(msg.Err.Error(), true)
		return a, nil
	}
	a.Routing.scenarioName = msg.Name
	a.setStatus("Saved scenario to "+msg.Path, false)
	return a, nil
}

func (a *appModelAdapter) handleShowDeleteScenario(msg ShowDeleteScenarioMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Push(NewDeleteScenarioConfirmModal(msg.Name))
	return a, nil
}

func (a *appModelAdapter) handleDeleteScenario(msg DeleteScenarioMsg) (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	return a, deleteScenarioCmd(a.Scenarios, msg.Name)
}

func (a *appModelAdapter) handleScenarioDeleted(msg ScenarioDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil {
		a.setStatus(msg.Err.Error(), true)
		return a, nil
	}
	// The picker usually sits under the dismissed confirmation.
	if top, ok := a.Overlays.Peek(); ok {
		if picker, ok := top.(*ScenarioPickerModal); ok {
			picker.RemoveSelected()
		}
	}
	if a.Routing.scenarioName == msg.Name {
		a.Routing.scenarioName = ""
	}
	a.setStatus("Deleted scenario "+msg.Name, false)
	return a, nil
}
