package ui

import tea "github.com/charmbracelet/bubbletea"

// Handlers for backend health, the model registry, and the history
// overlay.

func (a *appModelAdapter) handleStatusRefreshed(msg StatusRefreshedMsg) (tea.Model, tea.Cmd) {
	online := msg.Err == nil
	a.Online = online
	if online {
		a.Health = msg.Health
	}
	a.Models.setHealth(msg.Health, online)
	return a, nil
}

func (a *appModelAdapter) handleRefresh() (tea.Model, tea.Cmd) {
	a.setStatus("Refreshing backend health", false)
	return a, refreshStatusCmd(a.Client)
}

func (a *appModelAdapter) handleRefreshModels() (tea.Model, tea.Cmd) {
	return a, tea.Batch(
		a.Models.begin(),
		modelsInfoCmd(a.Client),
		refreshStatusCmd(a.Client),
	)
}

func (a *appModelAdapter) handleModelsInfo(msg ModelsInfoMsg) (tea.Model, tea.Cmd) {
	a.Models.finishInfo(msg.Info, msg.Err)
	if msg.Err != nil {
		a.setStatus("Model registry fetch failed", true)
	}
	return a, nil
}

func (a *appModelAdapter) handleShowReloadModels() (tea.Model, tea.Cmd) {
	a.Overlays.Push(NewReloadModelsConfirmModal())
	return a, nil
}

func (a *appModelAdapter) handleReloadModels() (tea.Model, tea.Cmd) {
	a.Overlays.Pop()
	return a, tea.Batch(a.Models.begin(), reloadModelsCmd(a.Client))
}

func (a *appModelAdapter) handleModelsReloaded(msg ModelsReloadedMsg) (tea.Model, tea.Cmd) {
	a.Models.finishReload(msg.Result, msg.Err)
	if msg.Err != nil {
		a.setStatus("Model reload failed", true)
		return a, nil
	}
	status := msg.Result.Message
	if status == "" {
		status = "Models reloaded"
	}
	a.setStatus(status, false)
	// The registry changed; refetch it and the health snapshot.
	return a, tea.Batch(modelsInfoCmd(a.Client), refreshStatusCmd(a.Client))
}

func (a *appModelAdapter) handleShowHistory() (tea.Model, tea.Cmd) {
	v := NewHistoryView(a.Recorder)
	if a.Width > 0 {
		v.Update(tea.WindowSizeMsg{Width: a.Width, Height: a.Height})
	}
	a.Overlays.Push(v)
	return a, nil
}

func (a *appModelAdapter) handleHistoryChanged() (tea.Model, tea.Cmd) {
	if top, ok := a.Overlays.Peek(); ok {
		if hv, ok := top.(*HistoryView); ok {
			hv.Refresh()
		}
	}
	return a, nil
}
