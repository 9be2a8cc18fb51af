package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Handlers for the batch panel: roster loads happen off the update loop,
// evaluation goes through the backend's parallel batch endpoint.

func (a *appModelAdapter) handleBatchLoad(msg BatchLoadMsg) (tea.Model, tea.Cmd) {
	a.setStatus("", false)
	return a, loadBatchFileCmd(msg.Path)
}

func (a *appModelAdapter) handleBatchLoaded(msg BatchLoadedMsg) (tea.Model, tea.Cmd) {
	a.Batch.finishLoad(msg.Path, msg.Suppliers, msg.Err)
	if msg.Err != nil {
		a.setStatus("Roster load failed", true)
	} else {
		a.setStatus(fmt.Sprintf("Loaded %d suppliers", len(msg.Suppliers)), false)
	}
	return a, nil
}

func (a *appModelAdapter) handleBatchSubmit(msg BatchSubmitMsg) (tea.Model, tea.Cmd) {
	a.setStatus("", false)
	return a, evaluateSuppliersCmd(a.Client, msg.Inputs)
}

func (a *appModelAdapter) handleBatchEvaluated(msg BatchEvaluatedMsg) (tea.Model, tea.Cmd) {
	a.Batch.finishEval(msg.Result, msg.Err)
	if msg.Err != nil {
		a.setStatus("Batch evaluation failed", true)
	} else {
		a.setStatus(fmt.Sprintf("Evaluated %d suppliers, %d failed", msg.Result.Total, msg.Result.Failed), msg.Result.Failed > 0)
	}
	return a, nil
}
