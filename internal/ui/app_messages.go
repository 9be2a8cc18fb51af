package ui

import (
	"time"

	"chainboard/internal/api"
	"chainboard/internal/batch"
	"chainboard/internal/scenario"
)

// Panel submissions. Panels validate locally, then hand the request to the
// app, which owns the client.

// SupplierSubmitMsg asks for a supplier reliability prediction.
type SupplierSubmitMsg struct {
	Input api.SupplierInput
}

// ShipmentSubmitMsg asks for a shipment delay prediction.
type ShipmentSubmitMsg struct {
	Input api.ShipmentInput
}

// InventorySubmitMsg asks for an inventory policy optimization.
type InventorySubmitMsg struct {
	Input api.InventoryInput
}

// ForecastSubmitMsg asks for a demand forecast.
type ForecastSubmitMsg struct {
	Request api.ForecastRequest
}

// RoutingSubmitMsg asks for a vehicle routing optimization.
type RoutingSubmitMsg struct {
	Request api.RoutingRequest
}

// BatchLoadMsg asks the app to read a supplier CSV from disk.
type BatchLoadMsg struct {
	Path string
}

// BatchSubmitMsg asks for a batch evaluation of the loaded suppliers.
type BatchSubmitMsg struct {
	Inputs []api.SupplierInput
}

// Backend results. Err is set when the request failed; panels render it
// inline and the status bar shows it in red.

// SupplierPredictedMsg carries a supplier prediction result.
type SupplierPredictedMsg struct {
	Result api.SupplierPrediction
	Err    error
}

// ShipmentPredictedMsg carries a shipment prediction result.
type ShipmentPredictedMsg struct {
	Result api.ShipmentPrediction
	Err    error
}

// InventoryOptimizedMsg carries an inventory policy result.
type InventoryOptimizedMsg struct {
	Plan api.InventoryPlan
	Err  error
}

// ForecastReadyMsg carries a demand forecast result.
type ForecastReadyMsg struct {
	Forecast api.Forecast
	Err      error
}

// RoutingOptimizedMsg carries a routing plan result.
type RoutingOptimizedMsg struct {
	Plan api.RoutingPlan
	Err  error
}

// BatchLoadedMsg carries suppliers read from a CSV file.
type BatchLoadedMsg struct {
	Path      string
	Suppliers []batch.Supplier
	Err       error
}

// BatchEvaluatedMsg carries a batch evaluation result.
type BatchEvaluatedMsg struct {
	Result api.BatchResult
	Err    error
}

// StatusRefreshedMsg carries the periodic /health poll outcome.
type StatusRefreshedMsg struct {
	Health api.Health
	Err    error
}

// ModelsInfoMsg carries the model registry for the models panel.
type ModelsInfoMsg struct {
	Info api.ModelsInfo
	Err  error
}

// ModelsReloadedMsg carries the outcome of a confirmed model reload.
type ModelsReloadedMsg struct {
	Result api.ReloadResult
	Err    error
}

// Scenario flow.

// ScenarioListMsg carries the saved scenarios for the picker.
type ScenarioListMsg struct {
	Scenarios []scenario.Scenario
	Err       error
}

// ScenarioPickedMsg is sent when the user selects a scenario to load.
type ScenarioPickedMsg struct {
	Name string
}

// ScenarioLoadedMsg carries a scenario read from disk.
type ScenarioLoadedMsg struct {
	Scenario scenario.Scenario
	Err      error
}

// SaveScenarioMsg is sent when the user names a scenario to save.
type SaveScenarioMsg struct {
	Name string
}

// ScenarioSavedMsg carries the outcome of a scenario save.
type ScenarioSavedMsg struct {
	Name string
	Path string
	Err  error
}

// ShowDeleteScenarioMsg asks for a delete confirmation on top of the picker.
type ShowDeleteScenarioMsg struct {
	Name string
}

// DeleteScenarioMsg is sent when the user confirms a scenario delete.
type DeleteScenarioMsg struct {
	Name string
}

// ScenarioDeletedMsg carries the outcome of a scenario delete.
type ScenarioDeletedMsg struct {
	Name string
	Err  error
}

// CustomerAddedMsg is sent when the add-customer modal submits.
type CustomerAddedMsg struct {
	Customer api.Location
}

// Keybind triggers.

// SwitchPanelMsg activates a panel.
type SwitchPanelMsg struct {
	Mode AppMode
}

// ShowHistoryMsg opens the request history overlay.
type ShowHistoryMsg struct{}

// ShowReloadModelsMsg opens the reload confirmation modal.
type ShowReloadModelsMsg struct{}

// ReloadModelsMsg is sent when the user confirms the reload.
type ReloadModelsMsg struct{}

// ShowScenarioPickerMsg opens the scenario picker (routing panel).
type ShowScenarioPickerMsg struct{}

// ShowSaveScenarioMsg opens the save-scenario name prompt (routing panel).
type ShowSaveScenarioMsg struct{}

// ShowAddCustomerMsg opens the add-customer modal (routing panel).
type ShowAddCustomerMsg struct{}

// RefreshMsg re-polls backend health on demand.
type RefreshMsg struct{}

// RefreshModelsMsg re-fetches the model registry.
type RefreshModelsMsg struct{}

// ClearPanelMsg resets the active panel's form and result.
type ClearPanelMsg struct{}

// DismissModalMsg closes the top overlay.
type DismissModalMsg struct{}

// HistoryChangedMsg signals that the recorder gained an entry; the runner
// sends it via Program.Send from the recorder's onChange hook.
type HistoryChangedMsg struct{}

// tickMsg drives the periodic health poll.
type tickMsg time.Time
