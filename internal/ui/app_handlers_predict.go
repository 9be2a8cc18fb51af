package ui

import tea "github.com/charmbracelet/bubbletea"

// Handlers for the single-request prediction and optimization panels.
// Panels validate and flag loading before submitting; the app owns the
// client and turns submissions into commands.

func (a *appModelAdapter) handleSupplierSubmit(msg SupplierSubmitMsg) (tea.Model, tea.Cmd) {
	a.setStatus("", false)
	return a, predictSupplierCmd(a.Client, msg.Input)
}

func (a *appModelAdapter) handleSupplierPredicted(msg SupplierPredictedMsg) (tea.Model, tea.Cmd) {
	a.Supplier.finish(msg.Result, msg.Err)
	if msg.Err != nil {
		a.setStatus("Supplier prediction failed", true)
	} else {
		a.setStatus("Supplier prediction ready", false)
	}
	return a, nil
}

func (a *appModelAdapter) handleShipmentSubmit(msg ShipmentSubmitMsg) (tea.Model, tea.Cmd) {
	a.setStatus("", false)
	return a, predictShipmentCmd(a.Client, msg.Input)
}

func (a *appModelAdapter) handleShipmentPredicted(msg ShipmentPredictedMsg) (tea.Model, tea.Cmd) {
	a.Shipment.finish(msg.Result, msg.Err)
	if msg.Err != nil {
		a.setStatus("Shipment prediction failed", true)
	} else {
		a.setStatus("Shipment prediction ready", false)
	}
	return a, nil
}

func (a *appModelAdapter) handleInventorySubmit(msg InventorySubmitMsg) (tea.Model, tea.Cmd) {
	a.setStatus("", false)
	return a, optimizeInventoryCmd(a.Client, msg.Input)
}

func (a *appModelAdapter) handleInventoryOptimized(msg InventoryOptimizedMsg) (tea.Model, tea.Cmd) {
	a.Inventory.finish(msg.Plan, msg.Err)
	if msg.Err != nil {
		a.setStatus("Inventory optimization failed", true)
	} else {
		a.setStatus("Inventory policy ready", false)
	}
	return a, nil
}

func (a *appModelAdapter) handleForecastSubmit(msg ForecastSubmitMsg) (tea.Model, tea.Cmd) {
	a.setStatus("", false)
	return a, forecastCmd(a.Client, msg.Request)
}

func (a *appModelAdapter) handleForecastReady(msg ForecastReadyMsg) (tea.Model, tea.Cmd) {
	a.Forecast.finish(msg.Forecast, msg.Err)
	if msg.Err != nil {
		a.setStatus("Forecast failed", true)
	} else {
		a.setStatus("Forecast ready", false)
	}
	return a, nil
}
