package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/batch"
	"chainboard/internal/scenario"
)

// Commands wrap internal/api calls so panels never block the update loop.
// The client enforces the request timeout, so context.Background is fine
// here.

func refreshStatusCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		health, err := c.Health(context.Background())
		return StatusRefreshedMsg{Health: health, Err: err}
	}
}

func predictSupplierCmd(c *api.Client, in api.SupplierInput) tea.Cmd {
	return func() tea.Msg {
		result, err := c.PredictSupplier(context.Background(), in)
		return SupplierPredictedMsg{Result: result, Err: err}
	}
}

func predictShipmentCmd(c *api.Client, in api.ShipmentInput) tea.Cmd {
	return func() tea.Msg {
		result, err := c.PredictShipment(context.Background(), in)
		return ShipmentPredictedMsg{Result: result, Err: err}
	}
}

func optimizeInventoryCmd(c *api.Client, in api.InventoryInput) tea.Cmd {
	return func() tea.Msg {
		plan, err := c.OptimizeInventory(context.Background(), in)
		return InventoryOptimizedMsg{Plan: plan, Err: err}
	}
}

func forecastCmd(c *api.Client, req api.ForecastRequest) tea.Cmd {
	return func() tea.Msg {
		forecast, err := c.ForecastDemand(context.Background(), req)
		return ForecastReadyMsg{Forecast: forecast, Err: err}
	}
}

func optimizeRoutesCmd(c *api.Client, req api.RoutingRequest) tea.Cmd {
	return func() tea.Msg {
		plan, err := c.OptimizeRoutes(context.Background(), req)
		return RoutingOptimizedMsg{Plan: plan, Err: err}
	}
}

func evaluateSuppliersCmd(c *api.Client, inputs []api.SupplierInput) tea.Cmd {
	return func() tea.Msg {
		result, err := c.EvaluateSuppliers(context.Background(), inputs)
		return BatchEvaluatedMsg{Result: result, Err: err}
	}
}

func modelsInfoCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		info, err := c.ModelsInfo(context.Background())
		return ModelsInfoMsg{Info: info, Err: err}
	}
}

func reloadModelsCmd(c *api.Client) tea.Cmd {
	return func() tea.Msg {
		result, err := c.ReloadModels(context.Background())
		return ModelsReloadedMsg{Result: result, Err: err}
	}
}

// loadBatchFileCmd reads a supplier CSV off the update loop.
func loadBatchFileCmd(path string) tea.Cmd {
	return func() tea.Msg {
		suppliers, err := batch.LoadSuppliers(path)
		return BatchLoadedMsg{Path: path, Suppliers: suppliers, Err: err}
	}
}

func listScenariosCmd(store *scenario.Store) tea.Cmd {
	return func() tea.Msg {
		scenarios, err := store.List()
		return ScenarioListMsg{Scenarios: scenarios, Err: err}
	}
}

func loadScenarioCmd(store *scenario.Store, name string) tea.Cmd {
	return func() tea.Msg {
		sc, err := store.Load(name)
		return ScenarioLoadedMsg{Scenario: sc, Err: err}
	}
}

func saveScenarioCmd(store *scenario.Store, sc scenario.Scenario) tea.Cmd {
	return func() tea.Msg {
		path, err := store.Save(sc)
		return ScenarioSavedMsg{Name: sc.Name, Path: path, Err: err}
	}
}

func deleteScenarioCmd(store *scenario.Store, name string) tea.Cmd {
	return func() tea.Msg {
		err := store.Delete(name)
		return ScenarioDeletedMsg{Name: name, Err: err}
	}
}

// tickCmd schedules the next background health poll.
func tickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = 5 * time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
