package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/config"
	"chainboard/internal/scenario"
	"chainboard/internal/trace"
)

// newTestApp builds an app wired to a client that never gets called; tests
// deliver backend results as messages instead of running network commands.
func newTestApp(t *testing.T) *appModelAdapter {
	t.Helper()
	store, err := scenario.NewStore(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	m := NewAppModel(
		api.NewClient("http://127.0.0.1:1"),
		trace.NewRecorder(10, nil),
		store,
		config.Default(),
	)
	return m.AsTeaModel().(*appModelAdapter)
}

// pressKey sends one key through the app and returns the resulting command
// without executing it.
func pressKey(a *appModelAdapter, k string) tea.Cmd {
	_, cmd := a.Update(keyMsg(k))
	return cmd
}

// fire executes cmd once and returns its message.
func fire(t *testing.T, cmd tea.Cmd) tea.Msg {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	return cmd()
}

func TestAppModel_TabSwitchesPanels(t *testing.T) {
	a := newTestApp(t)
	if a.Mode != ModeSupplier {
		t.Fatalf("expected supplier panel first, got %v", a.Mode)
	}
	a.Update(keyMsg("tab"))
	if a.Mode != ModeShipment {
		t.Errorf("tab: expected shipment, got %v", a.Mode)
	}
	a.Update(keyMsg("shift+tab"))
	a.Update(keyMsg("shift+tab"))
	if a.Mode != ModeModels {
		t.Errorf("shift+tab should wrap to models, got %v", a.Mode)
	}
}

func TestAppModel_LeaderDigitJumpsPanel(t *testing.T) {
	a := newTestApp(t)
	pressKey(a, " ")
	if !a.KeyHandler.LeaderWaiting {
		t.Fatal("expected leader waiting")
	}
	msg := fire(t, pressKey(a, "5"))
	sw, ok := msg.(SwitchPanelMsg)
	if !ok || sw.Mode != ModeRouting {
		t.Fatalf("expected SwitchPanelMsg to routing, got %#v", msg)
	}
	a.Update(sw)
	if a.Mode != ModeRouting {
		t.Errorf("expected routing active, got %v", a.Mode)
	}
}

func TestAppModel_BracketSwitchesUnlessEditingText(t *testing.T) {
	a := newTestApp(t)
	a.Update(SwitchPanelMsg{Mode: ModeRouting})

	// Depot name field is free text, so "[" is typed, not a panel switch.
	pressKey(a, "[")
	if a.Mode != ModeRouting {
		t.Fatalf("bracket must not switch panels while editing text, got %v", a.Mode)
	}
	if got := a.Routing.form.Value(0); got != "[" {
		t.Errorf("expected bracket typed into depot field, got %q", got)
	}

	// A numeric field releases printable keys to the keybinds.
	a.Update(keyMsg("down"))
	msg := fire(t, pressKey(a, "]"))
	sw, ok := msg.(SwitchPanelMsg)
	if !ok || sw.Mode != ModeBatch {
		t.Fatalf("expected switch to batch, got %#v", msg)
	}
}

func TestAppModel_SupplierSubmitFlow(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("14"))
	a.Update(keyMsg("down"))
	a.Update(keyMsg("250"))
	a.Update(keyMsg("down"))
	a.Update(keyMsg("30"))

	cmd := pressKey(a, "enter")
	batch, ok := fire(t, cmd).(tea.BatchMsg)
	if !ok {
		t.Fatal("expected spinner tick and submit batch")
	}
	var submit SupplierSubmitMsg
	found := false
	for _, c := range batch {
		if m, ok := c().(SupplierSubmitMsg); ok {
			submit = m
			found = true
		}
	}
	if !found {
		t.Fatal("expected SupplierSubmitMsg in batch")
	}
	want := api.SupplierInput{LeadTime: 14, Cost: 250, PastOrders: 30}
	if submit.Input != want {
		t.Errorf("submit input = %+v, want %+v", submit.Input, want)
	}
	if !a.Supplier.loading {
		t.Error("expected panel loading after submit")
	}

	// Deliver the backend result directly.
	a.Update(SupplierPredictedMsg{Result: api.SupplierPrediction{
		Reliable:              true,
		Label:                 "Reliable",
		Confidence:            0.92,
		ProbabilityReliable:   0.92,
		ProbabilityUnreliable: 0.08,
		Model:                 "RandomForestClassifier",
	}})
	if a.Supplier.loading {
		t.Error("expected loading cleared after result")
	}
	view := a.View()
	if !strings.Contains(view, "Reliable") {
		t.Error("expected verdict in view")
	}
	if !strings.Contains(view, "RandomForestClassifier") {
		t.Error("expected model name in view")
	}
	if a.Status != "Supplier prediction ready" {
		t.Errorf("status = %q", a.Status)
	}
}

func TestAppModel_SupplierValidationStaysLocal(t *testing.T) {
	a := newTestApp(t)
	a.Update(keyMsg("999"))
	a.Update(keyMsg("down"))
	a.Update(keyMsg("250"))
	a.Update(keyMsg("down"))
	a.Update(keyMsg("30"))

	cmd := pressKey(a, "enter")
	if cmd != nil {
		t.Error("out-of-range input must not produce a request")
	}
	if a.Supplier.loading {
		t.Error("panel must not enter loading on invalid input")
	}
	if !strings.Contains(a.View(), "lead_time must be between") {
		t.Error("expected range error under the form")
	}
}

func TestAppModel_HistoryOverlay(t *testing.T) {
	a := newTestApp(t)
	pressKey(a, " ")
	msg := fire(t, pressKey(a, "t"))
	if _, ok := msg.(ShowHistoryMsg); !ok {
		t.Fatalf("expected ShowHistoryMsg, got %#v", msg)
	}
	a.Update(msg)
	if a.Overlays.Len() != 1 {
		t.Fatalf("expected history overlay, got %d", a.Overlays.Len())
	}
	if !strings.Contains(a.View(), "Request history") {
		t.Error("expected history title in view")
	}

	msg = fire(t, pressKey(a, "esc"))
	a.Update(msg)
	if a.Overlays.Len() != 0 {
		t.Errorf("expected overlay dismissed, got %d", a.Overlays.Len())
	}
}

func TestAppModel_ReloadConfirmFlow(t *testing.T) {
	a := newTestApp(t)
	pressKey(a, " ")
	a.Update(fire(t, pressKey(a, "r")))
	if a.Overlays.Len() != 1 {
		t.Fatal("expected reload confirmation modal")
	}
	if !strings.Contains(a.View(), "Reload models?") {
		t.Error("expected confirmation prompt in view")
	}

	// n dismisses without reloading.
	a.Update(fire(t, pressKey(a, "n")))
	if a.Overlays.Len() != 0 {
		t.Fatal("expected modal dismissed")
	}
	if a.Models.loading {
		t.Error("dismissed confirm must not start a reload")
	}

	// y confirms; the app pops the modal and spins up the reload.
	pressKey(a, " ")
	a.Update(fire(t, pressKey(a, "r")))
	msg := fire(t, pressKey(a, "y"))
	if _, ok := msg.(ReloadModelsMsg); !ok {
		t.Fatalf("expected ReloadModelsMsg, got %#v", msg)
	}
	a.Update(msg)
	if a.Overlays.Len() != 0 {
		t.Error("expected modal popped after confirm")
	}
	if !a.Models.loading {
		t.Error("expected models panel loading during reload")
	}

	a.Update(ModelsReloadedMsg{Result: api.ReloadResult{Status: "success", Message: "3 models reloaded"}})
	if a.Models.loading {
		t.Error("expected loading cleared after reload result")
	}
	if a.Status != "3 models reloaded" {
		t.Errorf("status = %q", a.Status)
	}
}

func TestAppModel_ScenarioPickerFlow(t *testing.T) {
	a := newTestApp(t)
	seed := scenario.Scenario{
		Name:      "east coast",
		Algorithm: api.AlgorithmNearestNeighbor,
		Depot:     api.Location{Name: "Newark DC", Lat: 40.73, Lon: -74.17},
		Customers: []api.Location{{Name: "Brooklyn", Lat: 40.67, Lon: -73.94, Demand: 120}},
	}
	if _, err := a.Scenarios.Save(seed); err != nil {
		t.Fatal(err)
	}
	a.Update(SwitchPanelMsg{Mode: ModeRouting})

	pressKey(a, " ")
	pressKey(a, "o")
	if !a.KeyHandler.LeaderWaiting {
		t.Fatal("expected leader still waiting inside scenario submenu")
	}
	msg := fire(t, pressKey(a, "s"))
	_, cmd := a.Update(msg) // runs the list command against the store
	a.Update(fire(t, cmd))
	if a.Overlays.Len() != 1 {
		t.Fatalf("expected scenario picker, got %d overlays", a.Overlays.Len())
	}

	// Enter loads the selected scenario into the routing panel.
	msg = fire(t, pressKey(a, "enter"))
	if _, ok := msg.(ScenarioPickedMsg); !ok {
		t.Fatalf("expected ScenarioPickedMsg, got %#v", msg)
	}
	_, cmd = a.Update(msg)
	a.Update(fire(t, cmd))
	if a.Overlays.Len() != 0 {
		t.Error("expected picker dismissed after load")
	}
	if a.Routing.scenarioName != "east coast" {
		t.Errorf("scenario name = %q", a.Routing.scenarioName)
	}
	if len(a.Routing.customers) != 1 || a.Routing.customers[0].Name != "Brooklyn" {
		t.Errorf("customers = %+v", a.Routing.customers)
	}
	if a.Routing.algorithm != api.AlgorithmNearestNeighbor {
		t.Errorf("algorithm = %q", a.Routing.algorithm)
	}
}

func TestAppModel_ScenarioDeleteStacksConfirm(t *testing.T) {
	a := newTestApp(t)
	seed := scenario.Scenario{
		Name:      "midwest",
		Depot:     api.Location{Name: "Chicago DC", Lat: 41.88, Lon: -87.63},
		Customers: []api.Location{{Name: "Madison", Lat: 43.07, Lon: -89.40, Demand: 60}},
	}
	if _, err := a.Scenarios.Save(seed); err != nil {
		t.Fatal(err)
	}
	a.Update(SwitchPanelMsg{Mode: ModeRouting})
	pressKey(a, " ")
	pressKey(a, "o")
	msg := fire(t, pressKey(a, "s"))
	_, cmd := a.Update(msg)
	a.Update(fire(t, cmd))

	// x asks for confirmation on top of the picker.
	a.Update(fire(t, pressKey(a, "x")))
	if a.Overlays.Len() != 2 {
		t.Fatalf("expected confirm stacked on picker, got %d", a.Overlays.Len())
	}

	_, cmd = a.Update(fire(t, pressKey(a, "y")))
	a.Update(fire(t, cmd)) // runs the delete against the store
	if a.Overlays.Len() != 1 {
		t.Errorf("expected picker left after confirm popped, got %d", a.Overlays.Len())
	}
	if !strings.Contains(a.Status, "Deleted scenario") {
		t.Errorf("status = %q", a.Status)
	}
	if list, err := a.Scenarios.List(); err != nil || len(list) != 0 {
		t.Errorf("expected store emptied, got %v err %v", list, err)
	}
}

func TestAppModel_StatusBarTracksBackend(t *testing.T) {
	a := newTestApp(t)
	if !strings.Contains(a.View(), "offline") {
		t.Error("expected offline before first poll")
	}
	a.Update(StatusRefreshedMsg{Health: api.Health{
		Status: "healthy",
		Models: api.ModelsInfo{ModelCount: 4},
	}})
	view := a.View()
	if !strings.Contains(view, "online") {
		t.Error("expected online after poll")
	}
	if !strings.Contains(view, "4 models") {
		t.Error("expected model count in status bar")
	}
}

func TestAppModel_ClearPanel(t *testing.T) {
	a := newTestApp(t)
	a.Update(SupplierPredictedMsg{Result: api.SupplierPrediction{Label: "Reliable", Reliable: true}})
	if a.Supplier.result == nil {
		t.Fatal("expected result set")
	}
	pressKey(a, " ")
	a.Update(fire(t, pressKey(a, "x")))
	if a.Supplier.result != nil {
		t.Error("expected result cleared")
	}
	if !strings.Contains(a.Status, "cleared") {
		t.Errorf("status = %q", a.Status)
	}
}

func TestAppModel_SpinnerTickOnlyFeedsActivePanel(t *testing.T) {
	a := newTestApp(t)
	a.Supplier.loading = true
	_, cmd := a.Update(spinner.TickMsg{})
	if cmd == nil {
		t.Error("loading panel should reschedule its spinner")
	}
	a.Supplier.loading = false
	_, cmd = a.Update(spinner.TickMsg{})
	if cmd != nil {
		t.Error("idle panel should drop spinner ticks")
	}
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestNextPanelMode(t *testing.T) {
	if got := nextPanelMode(ModeSupplier, -1); got != ModeModels {
		t.Errorf("wrap back: got %v", got)
	}
	if got := nextPanelMode(ModeModels, 1); got != ModeSupplier {
		t.Errorf("wrap forward: got %v", got)
	}
}
