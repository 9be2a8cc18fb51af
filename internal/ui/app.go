package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/config"
	"chainboard/internal/scenario"
	"chainboard/internal/trace"
)

// AppModel is the root model: one panel per dashboard concern, modal
// overlays on top, and a leader-key handler routing commands.
type AppModel struct {
	Client    *api.Client
	Recorder  *trace.Recorder
	Scenarios *scenario.Store
	Cfg       config.Config

	Mode       AppMode
	Focus      *FocusManager
	KeyHandler *KeyHandler
	Overlays   *OverlayStack

	Supplier  *SupplierPanel
	Shipment  *ShipmentPanel
	Inventory *InventoryPanel
	Forecast  *ForecastPanel
	Routing   *RoutingPanel
	Batch     *BatchPanel
	Models    *ModelsPanel

	Online        bool
	Health        api.Health
	Status        string
	StatusIsError bool
	Width         int
	Height        int
}

// Ensure AppModel can be used as tea.Model via adapter.
var _ tea.Model = (*appModelAdapter)(nil)

// appModelAdapter wraps AppModel to implement tea.Model.
type appModelAdapter struct {
	*AppModel
}

// NewAppModel creates the root application model and wires the keybinds.
func NewAppModel(client *api.Client, recorder *trace.Recorder, scenarios *scenario.Store, cfg config.Config) *AppModel {
	m := &AppModel{
		Client:    client,
		Recorder:  recorder,
		Scenarios: scenarios,
		Cfg:       cfg,
		Focus:     NewFocusManager(),
		Overlays:  &OverlayStack{},
		Supplier:  NewSupplierPanel(),
		Shipment:  NewShipmentPanel(),
		Inventory: NewInventoryPanel(),
		Forecast:  NewForecastPanel(),
		Routing:   NewRoutingPanel(cfg.DefaultAlgorithm),
		Batch:     NewBatchPanel(),
		Models:    NewModelsPanel(),
	}
	m.Mode = m.Focus.Current
	m.Focus.OnChange = func(from, to AppMode) { m.Mode = to }

	reg := NewKeybindRegistry()
	reg.BindWithDesc("SPC q", tea.Quit, "Quit")
	reg.BindWithDesc("SPC h", func() tea.Msg { return RefreshMsg{} }, "Refresh health")
	reg.BindWithDesc("SPC t", func() tea.Msg { return ShowHistoryMsg{} }, "Request history")
	reg.BindWithDesc("SPC m", func() tea.Msg { return SwitchPanelMsg{Mode: ModeModels} }, "Models")
	reg.BindWithDesc("SPC r", func() tea.Msg { return ShowReloadModelsMsg{} }, "Reload models")
	reg.BindWithDesc("SPC x", func() tea.Msg { return ClearPanelMsg{} }, "Clear panel")
	for i, mode := range PanelModes() {
		target := mode
		reg.BindWithDesc(fmt.Sprintf("SPC %d", i+1),
			func() tea.Msg { return SwitchPanelMsg{Mode: target} }, target.String())
	}
	routingOnly := []AppMode{ModeRouting}
	reg.BindWithDescForMode("SPC o s", func() tea.Msg { return ShowScenarioPickerMsg{} }, "Load scenario", routingOnly)
	reg.BindWithDescForMode("SPC o w", func() tea.Msg { return ShowSaveScenarioMsg{} }, "Save scenario", routingOnly)
	reg.BindWithDesc("]", func() tea.Msg { return SwitchPanelMsg{Mode: nextPanelMode(m.Mode, 1)} }, "Next panel")
	reg.BindWithDesc("[", func() tea.Msg { return SwitchPanelMsg{Mode: nextPanelMode(m.Mode, -1)} }, "Prev panel")
	m.KeyHandler = NewKeyHandler(reg)
	return m
}

// nextPanelMode steps through the tab order with wraparound.
func nextPanelMode(mode AppMode, delta int) AppMode {
	order := PanelModes()
	for i, m := range order {
		if m == mode {
			return order[(i+delta+len(order))%len(order)]
		}
	}
	return order[0]
}

// AsTeaModel returns a tea.Model adapter for use with tea.NewProgram.
func (m *AppModel) AsTeaModel() tea.Model {
	return &appModelAdapter{AppModel: m}
}

// Init implements tea.Model. It kicks off the first health poll, the
// poll ticker, and the active panel.
func (a *appModelAdapter) Init() tea.Cmd {
	return tea.Batch(
		refreshStatusCmd(a.Client),
		tickCmd(a.Cfg.RefreshInterval),
		a.activePanel().Init(),
	)
}

// Update implements tea.Model.
func (a *appModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return a.handleResize(msg)
	case tea.KeyMsg:
		return a.handleKey(msg)
	case spinner.TickMsg:
		// Only the active panel animates; the chain dies elsewhere.
		v, cmd := a.activePanel().Update(msg)
		a.setPanel(v)
		return a, cmd
	case tickMsg:
		return a, tea.Batch(refreshStatusCmd(a.Client), tickCmd(a.Cfg.RefreshInterval))
	case DismissModalMsg:
		a.Overlays.Pop()
		return a, nil
	case SwitchPanelMsg:
		return a, a.switchTo(msg.Mode)
	case ClearPanelMsg:
		return a.handleClearPanel()

	case SupplierSubmitMsg:
		return a.handleSupplierSubmit(msg)
	case SupplierPredictedMsg:
		return a.handleSupplierPredicted(msg)
	case ShipmentSubmitMsg:
		return a.handleShipmentSubmit(msg)
	case ShipmentPredictedMsg:
		return a.handleShipmentPredicted(msg)
	case InventorySubmitMsg:
		return a.handleInventorySubmit(msg)
	case InventoryOptimizedMsg:
		return a.handleInventoryOptimized(msg)
	case ForecastSubmitMsg:
		return a.handleForecastSubmit(msg)
	case ForecastReadyMsg:
		return a.handleForecastReady(msg)

	case RoutingSubmitMsg:
		return a.handleRoutingSubmit(msg)
	case RoutingOptimizedMsg:
		return a.handleRoutingOptimized(msg)
	case ShowAddCustomerMsg:
		return a.handleShowAddCustomer()
	case CustomerAddedMsg:
		return a.handleCustomerAdded(msg)
	case ShowScenarioPickerMsg:
		return a.handleShowScenarioPicker()
	case ScenarioListMsg:
		return a.handleScenarioList(msg)
	case ScenarioPickedMsg:
		return a.handleScenarioPicked(msg)
	case ScenarioLoadedMsg:
		return a.handleScenarioLoaded(msg)
	case ShowSaveScenarioMsg:
		return a.handleShowSaveScenario()
	case SaveScenarioMsg:
		return a.handleSaveScenario(msg)
	case ScenarioSavedMsg:
		return a.handleScenarioSaved(msg)
	case ShowDeleteScenarioMsg:
		return a.handleShowDeleteScenario(msg)
	case DeleteScenarioMsg:
		return a.handleDeleteScenario(msg)
	case ScenarioDeletedMsg:
		return a.handleScenarioDeleted(msg)

	case BatchLoadMsg:
		return a.handleBatchLoad(msg)
	case BatchLoadedMsg:
		return a.handleBatchLoaded(msg)
	case BatchSubmitMsg:
		return a.handleBatchSubmit(msg)
	case BatchEvaluatedMsg:
		return a.handleBatchEvaluated(msg)

	case StatusRefreshedMsg:
		return a.handleStatusRefreshed(msg)
	case RefreshMsg:
		return a.handleRefresh()
	case RefreshModelsMsg:
		return a.handleRefreshModels()
	case ModelsInfoMsg:
		return a.handleModelsInfo(msg)
	case ShowReloadModelsMsg:
		return a.handleShowReloadModels()
	case ReloadModelsMsg:
		return a.handleReloadModels()
	case ModelsReloadedMsg:
		return a.handleModelsReloaded(msg)
	case ShowHistoryMsg:
		return a.handleShowHistory()
	case HistoryChangedMsg:
		return a.handleHistoryChanged()
	}

	// Everything else goes to the top overlay, or the active panel.
	if cmd, ok := a.Overlays.UpdateTop(msg); ok {
		return a, cmd
	}
	v, cmd := a.activePanel().Update(msg)
	a.setPanel(v)
	return a, cmd
}

func (a *appModelAdapter) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	a.Width, a.Height = msg.Width, msg.Height
	var cmds []tea.Cmd
	for _, mode := range PanelModes() {
		v, cmd := a.panel(mode).Update(msg)
		a.setPanel(v)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	cmds = append(cmds, a.Overlays.Broadcast(msg))
	return a, tea.Batch(cmds...)
}

func (a *appModelAdapter) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return a, tea.Quit
	}
	// Overlays capture all input while present.
	if a.Overlays.Len() > 0 {
		cmd, _ := a.Overlays.UpdateTop(msg)
		return a, cmd
	}
	// Keybinds run first unless a free-text field wants the key.
	if a.KeyHandler.LeaderWaiting || !a.textKeyForPanel(msg) {
		if consumed, cmd := a.KeyHandler.Handle(msg); consumed {
			return a, cmd
		}
	}
	switch msg.String() {
	case "tab":
		return a, a.switchTo(nextPanelMode(a.Mode, 1))
	case "shift+tab":
		return a, a.switchTo(nextPanelMode(a.Mode, -1))
	}
	v, cmd := a.activePanel().Update(msg)
	a.setPanel(v)
	return a, cmd
}

// textKeyForPanel reports whether the key is printable input destined for
// a focused free-text field, which keybinds must not steal.
func (a *appModelAdapter) textKeyForPanel(msg tea.KeyMsg) bool {
	if !a.activePanel().EditingText() {
		return false
	}
	return msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace
}

func (a *appModelAdapter) handleClearPanel() (tea.Model, tea.Cmd) {
	a.activePanel().Reset()
	a.setStatus(a.activePanel().Title()+" panel cleared", false)
	return a, nil
}

// switchTo activates a panel and runs its Init so panels can refresh on
// entry. No-op when already active.
func (a *AppModel) switchTo(mode AppMode) tea.Cmd {
	if !a.Focus.Set(mode) {
		return nil
	}
	return a.activePanel().Init()
}

// View implements tea.Model.
func (a *appModelAdapter) View() string {
	var b strings.Builder
	b.WriteString(a.tabsView() + "\n\n")
	if top, ok := a.Overlays.Peek(); ok {
		b.WriteString(top.View())
	} else {
		b.WriteString(a.activePanel().View())
	}
	if a.KeyHandler.LeaderWaiting {
		b.WriteString("\n" + RenderKeybindHelp(a.KeyHandler, a.Mode))
	}
	b.WriteString("\n" + a.statusBar())
	return b.String()
}

func (a *appModelAdapter) tabsView() string {
	tabs := make([]string, 0, len(PanelModes()))
	for i, mode := range PanelModes() {
		label := fmt.Sprintf(" %d %s ", i+1, mode)
		if mode == a.Mode {
			tabs = append(tabs, Styles.TabActive.Render(label))
		} else {
			tabs = append(tabs, Styles.TabInactive.Render(label))
		}
	}
	return strings.Join(tabs, Styles.Muted.Render("·"))
}

func (a *appModelAdapter) statusBar() string {
	var parts []string
	if a.Online {
		parts = append(parts,
			Styles.Good.Render("● online"),
			Styles.Muted.Render(fmt.Sprintf("%d models", a.Health.Models.ModelCount)))
	} else {
		parts = append(parts, Styles.Bad.Render("● offline"))
	}
	if a.Status != "" {
		style := Styles.Status
		if a.StatusIsError {
			style = Styles.StatusError
		}
		parts = append(parts, style.Render(a.Status))
	}
	parts = append(parts, Styles.Hint.Render("SPC: commands · Tab: panels · Ctrl+C: quit"))
	return strings.Join(parts, Styles.Muted.Render("  ·  "))
}

// setStatus sets the transient status bar message.
func (a *AppModel) setStatus(msg string, isErr bool) {
	a.Status = msg
	a.StatusIsError = isErr
}

func (a *AppModel) activePanel() Panel {
	return a.panel(a.Mode)
}

func (a *AppModel) panel(mode AppMode) Panel {
	switch mode {
	case ModeShipment:
		return a.Shipment
	case ModeInventory:
		return a.Inventory
	case ModeForecast:
		return a.Forecast
	case ModeRouting:
		return a.Routing
	case ModeBatch:
		return a.Batch
	case ModeModels:
		return a.Models
	}
	return a.Supplier
}

func (a *AppModel) setPanel(v View) {
	switch p := v.(type) {
	case *SupplierPanel:
		a.Supplier = p
	case *ShipmentPanel:
		a.Shipment = p
	case *InventoryPanel:
		a.Inventory = p
	case *ForecastPanel:
		a.Forecast = p
	case *RoutingPanel:
		a.Routing = p
	case *BatchPanel:
		a.Batch = p
	case *ModelsPanel:
		a.Models = p
	}
}
