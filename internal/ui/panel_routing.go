package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/format"
	"chainboard/internal/scenario"
	"chainboard/internal/ui/textutil"
)

// Focus slots inside the routing panel, cycled with up/down. The first
// three map onto form fields, the rest are custom zones.
const (
	routingSlotDepot = iota
	routingSlotLat
	routingSlotLon
	routingSlotAlgorithm
	routingSlotCustomers
	routingSlotCount
)

// RoutingPanel builds a vehicle routing problem interactively and submits
// it for optimization. Scenarios snapshot and restore the whole problem.
type RoutingPanel struct {
	form         *Form
	slot         int
	algorithm    string
	customers    []api.Location
	cursor       int
	scenarioName string
	spinner      spinner.Model
	loading      bool
	result       *api.RoutingPlan
	errMsg       string
}

var _ Panel = (*RoutingPanel)(nil)

// NewRoutingPanel creates the routing panel. defaultAlgorithm picks the
// initial solver, falling back to Clarke-Wright.
func NewRoutingPanel(defaultAlgorithm string) *RoutingPanel {
	if defaultAlgorithm == "" {
		defaultAlgorithm = api.AlgorithmClarkeWright
	}
	return &RoutingPanel{
		form: NewForm(
			NewTextField("Depot", "Main depot", ""),
			NewField("Latitude", "40.7128", "-90..90"),
			NewField("Longitude", "-74.0060", "-180..180"),
		),
		algorithm: defaultAlgorithm,
		spinner:   newPanelSpinner(),
	}
}

// Title implements Panel.
func (p *RoutingPanel) Title() string { return ModeRouting.String() }

// EditingText implements Panel.
func (p *RoutingPanel) EditingText() bool { return p.form.EditingText() }

// Init implements View.
func (p *RoutingPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (p *RoutingPanel) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if p.loading {
			var cmd tea.Cmd
			p.spinner, cmd = p.spinner.Update(msg)
			return p, cmd
		}
		return p, nil
	case tea.KeyMsg:
		return p.handleKey(msg)
	}
	return p, p.form.Update(msg)
}

func (p *RoutingPanel) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "up":
		p.setSlot(p.slot - 1)
		return p, nil
	case "down":
		p.setSlot(p.slot + 1)
		return p, nil
	case "enter":
		return p, p.submit()
	}
	switch p.slot {
	case routingSlotAlgorithm:
		switch msg.String() {
		case "h", "left", "l", "right":
			p.toggleAlgorithm()
			return p, nil
		}
	case routingSlotCustomers:
		switch msg.String() {
		case "j":
			if p.cursor < len(p.customers)-1 {
				p.cursor++
			}
			return p, nil
		case "k":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil
		case "a":
			return p, func() tea.Msg { return ShowAddCustomerMsg{} }
		case "d", "x":
			p.removeCustomer(p.cursor)
			return p, nil
		}
	}
	return p, p.form.Update(msg)
}

// setSlot moves focus between zones, wrapping at both ends. Form focus
// tracks the slot so only the active field blinks.
func (p *RoutingPanel) setSlot(slot int) {
	p.slot = (slot + routingSlotCount) % routingSlotCount
	if p.slot <= routingSlotLon {
		p.form.SetFocus(p.slot)
	} else {
		p.form.Blur()
	}
}

func (p *RoutingPanel) toggleAlgorithm() {
	if p.algorithm == api.AlgorithmClarkeWright {
		p.algorithm = api.AlgorithmNearestNeighbor
	} else {
		p.algorithm = api.AlgorithmClarkeWright
	}
}

// AddCustomer appends a customer and moves the cursor to it.
func (p *RoutingPanel) AddCustomer(c api.Location) {
	p.customers = append(p.customers, c)
	p.cursor = len(p.customers) - 1
}

func (p *RoutingPanel) removeCustomer(i int) {
	if i < 0 || i >= len(p.customers) {
		return
	}
	p.customers = append(p.customers[:i], p.customers[i+1:]...)
	if p.cursor >= len(p.customers) {
		p.cursor = len(p.customers) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

// SetScenario replaces the panel's problem with a saved scenario.
func (p *RoutingPanel) SetScenario(sc scenario.Scenario) {
	p.form.SetValue(routingSlotDepot, sc.Depot.Name)
	p.form.SetValue(routingSlotLat, strconv.FormatFloat(sc.Depot.Lat, 'f', -1, 64))
	p.form.SetValue(routingSlotLon, strconv.FormatFloat(sc.Depot.Lon, 'f', -1, 64))
	if sc.Algorithm != "" {
		p.algorithm = sc.Algorithm
	}
	p.customers = append([]api.Location(nil), sc.Customers...)
	p.cursor = 0
	p.scenarioName = sc.Name
	p.result = nil
	p.errMsg = ""
}

// Scenario snapshots the current problem under the given name.
func (p *RoutingPanel) Scenario(name string) (scenario.Scenario, bool) {
	req, ok := p.request()
	if !ok {
		return scenario.Scenario{}, false
	}
	return scenario.Scenario{
		Name:      name,
		Algorithm: req.Algorithm,
		Depot:     req.Depot,
		Customers: req.Customers,
	}, true
}

func (p *RoutingPanel) submit() tea.Cmd {
	req, ok := p.request()
	if !ok {
		return nil
	}
	p.loading = true
	p.result = nil
	p.errMsg = ""
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return RoutingSubmitMsg{Request: req}
	})
}

func (p *RoutingPanel) request() (api.RoutingRequest, bool) {
	p.form.ClearErrs()
	p.errMsg = ""
	ok := true
	name := p.form.Value(routingSlotDepot)
	if name == "" {
		name = "Depot"
	}
	lat, err := parseFloat(p.form.Value(routingSlotLat))
	if err != nil {
		p.form.SetErr(routingSlotLat, "enter a latitude like 40.7128")
		ok = false
	}
	lon, err := parseFloat(p.form.Value(routingSlotLon))
	if err != nil {
		p.form.SetErr(routingSlotLon, "enter a longitude like -74.0060")
		ok = false
	}
	if !ok {
		return api.RoutingRequest{}, false
	}
	req := api.RoutingRequest{
		Depot:     api.Location{Name: name, Lat: lat, Lon: lon},
		Customers: append([]api.Location(nil), p.customers...),
		Algorithm: p.algorithm,
	}
	if err := req.Validate(); err != nil {
		p.errMsg = err.Error()
		return api.RoutingRequest{}, false
	}
	return req, true
}

func (p *RoutingPanel) finish(plan api.RoutingPlan, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.result = &plan
}

// Reset clears the problem, the scenario association, and the last result.
func (p *RoutingPanel) Reset() {
	p.form.Reset()
	p.customers = nil
	p.cursor = 0
	p.scenarioName = ""
	p.result = nil
	p.errMsg = ""
	p.loading = false
	p.setSlot(routingSlotDepot)
}

// View implements View.
func (p *RoutingPanel) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Route optimization")
	if p.scenarioName != "" {
		title += "  " + Styles.Muted.Render("["+p.scenarioName+"]")
	}
	if p.loading {
		title += " " + p.spinner.View()
	}
	b.WriteString(title + "\n\n")
	b.WriteString(p.form.View())
	b.WriteString(p.algorithmView() + "\n")
	b.WriteString(p.customersView())
	b.WriteString(Styles.Hint.Render("Enter: optimize · ↑/↓ sections · a: add customer · d: delete · SPC o: scenarios") + "\n")
	if p.errMsg != "" {
		b.WriteString("\n" + Styles.StatusError.Render(p.errMsg) + "\n")
	}
	if p.result != nil {
		b.WriteString(p.resultView())
	}
	return b.String()
}

func (p *RoutingPanel) algorithmView() string {
	label := textutil.PadRight("Algorithm", 12)
	if p.slot == routingSlotAlgorithm {
		label = Styles.Selected.Render(label)
	} else {
		label = Styles.Muted.Render(label)
	}
	return label + "  " + Styles.Normal.Render("◂ "+p.algorithm+" ▸")
}

func (p *RoutingPanel) customersView() string {
	label := textutil.PadRight(fmt.Sprintf("Customers (%d)", len(p.customers)), 12)
	if p.slot == routingSlotCustomers {
		label = Styles.Selected.Render(label)
	} else {
		label = Styles.Muted.Render(label)
	}
	var b strings.Builder
	b.WriteString(label + "\n")
	if len(p.customers) == 0 {
		b.WriteString("  " + Styles.Empty.Render("none yet, press a to add") + "\n")
		return b.String()
	}
	for i, c := range p.customers {
		marker := "  "
		line := fmt.Sprintf("%s  %s  demand %s",
			textutil.PadRight(c.Name, 18),
			textutil.PadLeft(format.Coord(c.Lat, c.Lon), 16),
			format.Quantity(c.Demand))
		if p.slot == routingSlotCustomers && i == p.cursor {
			marker = Styles.Status.Render("▸ ")
			line = Styles.Selected.Render(line)
		} else {
			line = Styles.Normal.Render(line)
		}
		b.WriteString("  " + marker + line + "\n")
	}
	return b.String()
}

func (p *RoutingPanel) resultView() string {
	r := p.result
	s := r.Statistics
	head := fmt.Sprintf("%s · %d vehicles · %s · demand %s",
		r.Algorithm, s.NumVehicles,
		format.Distance(s.TotalDistance), format.Quantity(s.TotalDemand))
	lines := []string{Styles.Details.Render(head), ""}
	for _, route := range r.Routes {
		lines = append(lines, Styles.Section.Render(
			fmt.Sprintf("Vehicle %d", route.VehicleID))+
			Styles.Muted.Render(fmt.Sprintf("  %s · demand %s",
				format.Distance(route.TotalDistance), format.Quantity(route.TotalDemand))))
		stops := make([]string, 0, len(route.Stops))
		for _, stop := range route.Stops {
			stops = append(stops, stop.Name)
		}
		lines = append(lines, "  "+Styles.Normal.Render(strings.Join(stops, " → ")))
	}
	lines = append(lines, "", kv("Utilization", format.Percent(s.VehicleUtilization)+"  "+bar(s.VehicleUtilization, 16)))
	lines = append(lines, kv("Avg distance", format.Distance(s.AvgDistancePerRoute)))
	return Styles.BoxCompact.Render(strings.Join(lines, "\n"))
}
