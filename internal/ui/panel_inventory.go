package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/format"
)

// InventoryPanel computes an EOQ inventory policy from demand and cost inputs.
type InventoryPanel struct {
	form    *Form
	spinner spinner.Model
	loading bool
	result  *api.InventoryPlan
	errMsg  string
}

var _ Panel = (*InventoryPanel)(nil)

// NewInventoryPanel creates the inventory panel with an empty form.
func NewInventoryPanel() *InventoryPanel {
	return &InventoryPanel{
		form: NewForm(
			NewField("Annual demand", "12000", "units per year"),
			NewField("Unit cost", "25.00", "dollars, > 0"),
			NewField("Demand std", "400", "units, >= 0"),
			NewField("Lead time", "14", "days, 1-365"),
		),
		spinner: newPanelSpinner(),
	}
}

// Title implements Panel.
func (p *InventoryPanel) Title() string { return ModeInventory.String() }

// EditingText implements Panel.
func (p *InventoryPanel) EditingText() bool { return p.form.EditingText() }

// Init implements View.
func (p *InventoryPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (p *InventoryPanel) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if p.loading {
			var cmd tea.Cmd
			p.spinner, cmd = p.spinner.Update(msg)
			return p, cmd
		}
		return p, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "up":
			p.form.Prev()
			return p, nil
		case "down":
			p.form.Next()
			return p, nil
		case "enter":
			return p, p.submit()
		}
	}
	return p, p.form.Update(msg)
}

func (p *InventoryPanel) submit() tea.Cmd {
	in, ok := p.input()
	if !ok {
		return nil
	}
	p.loading = true
	p.result = nil
	p.errMsg = ""
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return InventorySubmitMsg{Input: in}
	})
}

func (p *InventoryPanel) input() (api.InventoryInput, bool) {
	p.form.ClearErrs()
	p.errMsg = ""
	ok := true
	demand, err := parseFloat(p.form.Value(0))
	if err != nil {
		p.form.SetErr(0, "enter a number of units")
		ok = false
	}
	cost, err := parseFloat(p.form.Value(1))
	if err != nil {
		p.form.SetErr(1, "enter a number")
		ok = false
	}
	std, err := parseFloat(p.form.Value(2))
	if err != nil {
		p.form.SetErr(2, "enter a number")
		ok = false
	}
	lead, err := parseInt(p.form.Value(3))
	if err != nil {
		p.form.SetErr(3, "enter a whole number of days")
		ok = false
	}
	if !ok {
		return api.InventoryInput{}, false
	}
	in := api.InventoryInput{AnnualDemand: demand, UnitCost: cost, DemandStd: std, LeadTimeDays: lead}
	if err := in.Validate(); err != nil {
		p.errMsg = err.Error()
		return api.InventoryInput{}, false
	}
	return in, true
}

func (p *InventoryPanel) finish(plan api.InventoryPlan, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.result = &plan
}

// Reset clears the form and the last result.
func (p *InventoryPanel) Reset() {
	p.form.Reset()
	p.result = nil
	p.errMsg = ""
	p.loading = false
}

// View implements View.
func (p *InventoryPanel) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Inventory policy")
	if p.loading {
		title += " " + p.spinner.View()
	}
	b.WriteString(title + "\n\n")
	b.WriteString(p.form.View())
	b.WriteString(Styles.Hint.Render("Enter: optimize · ↑/↓ fields") + "\n")
	if p.errMsg != "" {
		b.WriteString("\n" + Styles.StatusError.Render(p.errMsg) + "\n")
	}
	if p.result != nil {
		b.WriteString(p.resultView())
	}
	return b.String()
}

func (p *InventoryPanel) resultView() string {
	r := p.result
	lines := []string{
		kv("Order quantity", format.Quantity(r.EconomicOrderQuantity)+" units"),
		kv("Reorder point", format.Quantity(r.ReorderPoint)+" units"),
		kv("Safety stock", format.Quantity(r.SafetyStock)+" units"),
		kv("Avg inventory", format.Quantity(r.AverageInventory)+" units"),
		kv("Orders / year", format.Quantity(r.NumberOfOrders)),
		kv("Service level", format.Percent(r.ServiceLevel)),
		kvStyled("Annual cost", format.Money(r.TotalAnnualCost), Styles.Good.Render),
	}
	return Styles.BoxCompact.Render(strings.Join(lines, "\n"))
}
