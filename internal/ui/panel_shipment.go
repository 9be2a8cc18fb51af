package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/format"
)

// ShipmentPanel predicts delivery delay risk for a single shipment.
type ShipmentPanel struct {
	form    *Form
	spinner spinner.Model
	loading bool
	result  *api.ShipmentPrediction
	errMsg  string
}

var _ Panel = (*ShipmentPanel)(nil)

// NewShipmentPanel creates the shipment panel with an empty form.
func NewShipmentPanel() *ShipmentPanel {
	return &ShipmentPanel{
		form: NewForm(
			NewField("Delivery time", "5", "planned days"),
			NewField("Quantity", "500", "units"),
			NewField("Delay time", "0", "days late so far"),
		),
		spinner: newPanelSpinner(),
	}
}

// Title implements Panel.
func (p *ShipmentPanel) Title() string { return ModeShipment.String() }

// EditingText implements Panel.
func (p *ShipmentPanel) EditingText() bool { return p.form.EditingText() }

// Init implements View.
func (p *ShipmentPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (p *ShipmentPanel) Update(msg tea.Msg) (View, tea.Cmd) {
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

func (p *ShipmentPanel) submit() tea.Cmd {
	in, ok := p.input()
	if !ok {
		return nil
	}
	p.loading = true
	p.result = nil
	p.errMsg = ""
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return ShipmentSubmitMsg{Input: in}
	})
}

func (p *ShipmentPanel) input() (api.ShipmentInput, bool) {
	p.form.ClearErrs()
	p.errMsg = ""
	ok := true
	delivery, err := parseInt(p.form.Value(0))
	if err != nil {
		p.form.SetErr(0, "enter a whole number of days")
		ok = false
	}
	qty, err := parseInt(p.form.Value(1))
	if err != nil {
		p.form.SetErr(1, "enter a whole number of units")
		ok = false
	}
	delay, err := parseInt(p.form.Value(2))
	if err != nil {
		p.form.SetErr(2, "enter a whole number of days")
		ok = false
	}
	if !ok {
		return api.ShipmentInput{}, false
	}
	in := api.ShipmentInput{DeliveryTime: delivery, Quantity: qty, DelayTime: delay}
	if err := in.Validate(); err != nil {
		p.errMsg = err.Error()
		return api.ShipmentInput{}, false
	}
	return in, true
}

func (p *ShipmentPanel) finish(result api.ShipmentPrediction, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.result = &result
}

// Reset clears the form and the last result.
func (p *ShipmentPanel) Reset() {
	p.form.Reset()
	p.result = nil
	p.errMsg = ""
	p.loading = false
}

// View implements View.
func (p *ShipmentPanel) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Shipment delay risk")
	if p.loading {
		title += " " + p.spinner.View()
	}
	b.WriteString(title + "\n\n")
	b.WriteString(p.form.View())
	b.WriteString(Styles.Hint.Render("Enter: predict · ↑/↓ fields") + "\n")
	if p.errMsg != "" {
		b.WriteString("\n" + Styles.StatusError.Render(p.errMsg) + "\n")
	}
	if p.result != nil {
		b.WriteString(p.resultView())
	}
	return b.String()
}

func (p *ShipmentPanel) resultView() string {
	r := p.result
	verdict := Styles.Good.Render(r.Status)
	if r.Delayed {
		verdict = Styles.Bad.Render(r.Status)
	}
	lines := []string{
		verdict + "  " + RiskStyle(r.RiskLevel).Render(strings.ToUpper(r.RiskLevel)+" RISK"),
		"",
		kv("Confidence", format.Percent(r.Confidence)+"  "+bar(r.Confidence, 20)),
		kv("P(delayed)", format.Percent(r.ProbabilityDelayed)),
		kv("P(on time)", format.Percent(r.ProbabilityOnTime)),
	}
	if r.Model != "" {
		lines = append(lines, kv("Model", r.Model))
	}
	if imp := p.importanceView(); imp != "" {
		lines = append(lines, "", Styles.Section.Render("Feature importance"), imp)
	}
	return Styles.BoxCompact.Render(strings.Join(lines, "\n"))
}

// importanceView renders feature weights as bars, largest first.
func (p *ShipmentPanel) importanceView() string {
	if len(p.result.FeatureImportance) == 0 {
		return ""
	}
	type weight struct {
		name  string
		value float64
	}
	weights := make([]weight, 0, len(p.result.FeatureImportance))
	for name, value := range p.result.FeatureImportance {
		weights = append(weights, weight{name, value})
	}
	sort.Slice(weights, func(i, j int) bool {
		if weights[i].value != weights[j].value {
			return weights[i].value > weights[j].value
		}
		return weights[i].name < weights[j].name
	})
	lines := make([]string, 0, len(weights))
	for _, w := range weights {
		lines = append(lines, kv(w.name, bar(w.value, 16)+"  "+format.Percent(w.value)))
	}
	return strings.Join(lines, "\n")
}
