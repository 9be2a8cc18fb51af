package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/format"
)

// SupplierPanel predicts supplier reliability from lead time, cost, and
// order history.
type SupplierPanel struct {
	form    *Form
	spinner spinner.Model
	loading bool
	result  *api.SupplierPrediction
	errMsg  string
}

// Ensure SupplierPanel implements Panel.
var _ Panel = (*SupplierPanel)(nil)

// NewSupplierPanel creates the supplier panel with an empty form.
func NewSupplierPanel() *SupplierPanel {
	return &SupplierPanel{
		form: NewForm(
			NewField("Lead time", "14", "days, 1-365"),
			NewField("Unit cost", "250.00", "dollars, > 0"),
			NewField("Past orders", "30", "count"),
		),
		spinner: newPanelSpinner(),
	}
}

// newPanelSpinner is the shared spinner shown while a request is in flight.
func newPanelSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = Styles.Status
	return s
}

// Title implements Panel.
func (p *SupplierPanel) Title() string { return ModeSupplier.String() }

// EditingText implements Panel.
func (p *SupplierPanel) EditingText() bool { return p.form.EditingText() }

// Init implements View.
func (p *SupplierPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (p *SupplierPanel) Update(msg tea.Msg) (View, tea.Cmd) {
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

// submit validates the form and emits the request, or leaves errors inline.
func (p *SupplierPanel) submit() tea.Cmd {
	in, ok := p.input()
	if !ok {
		return nil
	}
	p.loading = true
	p.result = nil
	p.errMsg = ""
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return SupplierSubmitMsg{Input: in}
	})
}

func (p *SupplierPanel) input() (api.SupplierInput, bool) {
	p.form.ClearErrs()
	p.errMsg = ""
	ok := true
	lead, err := parseInt(p.form.Value(0))
	if err != nil {
		p.form.SetErr(0, "enter a whole number of days")
		ok = false
	}
	cost, err := parseFloat(p.form.Value(1))
	if err != nil {
		p.form.SetErr(1, "enter a number")
		ok = false
	}
	orders, err := parseInt(p.form.Value(2))
	if err != nil {
		p.form.SetErr(2, "enter a whole number")
		ok = false
	}
	if !ok {
		return api.SupplierInput{}, false
	}
	in := api.SupplierInput{LeadTime: lead, Cost: cost, PastOrders: orders}
	if err := in.Validate(); err != nil {
		p.errMsg = err.Error()
		return api.SupplierInput{}, false
	}
	return in, true
}

// finish records the backend's answer or error.
func (p *SupplierPanel) finish(result api.SupplierPrediction, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.result = &result
}

// Reset clears the form and the last result.
func (p *SupplierPanel) Reset() {
	p.form.Reset()
	p.result = nil
	p.errMsg = ""
	p.loading = false
}

// View implements View.
func (p *SupplierPanel) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Supplier reliability")
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

func (p *SupplierPanel) resultView() string {
	r := p.result
	verdict := Styles.Good.Render(r.Label)
	if !r.Reliable {
		verdict = Styles.Bad.Render(r.Label)
	}
	lines := []string{
		verdict,
		"",
		kv("Confidence", format.Percent(r.Confidence)+"  "+bar(r.Confidence, 20)),
		kv("P(reliable)", format.Percent(r.ProbabilityReliable)),
		kv("P(unreliable)", format.Percent(r.ProbabilityUnreliable)),
	}
	if r.Model != "" {
		lines = append(lines, kv("Model", r.Model))
	}
	return Styles.BoxCompact.Render(strings.Join(lines, "\n"))
}
