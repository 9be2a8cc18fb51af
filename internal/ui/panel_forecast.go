package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chainboard/internal/api"
	"chainboard/internal/format"
)

// ForecastPanel requests a demand forecast and shows it as a table of
// per-step values with confidence bounds.
type ForecastPanel struct {
	form    *Form
	table   table.Model
	spinner spinner.Model
	loading bool
	result  *api.Forecast
	errMsg  string
}

var _ Panel = (*ForecastPanel)(nil)

// NewForecastPanel creates the forecast panel with an empty form.
func NewForecastPanel() *ForecastPanel {
	return &ForecastPanel{
		form: NewForm(
			NewField("Steps", "30", "days ahead, 1-90"),
			NewField("Confidence", "0.95", "0.5-0.99"),
		),
		table:   newForecastTable(),
		spinner: newPanelSpinner(),
	}
}

func newForecastTable() table.Model {
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "Step", Width: 5},
			{Title: "Forecast", Width: 10},
			{Title: "Lower", Width: 10},
			{Title: "Upper", Width: 10},
		}),
		table.WithHeight(10),
	)
	t.SetStyles(resultTableStyles())
	return t
}

// resultTableStyles is the shared look for result tables.
func resultTableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(lipgloss.Color(ColorMuted)).
		Bold(true).
		Foreground(lipgloss.Color(ColorAccent))
	s.Selected = s.Selected.
		Foreground(lipgloss.Color(ColorText)).
		Background(lipgloss.Color("236")).
		Bold(false)
	return s
}

// Title implements Panel.
func (p *ForecastPanel) Title() string { return ModeForecast.String() }

// EditingText implements Panel.
func (p *ForecastPanel) EditingText() bool { return p.form.EditingText() }

// Init implements View.
func (p *ForecastPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (p *ForecastPanel) Update(msg tea.Msg) (View, tea.Cmd) {
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
		case "j":
			p.table.MoveDown(1)
			return p, nil
		case "k":
			p.table.MoveUp(1)
			return p, nil
		case "g":
			p.table.GotoTop()
			return p, nil
		case "G":
			p.table.GotoBottom()
			return p, nil
		}
	}
	return p, p.form.Update(msg)
}

func (p *ForecastPanel) submit() tea.Cmd {
	req, ok := p.request()
	if !ok {
		return nil
	}
	p.loading = true
	p.result = nil
	p.errMsg = ""
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return ForecastSubmitMsg{Request: req}
	})
}

func (p *ForecastPanel) request() (api.ForecastRequest, bool) {
	p.form.ClearErrs()
	p.errMsg = ""
	ok := true
	steps, err := parseInt(p.form.Value(0))
	if err != nil {
		p.form.SetErr(0, "enter a whole number of days")
		ok = false
	}
	conf, err := parseFloat(p.form.Value(1))
	if err != nil {
		p.form.SetErr(1, "enter a fraction like 0.95")
		ok = false
	}
	if !ok {
		return api.ForecastRequest{}, false
	}
	req := api.ForecastRequest{Steps: steps, ConfidenceLevel: conf}
	if err := req.Validate(); err != nil {
		p.errMsg = err.Error()
		return api.ForecastRequest{}, false
	}
	return req, true
}

func (p *ForecastPanel) finish(fc api.Forecast, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.result = &fc
	rows := make([]table.Row, 0, len(fc.Values))
	for i, v := range fc.Values {
		row := table.Row{
			fmt.Sprintf("%d", i+1),
			format.Quantity(v),
			"—",
			"—",
		}
		if i < len(fc.LowerBound) {
			row[2] = format.Quantity(fc.LowerBound[i])
		}
		if i < len(fc.UpperBound) {
			row[3] = format.Quantity(fc.UpperBound[i])
		}
		rows = append(rows, row)
	}
	p.table.SetRows(rows)
	p.table.SetHeight(min(len(rows)+1, 12))
	p.table.GotoTop()
}

// Reset clears the form and the last result.
func (p *ForecastPanel) Reset() {
	p.form.Reset()
	p.result = nil
	p.errMsg = ""
	p.loading = false
	p.table.SetRows(nil)
}

// View implements View.
func (p *ForecastPanel) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Demand forecast")
	if p.loading {
		title += " " + p.spinner.View()
	}
	b.WriteString(title + "\n\n")
	b.WriteString(p.form.View())
	b.WriteString(Styles.Hint.Render("Enter: forecast · ↑/↓ fields · j/k scroll") + "\n")
	if p.errMsg != "" {
		b.WriteString("\n" + Styles.StatusError.Render(p.errMsg) + "\n")
	}
	if p.result != nil {
		b.WriteString(p.resultView())
	}
	return b.String()
}

func (p *ForecastPanel) resultView() string {
	r := p.result
	head := fmt.Sprintf("%d steps at %s confidence", r.Steps, format.Percent(r.ConfidenceLevel))
	if r.Model != "" {
		head += "  ·  " + r.Model
	}
	s := r.Statistics
	stats := fmt.Sprintf("mean %s · std %s · min %s · max %s",
		format.Quantity(s.Mean), format.Quantity(s.Std),
		format.Quantity(s.Min), format.Quantity(s.Max))
	body := Styles.Details.Render(head) + "\n" +
		p.table.View() + "\n" +
		Styles.Muted.Render(stats)
	return Styles.BoxCompact.Render(body)
}
