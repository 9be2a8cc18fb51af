package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/batch"
	"chainboard/internal/format"
)

// Zones inside the batch panel. The path field loads a roster, the table
// zone previews it and submits the evaluation.
const (
	batchZonePath = iota
	batchZoneTable
	batchZoneCount
)

// BatchPanel evaluates a whole supplier roster from a CSV file.
type BatchPanel struct {
	form      *Form
	zone      int
	path      string
	suppliers []batch.Supplier
	table     table.Model
	spinner   spinner.Model
	loading   bool
	result    *api.BatchResult
	errMsg    string
}

var _ Panel = (*BatchPanel)(nil)

// NewBatchPanel creates the batch panel with an empty path field.
func NewBatchPanel() *BatchPanel {
	t := table.New(table.WithHeight(10))
	t.SetStyles(resultTableStyles())
	return &BatchPanel{
		form: NewForm(
			NewTextField("CSV file", "suppliers.csv", "columns: name, lead_time, cost, past_orders"),
		),
		table:   t,
		spinner: newPanelSpinner(),
	}
}

// Title implements Panel.
func (p *BatchPanel) Title() string { return ModeBatch.String() }

// EditingText implements Panel.
func (p *BatchPanel) EditingText() bool { return p.form.EditingText() }

// Init implements View.
func (p *BatchPanel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements View.
func (p *BatchPanel) Update(msg tea.Msg) (View, tea.Cmd) {
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

func (p *BatchPanel) handleKey(msg tea.KeyMsg) (View, tea.Cmd) {
	switch msg.String() {
	case "up", "down":
		p.toggleZone()
		return p, nil
	case "enter":
		if p.zone == batchZonePath {
			return p, p.load()
		}
		return p, p.submit()
	}
	if p.zone == batchZoneTable {
		switch msg.String() {
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

// toggleZone flips between the path field and the table. The table zone
// is only reachable once a roster is loaded.
func (p *BatchPanel) toggleZone() {
	if len(p.suppliers) == 0 {
		p.zone = batchZonePath
		p.form.SetFocus(0)
		return
	}
	p.zone = (p.zone + 1) % batchZoneCount
	if p.zone == batchZonePath {
		p.form.SetFocus(0)
	} else {
		p.form.Blur()
	}
}

func (p *BatchPanel) load() tea.Cmd {
	path := p.form.Value(0)
	if path == "" {
		p.form.SetErr(0, "enter a CSV file path")
		return nil
	}
	p.form.ClearErrs()
	p.loading = true
	p.errMsg = ""
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return BatchLoadMsg{Path: path}
	})
}

func (p *BatchPanel) submit() tea.Cmd {
	if len(p.suppliers) == 0 {
		p.errMsg = "load a roster first"
		return nil
	}
	p.loading = true
	p.result = nil
	p.errMsg = ""
	inputs := batch.Inputs(p.suppliers)
	return tea.Batch(p.spinner.Tick, func() tea.Msg {
		return BatchSubmitMsg{Inputs: inputs}
	})
}

// finishLoad installs the roster preview, or reports the load error.
func (p *BatchPanel) finishLoad(path string, suppliers []batch.Supplier, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.path = path
	p.suppliers = suppliers
	p.result = nil
	p.errMsg = ""
	p.table.SetColumns([]table.Column{
		{Title: "Name", Width: 18},
		{Title: "Lead", Width: 6},
		{Title: "Cost", Width: 10},
		{Title: "Orders", Width: 6},
	})
	rows := make([]table.Row, 0, len(suppliers))
	for _, s := range suppliers {
		rows = append(rows, table.Row{
			s.Name,
			fmt.Sprintf("%d", s.Input.LeadTime),
			format.Money(s.Input.Cost),
			fmt.Sprintf("%d", s.Input.PastOrders),
		})
	}
	p.table.SetRows(rows)
	p.table.SetHeight(min(len(rows)+1, 12))
	p.table.GotoTop()
	p.zone = batchZoneTable
	p.form.Blur()
}

// finishEval installs the evaluation results over the preview.
func (p *BatchPanel) finishEval(result api.BatchResult, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.result = &result
	p.table.SetColumns([]table.Column{
		{Title: "Name", Width: 18},
		{Title: "Verdict", Width: 12},
		{Title: "Conf", Width: 7},
		{Title: "Detail", Width: 26},
	})
	rows := make([]table.Row, 0, len(result.Items))
	for _, item := range result.Items {
		row := table.Row{batch.Name(p.suppliers, item.Index), "", "", ""}
		switch {
		case item.Error != "":
			row[1] = "error"
			row[3] = item.Error
		case item.Prediction != nil:
			row[1] = item.Prediction.Label
			row[2] = format.Percent(item.Prediction.Confidence)
			row[3] = "P(reliable) " + format.Percent(item.Prediction.ProbabilityReliable)
		}
		rows = append(rows, row)
	}
	p.table.SetRows(rows)
	p.table.SetHeight(min(len(rows)+1, 12))
	p.table.GotoTop()
	p.zone = batchZoneTable
	p.form.Blur()
}

// Reset clears the roster, results, and path.
func (p *BatchPanel) Reset() {
	p.form.Reset()
	p.zone = batchZonePath
	p.path = ""
	p.suppliers = nil
	p.result = nil
	p.errMsg = ""
	p.loading = false
	p.table.SetRows(nil)
}

// View implements View.
func (p *BatchPanel) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Batch supplier evaluation")
	if p.loading {
		title += " " + p.spinner.View()
	}
	b.WriteString(title + "\n\n")
	b.WriteString(p.form.View())
	hint := "Enter: load roster · ↑/↓ zones"
	if len(p.suppliers) > 0 && p.zone == batchZoneTable {
		hint = "Enter: evaluate · ↑/↓ zones · j/k scroll"
	}
	b.WriteString(Styles.Hint.Render(hint) + "\n")
	if p.errMsg != "" {
		b.WriteString("\n" + Styles.StatusError.Render(p.errMsg) + "\n")
	}
	if len(p.suppliers) > 0 {
		b.WriteString(p.tableView())
	}
	return b.String()
}

func (p *BatchPanel) tableView() string {
	head := fmt.Sprintf("%s · %d suppliers", p.path, len(p.suppliers))
	if p.result != nil {
		head = p.summary()
	}
	return Styles.BoxCompact.Render(
		Styles.Details.Render(head) + "\n" + p.table.View())
}

func (p *BatchPanel) summary() string {
	r := p.result
	reliable := 0
	for _, item := range r.Items {
		if item.Prediction != nil && item.Prediction.Reliable {
			reliable++
		}
	}
	return fmt.Sprintf("%d evaluated · %d reliable · %d unreliable · %d failed",
		r.Total, reliable, r.Successful-reliable, r.Failed)
}
