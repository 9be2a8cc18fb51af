package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"chainboard/internal/api"
	"chainboard/internal/format"
	"chainboard/internal/ui/textutil"
)

// ModelsPanel shows the backend's model registry and drives reloads.
type ModelsPanel struct {
	spinner    spinner.Model
	loading    bool
	online     bool
	health     api.Health
	info       *api.ModelsInfo
	lastReload string
	reloadOK   bool
	errMsg     string
}

var _ Panel = (*ModelsPanel)(nil)

// NewModelsPanel creates the models panel. It has no form; everything
// comes from the backend.
func NewModelsPanel() *ModelsPanel {
	return &ModelsPanel{spinner: newPanelSpinner()}
}

// Title implements Panel.
func (p *ModelsPanel) Title() string { return ModeModels.String() }

// EditingText implements Panel.
func (p *ModelsPanel) EditingText() bool { return false }

// Init implements View. Entering the panel refreshes the registry.
func (p *ModelsPanel) Init() tea.Cmd {
	return func() tea.Msg { return RefreshModelsMsg{} }
}

// Update implements View.
func (p *ModelsPanel) Update(msg tea.Msg) (View, tea.Cmd) {
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
		case "r":
			return p, func() tea.Msg { return ShowReloadModelsMsg{} }
		case "g":
			return p, func() tea.Msg { return RefreshModelsMsg{} }
		}
	}
	return p, nil
}

// begin marks a refresh or reload in flight and starts the spinner.
func (p *ModelsPanel) begin() tea.Cmd {
	p.loading = true
	p.errMsg = ""
	return p.spinner.Tick
}

// setHealth records the latest backend health poll.
func (p *ModelsPanel) setHealth(h api.Health, online bool) {
	p.online = online
	if online {
		p.health = h
	}
}

func (p *ModelsPanel) finishInfo(info api.ModelsInfo, err error) {
	p.loading = false
	if err != nil {
		p.errMsg = err.Error()
		return
	}
	p.info = &info
}

func (p *ModelsPanel) finishReload(result api.ReloadResult, err error) {
	p.loading = false
	if err != nil {
		p.lastReload = err.Error()
		p.reloadOK = false
		return
	}
	p.lastReload = result.Message
	if p.lastReload == "" {
		p.lastReload = result.Status
	}
	p.reloadOK = true
}

// Reset drops the cached registry so the next entry refetches it.
func (p *ModelsPanel) Reset() {
	p.info = nil
	p.lastReload = ""
	p.errMsg = ""
	p.loading = false
}

// View implements View.
func (p *ModelsPanel) View() string {
	var b strings.Builder
	title := Styles.Title.Render("Model registry")
	if p.loading {
		title += " " + p.spinner.View()
	}
	b.WriteString(title + "\n\n")
	b.WriteString(p.statusLine() + "\n\n")
	if p.errMsg != "" {
		b.WriteString(Styles.StatusError.Render(p.errMsg) + "\n\n")
	}
	b.WriteString(p.registryView())
	b.WriteString(p.configView())
	if p.lastReload != "" {
		style := Styles.Good
		if !p.reloadOK {
			style = Styles.Bad
		}
		b.WriteString("\n" + kvStyled("Last reload", p.lastReload, style.Render) + "\n")
	}
	b.WriteString("\n" + Styles.Hint.Render("r: reload models · g: refresh") + "\n")
	return b.String()
}

func (p *ModelsPanel) statusLine() string {
	if !p.online {
		return Styles.Bad.Render("● offline") + Styles.Muted.Render("  backend unreachable")
	}
	line := Styles.Good.Render("● " + p.health.Status)
	return line
}

func (p *ModelsPanel) registryView() string {
	info := p.info
	if info == nil {
		if p.online {
			return Styles.Empty.Render("Fetching model registry...") + "\n"
		}
		return Styles.Empty.Render("No registry. Start the backend and press g.") + "\n"
	}
	var b strings.Builder
	b.WriteString(Styles.Section.Render(fmt.Sprintf("Loaded models (%d)", info.ModelCount)) + "\n")
	if len(info.LoadedModels) == 0 {
		b.WriteString("  " + Styles.Empty.Render("none loaded") + "\n")
		return b.String()
	}
	names := append([]string(nil), info.LoadedModels...)
	sort.Strings(names)
	for _, name := range names {
		line := "  " + Styles.Normal.Render(textutil.PadRight(name, 24))
		if meta, ok := info.Metadata[name]; ok {
			line += Styles.Muted.Render(textutil.PadRight(meta.Type, 20))
			if len(meta.Features) > 0 {
				line += Styles.Hint.Render(strings.Join(meta.Features, ", "))
			}
			if meta.LoadedAt != "" {
				line += Styles.Muted.Render("  loaded " + meta.LoadedAt)
			}
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

func (p *ModelsPanel) configView() string {
	if !p.online {
		return ""
	}
	cfg := p.health.Config
	if cfg.ParallelWorkers == 0 && cfg.VehicleCapacity == 0 {
		return ""
	}
	return "\n" + kv("Batch workers", fmt.Sprintf("%d", cfg.ParallelWorkers)) + "\n" +
		kv("Vehicle capacity", format.Quantity(cfg.VehicleCapacity)) + "\n"
}
