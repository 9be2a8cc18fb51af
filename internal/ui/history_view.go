package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chainboard/internal/format"
	"chainboard/internal/trace"
	"chainboard/internal/ui/textutil"
)

// HistoryView shows the recorded backend requests, newest first.
// Opened as an overlay via SPC t; refreshes itself on HistoryChangedMsg.
type HistoryView struct {
	recorder *trace.Recorder
	viewport viewport.Model
}

// Ensure HistoryView implements View.
var _ View = (*HistoryView)(nil)

const defaultHistoryWidth = 72
const defaultHistoryHeight = 16

// NewHistoryView creates a history overlay over the recorder.
func NewHistoryView(recorder *trace.Recorder) *HistoryView {
	vp := viewport.New(defaultHistoryWidth, defaultHistoryHeight)
	vp.Style = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(ColorHighlight)).
		Padding(0, 1)
	h := &HistoryView{recorder: recorder, viewport: vp}
	h.Refresh()
	return h
}

// Refresh rebuilds the viewport content from the recorder.
func (h *HistoryView) Refresh() {
	if h.recorder == nil {
		h.viewport.SetContent(Styles.Empty.Render("No recorder attached"))
		return
	}
	entries := h.recorder.Recent()
	if len(entries) == 0 {
		h.viewport.SetContent(Styles.Empty.Render("No requests yet"))
		return
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, historyLine(e))
	}
	h.viewport.SetContent(strings.Join(lines, "\n"))
}

// historyLine renders one entry: seq, method+path, outcome, latency, time.
func historyLine(e trace.Entry) string {
	seq := Styles.Muted.Render(textutil.PadLeft(fmt.Sprintf("#%d", e.Seq), 4))
	req := Styles.Normal.Render(textutil.PadRight(e.Method+" "+e.Path, 36))
	outcome := Styles.Status.Render(textutil.PadLeft(fmt.Sprintf("%d", e.Status), 4))
	if e.Failed() {
		label := "ERR"
		if e.Status > 0 {
			label = fmt.Sprintf("%d", e.Status)
		}
		outcome = Styles.StatusError.Render(textutil.PadLeft(label, 4))
	}
	latency := Styles.Muted.Render(textutil.PadLeft(format.Latency(e.Duration), 7))
	at := Styles.Muted.Render(e.Start.Format("15:04:05"))
	return seq + "  " + req + outcome + latency + "  " + at
}

// Init implements View.
func (h *HistoryView) Init() tea.Cmd {
	return nil
}

// Update implements View.
func (h *HistoryView) Update(msg tea.Msg) (View, tea.Cmd) {
	switch msg := msg.(type) {
	case HistoryChangedMsg:
		h.Refresh()
		return h, nil
	case tea.WindowSizeMsg:
		w := msg.Width - 6
		if w < 48 {
			w = 48
		}
		v := msg.Height - 8
		if v < 8 {
			v = 8
		}
		h.viewport.Width = w
		h.viewport.Height = v
		return h, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "esc", "q":
			return h, func() tea.Msg { return DismissModalMsg{} }
		case "j", "down":
			h.viewport.LineDown(1)
		case "k", "up":
			h.viewport.LineUp(1)
		case "ctrl+d":
			h.viewport.HalfViewDown()
		case "ctrl+u":
			h.viewport.HalfViewUp()
		case "g":
			h.viewport.GotoTop()
		case "G":
			h.viewport.GotoBottom()
		}
		return h, nil
	}
	return h, nil
}

// View implements View.
func (h *HistoryView) View() string {
	header := Styles.Title.Render("Request history")
	if h.recorder != nil {
		s := h.recorder.Stats()
		summary := fmt.Sprintf("  %d requests · %d errors · avg %s",
			s.Total, s.Errors, format.Latency(s.AvgLatency))
		header += Styles.Muted.Render(summary)
	}
	help := Styles.Hint.Render("j/k scroll · ctrl+d/u page · g/G ends · Esc close")
	return header + "\n" + h.viewport.View() + "\n" + help
}
