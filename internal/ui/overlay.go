package ui

import tea "github.com/charmbracelet/bubbletea"

// OverlayStack manages modal views layered over the active panel. The
// topmost overlay receives input first; modals dismiss themselves by
// emitting DismissModalMsg.
type OverlayStack struct {
	views []View
}

// Push adds an overlay on top of the stack.
func (s *OverlayStack) Push(v View) {
	s.views = append(s.views, v)
}

// Pop removes and returns the top overlay.
func (s *OverlayStack) Pop() (View, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	top := s.views[len(s.views)-1]
	s.views = s.views[:len(s.views)-1]
	return top, true
}

// Peek returns the top overlay without removing it.
func (s *OverlayStack) Peek() (View, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	return s.views[len(s.views)-1], true
}

// Len returns the number of overlays on the stack.
func (s *OverlayStack) Len() int {
	return len(s.views)
}

// UpdateTop passes msg to the top overlay's Update and keeps the returned
// View. The caller runs the returned cmd.
func (s *OverlayStack) UpdateTop(msg tea.Msg) (tea.Cmd, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	v, cmd := s.views[len(s.views)-1].Update(msg)
	s.views[len(s.views)-1] = v
	return cmd, true
}

// Broadcast delivers msg to every overlay, bottom to top. Used for
// window resizes, which concern all layers.
func (s *OverlayStack) Broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range s.views {
		next, cmd := v.Update(msg)
		s.views[i] = next
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}
