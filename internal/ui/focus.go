package ui

// FocusManager rotates the active panel through the tab order.
type FocusManager struct {
	Current  AppMode
	Order    []AppMode
	OnChange func(from, to AppMode)
}

// NewFocusManager creates a manager over the standard panel order.
func NewFocusManager() *FocusManager {
	order := PanelModes()
	return &FocusManager{Current: order[0], Order: order}
}

// Next advances to the next panel in order, wrapping at the end.
func (f *FocusManager) Next() AppMode {
	return f.step(1)
}

// Prev moves to the previous panel in order, wrapping at the start.
func (f *FocusManager) Prev() AppMode {
	return f.step(-1)
}

func (f *FocusManager) step(delta int) AppMode {
	if len(f.Order) == 0 {
		return f.Current
	}
	idx := 0
	for i, m := range f.Order {
		if m == f.Current {
			idx = i
			break
		}
	}
	next := (idx + delta + len(f.Order)) % len(f.Order)
	f.change(f.Order[next])
	return f.Current
}

// Set activates the given panel. Returns false when the panel is not in
// the tab order.
func (f *FocusManager) Set(mode AppMode) bool {
	for _, m := range f.Order {
		if m == mode {
			f.change(mode)
			return true
		}
	}
	return false
}

func (f *FocusManager) change(to AppMode) {
	from := f.Current
	f.Current = to
	if f.OnChange != nil && from != to {
		f.OnChange(from, to)
	}
}
