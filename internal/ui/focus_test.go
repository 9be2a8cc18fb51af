package ui

import "testing"

func TestFocusManager_NextPrevWrap(t *testing.T) {
	f := NewFocusManager()
	if f.Current != ModeSupplier {
		t.Fatalf("initial = %v, want %v", f.Current, ModeSupplier)
	}

	if got := f.Next(); got != ModeShipment {
		t.Errorf("Next = %v, want %v", got, ModeShipment)
	}
	if got := f.Prev(); got != ModeSupplier {
		t.Errorf("Prev = %v, want %v", got, ModeSupplier)
	}
	if got := f.Prev(); got != ModeModels {
		t.Errorf("Prev from first = %v, want wrap to %v", got, ModeModels)
	}
	if got := f.Next(); got != ModeSupplier {
		t.Errorf("Next from last = %v, want wrap to %v", got, ModeSupplier)
	}
}

func TestFocusManager_SetValidatesMode(t *testing.T) {
	f := NewFocusManager()
	if !f.Set(ModeRouting) {
		t.Fatal("Set should accept a panel in the tab order")
	}
	if f.Current != ModeRouting {
		t.Errorf("Current = %v, want %v", f.Current, ModeRouting)
	}
	if f.Set(AppMode(99)) {
		t.Error("Set should reject an unknown mode")
	}
	if f.Current != ModeRouting {
		t.Errorf("rejected Set moved focus to %v", f.Current)
	}
}

func TestFocusManager_OnChange(t *testing.T) {
	f := NewFocusManager()
	var from, to AppMode
	calls := 0
	f.OnChange = func(src, dst AppMode) {
		from, to = src, dst
		calls++
	}

	f.Next()
	if calls != 1 || from != ModeSupplier || to != ModeShipment {
		t.Errorf("OnChange fired %d times with from=%v to=%v", calls, from, to)
	}

	f.Set(ModeShipment)
	if calls != 1 {
		t.Error("OnChange should not fire when focus is unchanged")
	}

	f.Set(ModeBatch)
	if calls != 2 || to != ModeBatch {
		t.Errorf("OnChange after Set fired %d times with to=%v", calls, to)
	}
}
