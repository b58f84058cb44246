package overlay

import (
	"sync"
	"testing"

	"floatpane/internal/geometry"
)

func TestNew_Defaults(t *testing.T) {
	b := New()

	snap := b.Snapshot()
	if snap.ClickThrough {
		t.Error("expected click-through to start disabled")
	}
	if !snap.DragEnabled {
		t.Error("expected drag to start enabled")
	}
	if _, ok := b.ControlsBounds(); ok {
		t.Error("expected no controls bounds initially")
	}
}

func TestBehavior_TogglesAreSelfInverse(t *testing.T) {
	b := New()

	orig := b.Snapshot()

	if got := b.ToggleClickThrough(); got != !orig.ClickThrough {
		t.Errorf("ToggleClickThrough() = %v; want %v", got, !orig.ClickThrough)
	}
	if got := b.ToggleClickThrough(); got != orig.ClickThrough {
		t.Errorf("second ToggleClickThrough() = %v; want %v", got, orig.ClickThrough)
	}

	if got := b.ToggleDragMode(); got != !orig.DragEnabled {
		t.Errorf("ToggleDragMode() = %v; want %v", got, !orig.DragEnabled)
	}
	if got := b.ToggleDragMode(); got != orig.DragEnabled {
		t.Errorf("second ToggleDragMode() = %v; want %v", got, orig.DragEnabled)
	}

	if b.Snapshot() != orig {
		t.Errorf("Snapshot() = %+v; want %+v", b.Snapshot(), orig)
	}
}

func TestBehavior_SetFlags(t *testing.T) {
	b := New()

	b.SetClickThrough(true)
	b.SetDragEnabled(false)

	if !b.IsClickThrough() {
		t.Error("expected click-through enabled")
	}
	if b.IsDragEnabled() {
		t.Error("expected drag disabled")
	}
}

func TestBehavior_ControlsBounds(t *testing.T) {
	b := New()

	r := geometry.Rect{Left: 10, Top: 20, Right: 110, Bottom: 220}
	b.SetControlsBounds(&r)

	// Mutating the caller's copy must not leak into the state.
	r.Left = 999

	got, ok := b.ControlsBounds()
	if !ok {
		t.Fatal("expected controls bounds to be set")
	}
	if got.Left != 10 || got.Bottom != 220 {
		t.Errorf("ControlsBounds() = %+v", got)
	}

	b.SetControlsBounds(nil)
	if _, ok := b.ControlsBounds(); ok {
		t.Error("expected controls bounds cleared")
	}
}

func TestBehavior_ConcurrentToggles(t *testing.T) {
	b := New()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b.ToggleClickThrough()
			_ = b.Snapshot()
		}()
	}
	wg.Wait()

	// An even number of toggles lands back on the initial value.
	if b.IsClickThrough() {
		t.Error("expected click-through disabled after 100 toggles")
	}
}
