package overlay

import (
	"sync"
	"sync/atomic"

	"floatpane/internal/geometry"
)

// Behavior holds the overlay's interaction mode. It is shared by the input
// listener, the geometry poller and the command layer; every method is safe
// for concurrent use and none of them block on an OS call.
type Behavior struct {
	clickThrough atomic.Bool
	dragEnabled  atomic.Bool

	mu             sync.Mutex
	controlsBounds *geometry.Rect
}

// Snapshot is a point-in-time copy of the mode flags.
type Snapshot struct {
	ClickThrough bool `json:"clickThrough" yaml:"click_through"`
	DragEnabled  bool `json:"dragEnabled" yaml:"drag_enabled"`
}

// New creates the behavior state with click-through off and dragging on.
func New() *Behavior {
	b := &Behavior{}
	b.dragEnabled.Store(true)
	return b
}

// Snapshot returns both flags.
func (b *Behavior) Snapshot() Snapshot {
	return Snapshot{
		ClickThrough: b.clickThrough.Load(),
		DragEnabled:  b.dragEnabled.Load(),
	}
}

// IsClickThrough reports whether pointer input should pass through.
func (b *Behavior) IsClickThrough() bool {
	return b.clickThrough.Load()
}

// SetClickThrough sets the click-through flag.
func (b *Behavior) SetClickThrough(enabled bool) {
	b.clickThrough.Store(enabled)
}

// ToggleClickThrough flips click-through and returns the new value.
func (b *Behavior) ToggleClickThrough() bool {
	return toggle(&b.clickThrough)
}

// IsDragEnabled reports whether drag gestures are recognized.
func (b *Behavior) IsDragEnabled() bool {
	return b.dragEnabled.Load()
}

// SetDragEnabled sets the drag flag.
func (b *Behavior) SetDragEnabled(enabled bool) {
	b.dragEnabled.Store(enabled)
}

// ToggleDragMode flips the drag flag and returns the new value.
func (b *Behavior) ToggleDragMode() bool {
	return toggle(&b.dragEnabled)
}

// SetControlsBounds replaces the window-local controls rectangle. nil clears
// it, which brings back the default bottom-right region.
func (b *Behavior) SetControlsBounds(bounds *geometry.Rect) {
	var stored *geometry.Rect
	if bounds != nil {
		r := bounds.Normalize()
		stored = &r
	}

	b.mu.Lock()
	b.controlsBounds = stored
	b.mu.Unlock()
}

// ControlsBounds returns a copy of the controls rectangle, if one is set.
func (b *Behavior) ControlsBounds() (geometry.Rect, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.controlsBounds == nil {
		return geometry.Rect{}, false
	}
	return *b.controlsBounds, true
}

func toggle(flag *atomic.Bool) bool {
	for {
		cur := flag.Load()
		if flag.CompareAndSwap(cur, !cur) {
			return !cur
		}
	}
}
