package window

import (
	"context"
	"fmt"

	"github.com/wailsapp/wails/v2/pkg/runtime"

	"floatpane/internal/geometry"
)

// Wails drives the window through the Wails runtime. The runtime has no
// pointer query, input transparency or native drag, so those report
// ErrUnsupported; it is the fallback when no native backend is available.
type Wails struct {
	ctx context.Context
}

// NewWails returns a runtime-backed window for the Wails app context.
func NewWails(ctx context.Context) *Wails {
	return &Wails{ctx: ctx}
}

// CursorPosition is not available through the runtime.
func (w *Wails) CursorPosition() (geometry.Point, error) {
	return geometry.Point{}, ErrUnsupported
}

// Rect returns the window bounds as reported by the runtime.
func (w *Wails) Rect() (geometry.Rect, error) {
	x, y := runtime.WindowGetPosition(w.ctx)
	width, height := runtime.WindowGetSize(w.ctx)
	if width <= 0 || height <= 0 {
		return geometry.Rect{}, fmt.Errorf("window has no size (%dx%d)", width, height)
	}
	return geometry.RectFromBounds(float64(x), float64(y), float64(width), float64(height)), nil
}

// ScaleFactor derives the scale of the current screen from its logical and
// physical sizes.
func (w *Wails) ScaleFactor() (float64, error) {
	screens, err := runtime.ScreenGetAll(w.ctx)
	if err != nil {
		return 1, fmt.Errorf("failed to list screens: %w", err)
	}
	for _, s := range screens {
		if !s.IsCurrent || s.Size.Width == 0 {
			continue
		}
		return float64(s.PhysicalSize.Width) / float64(s.Size.Width), nil
	}
	return 1, nil
}

// SetPosition moves the window.
func (w *Wails) SetPosition(x, y int) error {
	runtime.WindowSetPosition(w.ctx, x, y)
	return nil
}

// SetSize resizes the window.
func (w *Wails) SetSize(width, height int) error {
	runtime.WindowSetSize(w.ctx, width, height)
	return nil
}

// SetInputTransparent is not available through the runtime.
func (w *Wails) SetInputTransparent(bool) error {
	return ErrUnsupported
}

// StartDrag is not available through the runtime.
func (w *Wails) StartDrag() error {
	return ErrUnsupported
}
