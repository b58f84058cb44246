package window

import (
	"log/slog"

	"floatpane/internal/geometry"
)

// Sample is one consistent read of pointer and window geometry.
type Sample struct {
	Cursor geometry.Point
	Window geometry.Rect
}

// Probe wraps a Geometry source with best-effort semantics: a failed OS read
// is logged at debug level and reported as "no data".
type Probe struct {
	src Geometry
}

// NewProbe creates a probe over src.
func NewProbe(src Geometry) *Probe {
	return &Probe{src: src}
}

// Cursor returns the pointer position, or false if it could not be read.
func (p *Probe) Cursor() (geometry.Point, bool) {
	pt, err := p.src.CursorPosition()
	if err != nil {
		slog.Debug("cursor position unavailable", "err", err)
		return geometry.Point{}, false
	}
	return pt, true
}

// Rect returns the window rectangle, or false if it could not be read.
func (p *Probe) Rect() (geometry.Rect, bool) {
	r, err := p.src.Rect()
	if err != nil {
		slog.Debug("window rect unavailable", "err", err)
		return geometry.Rect{}, false
	}
	return r, true
}

// Scale returns the DPI scale factor, 1 when unknown.
func (p *Probe) Scale() float64 {
	s, err := p.src.ScaleFactor()
	if err != nil || s <= 0 {
		return 1
	}
	return s
}

// Sample reads cursor and window together.
func (p *Probe) Sample() (Sample, bool) {
	cursor, ok := p.Cursor()
	if !ok {
		return Sample{}, false
	}
	rect, ok := p.Rect()
	if !ok {
		return Sample{}, false
	}
	return Sample{Cursor: cursor, Window: rect}, true
}
