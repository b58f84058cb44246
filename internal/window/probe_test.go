package window

import (
	"errors"
	"testing"

	"floatpane/internal/geometry"
)

func TestProbe_Sample(t *testing.T) {
	win := &fakeWindow{
		cursor: geometry.Point{X: 300, Y: 200},
		rect:   geometry.Rect{Left: 100, Top: 100, Right: 500, Bottom: 400},
	}
	p := NewProbe(win)

	s, ok := p.Sample()
	if !ok {
		t.Fatal("expected a sample")
	}
	if s.Cursor != win.cursor || s.Window != win.rect {
		t.Errorf("Sample() = %+v", s)
	}
}

func TestProbe_FailedReadsAreNoData(t *testing.T) {
	win := &fakeWindow{cursorErr: errors.New("boom")}
	p := NewProbe(win)

	if _, ok := p.Cursor(); ok {
		t.Error("Cursor() should report no data on error")
	}
	if _, ok := p.Sample(); ok {
		t.Error("Sample() should fail when the cursor is unavailable")
	}

	win.cursorErr = nil
	win.rectErr = errors.New("gone")
	if _, ok := p.Sample(); ok {
		t.Error("Sample() should fail when the rect is unavailable")
	}
}

func TestProbe_ScaleDefaultsToOne(t *testing.T) {
	p := NewProbe(&fakeWindow{})
	if got := p.Scale(); got != 1 {
		t.Errorf("Scale() = %v; want 1", got)
	}

	p = NewProbe(&fakeWindow{scale: 1.5})
	if got := p.Scale(); got != 1.5 {
		t.Errorf("Scale() = %v; want 1.5", got)
	}
}
