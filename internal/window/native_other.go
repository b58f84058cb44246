//go:build !windows && !linux

package window

import "floatpane/internal/geometry"

// Native is unavailable on this platform; callers fall back to the Wails
// adapter.
type Native struct{}

func NewNative(string) (*Native, error) {
	return nil, ErrUnsupported
}

func (*Native) Close() {}

func (*Native) CursorPosition() (geometry.Point, error) { return geometry.Point{}, ErrUnsupported }
func (*Native) Rect() (geometry.Rect, error)             { return geometry.Rect{}, ErrUnsupported }
func (*Native) ScaleFactor() (float64, error)            { return 1, ErrUnsupported }
func (*Native) SetPosition(int, int) error               { return ErrUnsupported }
func (*Native) SetSize(int, int) error                   { return ErrUnsupported }
func (*Native) SetInputTransparent(bool) error           { return ErrUnsupported }
func (*Native) StartDrag() error                         { return ErrUnsupported }
