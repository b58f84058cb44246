// Package window adapts the overlay's native window to the capability set the
// interaction engine needs, and serializes every mutation of it.
package window

import (
	"errors"

	"floatpane/internal/geometry"
)

var (
	// ErrUnsupported is returned by capabilities a backend cannot provide.
	ErrUnsupported = errors.New("window: operation not supported on this backend")

	// ErrNotFound is returned when the native window cannot be located.
	ErrNotFound = errors.New("window: native window not found")
)

// Geometry reads pointer and window geometry in screen space.
type Geometry interface {
	CursorPosition() (geometry.Point, error)
	Rect() (geometry.Rect, error)
	ScaleFactor() (float64, error)
}

// Window is everything the engine may do to the overlay window.
type Window interface {
	Geometry
	SetPosition(x, y int) error
	SetSize(width, height int) error
	SetInputTransparent(transparent bool) error
	// StartDrag hands the pointer to the OS window manager for a move.
	// Backends without such a primitive return ErrUnsupported.
	StartDrag() error
}
