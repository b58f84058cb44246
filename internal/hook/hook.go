// Package hook subscribes to the system-wide pointer and keyboard stream.
//
// A Source calls a Filter for every event it sees, on the source's own
// goroutine. The filter decides whether the event continues to whatever
// application would normally receive it (Forward) or is swallowed (Consume).
package hook

import (
	"context"
	"errors"

	"floatpane/internal/geometry"
)

var (
	// ErrUnsupported is returned when the platform has no global hook backend.
	ErrUnsupported = errors.New("hook: global input hooks not supported on this platform")

	// ErrSubscribe wraps failures to install the hook.
	ErrSubscribe = errors.New("hook: failed to subscribe to global input")

	// ErrBusy is returned when a second hook is started in the same process.
	ErrBusy = errors.New("hook: another hook is already running")
)

// Kind is the type of an input event.
type Kind uint8

const (
	MouseMove Kind = iota + 1
	ButtonPress
	ButtonRelease
	KeyPress
	KeyRelease
)

func (k Kind) String() string {
	switch k {
	case MouseMove:
		return "mouse-move"
	case ButtonPress:
		return "button-press"
	case ButtonRelease:
		return "button-release"
	case KeyPress:
		return "key-press"
	case KeyRelease:
		return "key-release"
	default:
		return "unknown"
	}
}

// Button identifies a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonRight
	ButtonMiddle
)

func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "left"
	case ButtonRight:
		return "right"
	case ButtonMiddle:
		return "middle"
	default:
		return "none"
	}
}

// Key identifies the keys the engine cares about. Everything else is KeyOther.
type Key uint8

const (
	KeyOther Key = iota
	KeyAlt
	KeyAltGr
)

// IsAlt reports whether k is either Alt key.
func (k Key) IsAlt() bool {
	return k == KeyAlt || k == KeyAltGr
}

// Event is one global input event. Position is in screen space and only
// meaningful when HasPosition is set.
type Event struct {
	Kind        Kind
	Button      Button
	Key         Key
	Position    geometry.Point
	HasPosition bool
}

// Verdict is what a filter decides for an event.
type Verdict uint8

const (
	Forward Verdict = iota
	Consume
)

// Filter inspects an event and decides its fate. It runs on the hook thread
// and must return quickly.
type Filter func(Event) Verdict

// Source is a global input subscription.
type Source interface {
	// Run installs the hook and blocks, calling filter for every event,
	// until ctx is cancelled or the subscription fails.
	Run(ctx context.Context, filter Filter) error
}

// Options tunes a platform source.
type Options struct {
	// Buttons lists the buttons whose presses the filter may consume.
	// Backends that must grab buttons explicitly grab only these.
	Buttons []Button
	// KeepGrab holds the pointer after a consumed press until the matching
	// release, so the release never reaches another client. Leave it off
	// when the window manager takes the pointer for a native move.
	KeepGrab bool
}
