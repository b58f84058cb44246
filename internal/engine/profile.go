package engine

import (
	"fmt"
	"runtime"
	"strings"

	"floatpane/internal/hook"
)

// DragMode says who moves the window during a drag gesture.
type DragMode uint8

const (
	// DragNative hands the gesture to the window manager via StartDrag.
	DragNative DragMode = iota
	// DragManual keeps the window under the pointer from the poller.
	DragManual
)

func (m DragMode) String() string {
	if m == DragManual {
		return "manual"
	}
	return "native"
}

// Profile is the gesture and hover behavior of one backend.
type Profile struct {
	Name string
	// Button starts and ends a drag gesture.
	Button hook.Button
	// RequireAlt makes the press count only while Alt is held.
	RequireAlt bool
	Drag       DragMode
	// PollHover evaluates hover-fade and controls transparency on every
	// poller tick instead of on MouseMove events.
	PollHover bool
}

var (
	// ProfileRightDrag: right press inside the window starts a native drag,
	// hover is event driven.
	ProfileRightDrag = Profile{
		Name:   "right-drag",
		Button: hook.ButtonRight,
		Drag:   DragNative,
	}

	// ProfileAltDrag: Alt+left press inside the window starts a manual drag,
	// hover is evaluated by the poller.
	ProfileAltDrag = Profile{
		Name:       "alt-drag",
		Button:     hook.ButtonLeft,
		RequireAlt: true,
		Drag:       DragManual,
		PollHover:  true,
	}
)

// ProfileFor resolves a gesture name. "auto" and "" pick the default of the
// running platform.
func ProfileFor(gesture string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(gesture)) {
	case "", "auto":
		return DefaultProfile(), nil
	case ProfileRightDrag.Name:
		return ProfileRightDrag, nil
	case ProfileAltDrag.Name:
		return ProfileAltDrag, nil
	}
	return Profile{}, fmt.Errorf("unknown gesture %q (want auto, right-drag or alt-drag)", gesture)
}

// DefaultProfile returns the profile of the running platform.
func DefaultProfile() Profile {
	return defaultProfile(runtime.GOOS)
}

func defaultProfile(goos string) Profile {
	if goos == "windows" {
		return ProfileAltDrag
	}
	return ProfileRightDrag
}

// HookOptions returns the hook options the profile needs.
func (p Profile) HookOptions() hook.Options {
	return hook.Options{
		Buttons:  []hook.Button{p.Button},
		KeepGrab: p.Drag == DragManual,
	}
}
