//go:build linux

package hook

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"

	"floatpane/internal/geometry"
)

// pointerPollInterval is how often the X11 source samples the pointer. The
// core protocol has no global motion stream, so motion, modifier changes and
// releases that happen outside our grab are derived from QueryPointer.
const pointerPollInterval = 8 * time.Millisecond

// x11Source grabs the requested buttons on the root window in synchronous
// mode. Each grabbed press freezes the pointer until the filter has decided:
// Forward replays it to the client below. Consume drops it and either
// releases the grab so a window manager move can take over, or, with
// KeepGrab, thaws the pointer but keeps it grabbed so the release is
// delivered to us alone.
type x11Source struct {
	buttons  []Button
	keepGrab bool
}

// grabControl is the part of the X connection the press handling drives.
type grabControl interface {
	allow(mode byte, t xproto.Timestamp)
	ungrab(t xproto.Timestamp)
}

type xgbGrab struct {
	conn *xgb.Conn
}

func (g xgbGrab) allow(mode byte, t xproto.Timestamp) {
	xproto.AllowEvents(g.conn, mode, t)
}

func (g xgbGrab) ungrab(t xproto.Timestamp) {
	xproto.UngrabPointer(g.conn, t)
}

// NewSource returns the X11 source. Only opts.Buttons are grabbed.
func NewSource(opts Options) (Source, error) {
	if len(opts.Buttons) == 0 {
		return nil, fmt.Errorf("%w: no buttons to grab", ErrSubscribe)
	}
	return &x11Source{buttons: opts.Buttons, keepGrab: opts.KeepGrab}, nil
}

type pointerState struct {
	pos     geometry.Point
	known   bool
	alt     bool
	pressed map[Button]bool
	// held are buttons whose consumed press kept the pointer grabbed.
	held map[Button]bool
}

func newPointerState() pointerState {
	return pointerState{pressed: make(map[Button]bool), held: make(map[Button]bool)}
}

func (s *x11Source) Run(ctx context.Context, filter Filter) error {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return fmt.Errorf("%w: connect to X server: %v", ErrSubscribe, err)
	}
	conn := xu.Conn()
	defer conn.Close()
	root := xu.RootWin()

	for _, b := range s.buttons {
		detail, ok := xButton(b)
		if !ok {
			continue
		}
		err := xproto.GrabButtonChecked(conn, false, root,
			uint16(xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease),
			xproto.GrabModeSync, xproto.GrabModeAsync,
			xproto.WindowNone, xproto.CursorNone,
			byte(detail), xproto.ModMaskAny).Check()
		if err != nil {
			return fmt.Errorf("%w: grab %s button: %v", ErrSubscribe, b, err)
		}
	}

	events := make(chan xgb.Event, 32)
	done := make(chan struct{})
	defer close(done)
	go func() {
		defer close(events)
		for {
			ev, xerr := conn.WaitForEvent()
			if ev == nil && xerr == nil {
				return
			}
			if xerr != nil {
				slog.Debug("X error on hook connection", "err", xerr)
				continue
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	state := newPointerState()
	grab := xgbGrab{conn: conn}
	ticker := time.NewTicker(pointerPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return fmt.Errorf("X connection closed")
			}
			s.handleEvent(grab, ev, filter, &state)

		case <-ticker.C:
			reply, err := xproto.QueryPointer(conn, root).Reply()
			if err != nil {
				continue
			}
			s.handlePointer(reply, filter, &state)
		}
	}
}

func (s *x11Source) handleEvent(grab grabControl, ev xgb.Event, filter Filter, state *pointerState) {
	switch e := ev.(type) {
	case xproto.ButtonPressEvent:
		b := fromXButton(e.Detail)
		pos := geometry.Point{X: float64(e.RootX), Y: float64(e.RootY)}
		state.pressed[b] = true
		verdict := filter(Event{Kind: ButtonPress, Button: b, Position: pos, HasPosition: true})
		switch {
		case verdict == Consume && s.keepGrab:
			grab.allow(xproto.AllowAsyncPointer, e.Time)
			state.held[b] = true
		case verdict == Consume:
			grab.allow(xproto.AllowAsyncPointer, e.Time)
			grab.ungrab(e.Time)
		default:
			grab.allow(xproto.AllowReplayPointer, e.Time)
		}

	case xproto.ButtonReleaseEvent:
		// Releases only arrive here while we own the grab, so no other
		// client sees them whatever the filter decides.
		b := fromXButton(e.Detail)
		if state.held[b] {
			delete(state.held, b)
			grab.ungrab(e.Time)
		}
		if !state.pressed[b] {
			return
		}
		delete(state.pressed, b)
		pos := geometry.Point{X: float64(e.RootX), Y: float64(e.RootY)}
		filter(Event{Kind: ButtonRelease, Button: b, Position: pos, HasPosition: true})
	}
}

func (s *x11Source) handlePointer(reply *xproto.QueryPointerReply, filter Filter, state *pointerState) {
	pos := geometry.Point{X: float64(reply.RootX), Y: float64(reply.RootY)}
	if !state.known || pos != state.pos {
		state.pos, state.known = pos, true
		filter(Event{Kind: MouseMove, Position: pos, HasPosition: true})
	}

	alt := reply.Mask&xproto.KeyButMaskMod1 != 0
	if alt != state.alt {
		state.alt = alt
		kind := KeyRelease
		if alt {
			kind = KeyPress
		}
		filter(Event{Kind: kind, Key: KeyAlt})
	}

	for b := range state.pressed {
		if reply.Mask&buttonMask(b) != 0 {
			continue
		}
		delete(state.pressed, b)
		filter(Event{Kind: ButtonRelease, Button: b, Position: pos, HasPosition: true})
	}
}

func xButton(b Button) (xproto.Button, bool) {
	switch b {
	case ButtonLeft:
		return xproto.ButtonIndex1, true
	case ButtonMiddle:
		return xproto.ButtonIndex2, true
	case ButtonRight:
		return xproto.ButtonIndex3, true
	}
	return 0, false
}

func fromXButton(d xproto.Button) Button {
	switch d {
	case xproto.ButtonIndex1:
		return ButtonLeft
	case xproto.ButtonIndex2:
		return ButtonMiddle
	case xproto.ButtonIndex3:
		return ButtonRight
	}
	return ButtonNone
}

func buttonMask(b Button) uint16 {
	switch b {
	case ButtonLeft:
		return xproto.KeyButMaskButton1
	case ButtonMiddle:
		return xproto.KeyButMaskButton2
	case ButtonRight:
		return xproto.KeyButMaskButton3
	}
	return 0
}
