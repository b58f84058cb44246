package engine

import (
	"log/slog"

	"floatpane/internal/geometry"
	"floatpane/internal/hook"
)

// HandleEvent is the hook filter. It consumes the press that starts a drag
// gesture and the release that ends it; everything else is forwarded.
func (e *Engine) HandleEvent(ev hook.Event) hook.Verdict {
	if ev.HasPosition {
		e.setLastPos(ev.Position)
	}

	switch ev.Kind {
	case hook.KeyPress:
		if ev.Key.IsAlt() {
			e.altDown.Store(true)
		}
	case hook.KeyRelease:
		if ev.Key.IsAlt() {
			e.altDown.Store(false)
		}
	case hook.MouseMove:
		if !e.cfg.Profile.PollHover && ev.HasPosition {
			gen := e.gen.Load()
			if rect, ok := e.probe.Rect(); ok {
				e.observe(gen, ev.Position, rect)
			}
		}
	case hook.ButtonPress:
		if ev.Button == e.cfg.Profile.Button {
			return e.beginDrag(ev)
		}
	case hook.ButtonRelease:
		if ev.Button == e.cfg.Profile.Button {
			return e.endDrag(ev)
		}
	}
	return hook.Forward
}

// observe evaluates hover-fade and controls transparency for one pointer
// sample. gen must be read before the sample was taken.
func (e *Engine) observe(gen uint64, p geometry.Point, win geometry.Rect) {
	faded := geometry.IsNearWindow(p, win, e.cfg.HoverMargin)
	e.hoverMu.Lock()
	changed := e.faded.set(faded)
	e.hoverMu.Unlock()
	if changed {
		e.sink.Emit(EventHover, HoverFade{Faded: faded})
	}

	e.applyIfCurrent(gen, e.transparentFor(p, win))
}

func (e *Engine) beginDrag(ev hook.Event) hook.Verdict {
	e.mu.Lock()
	if cur := e.session; cur != nil {
		// A second press while dragging. The window manager may own the
		// pointer during a native drag and swallow the release, so the
		// press closes that session instead.
		if cur.native {
			e.session = nil
		}
		e.mu.Unlock()
		if cur.native {
			slog.Debug("native drag closed by a second press")
			e.Refresh()
		}
		return hook.Consume
	}
	e.mu.Unlock()

	if !e.behavior.IsDragEnabled() {
		return hook.Forward
	}
	if e.cfg.Profile.RequireAlt && !e.altDown.Load() {
		return hook.Forward
	}

	pos, ok := e.pointerAt(ev)
	if !ok {
		return hook.Forward
	}
	rect, ok := e.probe.Rect()
	if !ok || !geometry.PointInRect(pos, rect) {
		return hook.Forward
	}

	session := &dragSession{
		button: ev.Button,
		native: e.cfg.Profile.Drag == DragNative,
		offset: pos.Sub(rect.Origin()),
	}

	e.mu.Lock()
	if e.session != nil {
		e.mu.Unlock()
		return hook.Consume
	}
	e.session = session
	e.gen.Add(1)
	// The window is about to move behind the applier's back.
	e.applier.Forget()
	e.applier.SetInputTransparent(false)
	if session.native {
		e.applier.StartDrag()
	}
	e.mu.Unlock()

	slog.Debug("drag started",
		"button", ev.Button,
		"mode", e.cfg.Profile.Drag,
		"offset_x", session.offset.X,
		"offset_y", session.offset.Y)
	return hook.Consume
}

func (e *Engine) endDrag(ev hook.Event) hook.Verdict {
	e.mu.Lock()
	session := e.session
	if session == nil || session.button != ev.Button {
		e.mu.Unlock()
		return hook.Forward
	}
	e.session = nil
	gen := e.gen.Add(1)
	e.mu.Unlock()

	pos, havePos := e.pointerAt(ev)
	rect, haveRect := e.probe.Rect()

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.gen.Load() != gen {
		// Another gesture or a mode change already took over.
		return hook.Consume
	}

	if !session.native && havePos {
		origin := pos.Sub(session.offset)
		e.applier.MoveTo(round(origin.X), round(origin.Y))
		if haveRect {
			rect = geometry.RectFromBounds(origin.X, origin.Y, rect.Width(), rect.Height())
		}
	}

	target := e.behavior.IsClickThrough()
	if havePos && haveRect {
		target = e.transparentFor(pos, rect)
	}
	e.applier.SetInputTransparent(target)

	slog.Debug("drag ended", "button", ev.Button, "transparent", target)
	return hook.Consume
}
