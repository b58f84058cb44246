package engine

import (
	"context"
	"log/slog"
	"time"

	"floatpane/internal/geometry"
)

// pollLoop samples geometry on a fixed tick until ctx is done.
func (e *Engine) pollLoop(ctx context.Context) {
	ticker := time.NewTicker(e.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("geometry poller stopped")
			return
		case <-ticker.C:
			e.Tick()
		}
	}
}

// Tick runs one poller iteration: report inside-window transitions, keep a
// manual drag under the pointer and, for poll-driven profiles, evaluate hover
// and controls transparency. A failed geometry read skips the tick.
func (e *Engine) Tick() {
	gen := e.gen.Load()
	sample, ok := e.probe.Sample()
	if !ok {
		return
	}
	cursor, rect := sample.Cursor, sample.Window

	inside := geometry.PointInRect(cursor, rect)
	e.hoverMu.Lock()
	changed := e.inside.set(inside)
	e.hoverMu.Unlock()
	if changed {
		e.sink.Emit(EventCursor, NewCursorState(cursor, rect, e.probe.Scale()))
	}

	if e.followDrag(cursor) {
		return
	}

	if e.cfg.Profile.PollHover {
		e.observe(gen, cursor, rect)
	}
}

// followDrag moves the window for a manual drag. It reports whether any drag
// is active.
func (e *Engine) followDrag(cursor geometry.Point) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := e.session
	if s == nil {
		return false
	}
	if !s.native {
		origin := cursor.Sub(s.offset)
		e.applier.MoveTo(round(origin.X), round(origin.Y))
	}
	return true
}
