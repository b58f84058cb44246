// Package engine drives the overlay's click-through and drag modes from two
// loops: a listener fed by the global input hook and a poller that samples
// cursor and window geometry on a fixed tick. Both share the Behavior flags
// and a single drag session cell, and both route OS mutations through one
// memoizing Applier.
package engine

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"floatpane/internal/config"
	"floatpane/internal/geometry"
	"floatpane/internal/hook"
	"floatpane/internal/overlay"
	"floatpane/internal/window"
)

// DefaultPollInterval is roughly one frame at 60Hz.
const DefaultPollInterval = 16 * time.Millisecond

// Config tunes the engine.
type Config struct {
	Profile      Profile
	PollInterval time.Duration
	// HoverMargin grows the window rect for the hover-fade test.
	HoverMargin float64
	// Controls is the fallback region used while no explicit controls
	// bounds are set.
	Controls geometry.ControlsRegion
}

// DefaultConfig returns the platform profile with default timings.
func DefaultConfig() Config {
	return Config{
		Profile:      DefaultProfile(),
		PollInterval: DefaultPollInterval,
		Controls:     geometry.DefaultControlsRegion(),
	}
}

// FromSettings builds an engine config from the interaction section of the
// config file.
func FromSettings(ic config.InteractionConfig) (Config, error) {
	profile, err := ProfileFor(ic.Gesture)
	if err != nil {
		return Config{}, err
	}
	return Config{
		Profile:      profile,
		PollInterval: ic.PollInterval(),
		HoverMargin:  ic.HoverMargin,
		Controls:     ic.Controls.Region(),
	}, nil
}

// dragSession lives from the press that starts a gesture to the release
// that ends it.
type dragSession struct {
	button hook.Button
	native bool
	// offset is cursor minus window origin at press time, screen space.
	offset geometry.Point
}

// edge remembers a boolean so only transitions are reported.
type edge struct {
	value bool
	known bool
}

func (e *edge) set(v bool) bool {
	changed := !e.known || e.value != v
	e.value, e.known = v, true
	return changed
}

// Engine owns the listener and the poller of one overlay window.
type Engine struct {
	cfg      Config
	behavior *overlay.Behavior
	probe    *window.Probe
	applier  *window.Applier
	source   hook.Source
	sink     Sink

	// gen increments whenever a gesture starts or ends or the command layer
	// changes the mode. Transparency computed from an older sample is
	// discarded.
	gen     atomic.Uint64
	altDown atomic.Bool
	hooked  atomic.Bool

	// mu guards session and orders transparency requests against gen.
	mu      sync.Mutex
	session *dragSession

	hoverMu sync.Mutex
	faded   edge
	inside  edge
	lastPos geometry.Point
	hasPos  bool

	wg sync.WaitGroup
}

// New wires an engine. dispatch may be nil, in which case the engine runs
// window calls on a queue of its own, released by Close. source may be nil
// when no global hook is available.
func New(cfg Config, behavior *overlay.Behavior, win window.Window, dispatch window.Dispatcher, source hook.Source, sink Sink) *Engine {
	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}
	if cfg.Profile.Button == hook.ButtonNone {
		cfg.Profile = DefaultProfile()
	}
	if sink == nil {
		sink = nopSink{}
	}
	return &Engine{
		cfg:      cfg,
		behavior: behavior,
		probe:    window.NewProbe(win),
		applier:  window.NewApplier(win, dispatch),
		source:   source,
		sink:     sink,
	}
}

// Profile returns the active gesture profile.
func (e *Engine) Profile() Profile {
	return e.cfg.Profile
}

// Behavior returns the shared behavior state.
func (e *Engine) Behavior() *overlay.Behavior {
	return e.behavior
}

// Start spawns the listener and the poller. Both stop when ctx is done.
func (e *Engine) Start(ctx context.Context) {
	slog.Info("starting overlay engine",
		"profile", e.cfg.Profile.Name,
		"drag", e.cfg.Profile.Drag,
		"poll_interval", e.cfg.PollInterval)

	e.wg.Add(2)
	go func() {
		defer e.wg.Done()
		e.listen(ctx)
	}()
	go func() {
		defer e.wg.Done()
		e.pollLoop(ctx)
	}()
}

// Wait blocks until both loops have returned.
func (e *Engine) Wait() {
	e.wg.Wait()
}

// Close releases the window queue the engine created when New was given no
// dispatcher. Call it after Wait.
func (e *Engine) Close() {
	e.applier.Close()
}

// Hooked reports whether the global input hook is installed and running.
func (e *Engine) Hooked() bool {
	return e.hooked.Load()
}

func (e *Engine) listen(ctx context.Context) {
	if e.source == nil {
		slog.Warn("no global input hook, drag and click-through controls disabled")
		e.degrade()
		return
	}

	e.hooked.Store(true)
	err := e.source.Run(ctx, e.HandleEvent)
	e.hooked.Store(false)

	if err == nil || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		slog.Info("input listener stopped")
		return
	}
	slog.Error("failed to grab global input events", "err", err)
	e.degrade()
}

// degrade drops any gesture and leaves the window accepting input.
func (e *Engine) degrade() {
	e.mu.Lock()
	e.session = nil
	e.gen.Add(1)
	e.applier.SetInputTransparent(false)
	e.mu.Unlock()
}

// Transparent computes the input transparency a window should have with the
// pointer at p: transparent while click-through is on, except over the
// controls region.
func Transparent(clickThrough bool, p geometry.Point, win geometry.Rect, override *geometry.Rect, region geometry.ControlsRegion) bool {
	if !clickThrough {
		return false
	}
	return !geometry.IsInControls(p, win, override, region)
}

func (e *Engine) transparentFor(p geometry.Point, win geometry.Rect) bool {
	var override *geometry.Rect
	if r, ok := e.behavior.ControlsBounds(); ok {
		override = &r
	}
	return Transparent(e.behavior.IsClickThrough(), p, win, override, e.cfg.Controls)
}

// applyIfCurrent sets transparency unless a gesture is active or the state
// changed since gen was read.
func (e *Engine) applyIfCurrent(gen uint64, transparent bool) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.session != nil || e.gen.Load() != gen {
		return false
	}
	return e.applier.SetInputTransparent(transparent)
}

// Refresh recomputes transparency from the current mode and pointer and
// applies it even if the applier believes it is already set. Used after the
// command layer changed the behavior.
func (e *Engine) Refresh() {
	e.mu.Lock()
	gen := e.gen.Add(1)
	e.applier.Forget()
	e.mu.Unlock()

	target := e.behavior.IsClickThrough()
	if s, ok := e.probe.Sample(); ok {
		target = e.transparentFor(s.Cursor, s.Window)
	}
	e.applyIfCurrent(gen, target)
}

// SetClickThrough updates the flag and applies it right away.
func (e *Engine) SetClickThrough(enabled bool) overlay.Snapshot {
	e.behavior.SetClickThrough(enabled)
	e.Refresh()
	return e.emitBehavior()
}

// ToggleClickThrough flips the flag and applies it right away.
func (e *Engine) ToggleClickThrough() overlay.Snapshot {
	e.behavior.ToggleClickThrough()
	e.Refresh()
	return e.emitBehavior()
}

// SetDragEnabled updates the flag. Disabling drag ends a running gesture.
func (e *Engine) SetDragEnabled(enabled bool) overlay.Snapshot {
	e.behavior.SetDragEnabled(enabled)
	if !enabled {
		e.cancelDrag()
	}
	return e.emitBehavior()
}

// ToggleDragMode flips the drag flag.
func (e *Engine) ToggleDragMode() overlay.Snapshot {
	if !e.behavior.ToggleDragMode() {
		e.cancelDrag()
	}
	return e.emitBehavior()
}

// SetControlsBounds replaces the window-local controls rectangle. nil or an
// empty rect restores the default region.
func (e *Engine) SetControlsBounds(bounds *geometry.Rect) overlay.Snapshot {
	e.behavior.SetControlsBounds(bounds)
	e.Refresh()
	return e.behavior.Snapshot()
}

func (e *Engine) cancelDrag() {
	e.mu.Lock()
	active := e.session != nil
	e.session = nil
	e.mu.Unlock()
	if active {
		slog.Debug("drag cancelled, drag mode disabled")
		e.Refresh()
	}
}

func (e *Engine) emitBehavior() overlay.Snapshot {
	snap := e.behavior.Snapshot()
	e.sink.Emit(EventBehavior, snap)
	return snap
}

func (e *Engine) setLastPos(p geometry.Point) {
	e.hoverMu.Lock()
	e.lastPos, e.hasPos = p, true
	e.hoverMu.Unlock()
}

// pointerAt returns the event position, falling back to the last seen
// position and then to a fresh OS read.
func (e *Engine) pointerAt(ev hook.Event) (geometry.Point, bool) {
	if ev.HasPosition {
		return ev.Position, true
	}
	e.hoverMu.Lock()
	p, ok := e.lastPos, e.hasPos
	e.hoverMu.Unlock()
	if ok {
		return p, true
	}
	return e.probe.Cursor()
}

func round(v float64) int {
	return int(math.Round(v))
}
