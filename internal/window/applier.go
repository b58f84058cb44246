package window

import (
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
)

// memo is the last value handed to the OS. A failed call marks its sequence
// number so the next request for the same value is sent again. Jobs report
// failure without taking the applier lock, which may be held by the caller
// while an Inline job runs.
type memo[T comparable] struct {
	value  T
	set    bool
	seq    uint64
	failed atomic.Uint64
}

func (m *memo[T]) holds(v T) bool {
	return m.set && m.value == v && m.failed.Load() != m.seq
}

func (m *memo[T]) store(v T) uint64 {
	m.seq++
	m.value, m.set = v, true
	return m.seq
}

// fail marks the call with sequence seq as failed. A backend that lacks the
// operation is not retried.
func (m *memo[T]) fail(seq uint64, err error) {
	if !errors.Is(err, ErrUnsupported) {
		m.failed.Store(seq)
	}
}

func (m *memo[T]) clear() {
	m.set = false
}

// Applier is the single writer of input transparency and window position.
// It remembers the last value handed to the OS and drops requests that would
// repeat it.
type Applier struct {
	win      Window
	dispatch Dispatcher
	owned    *Queue

	mu          sync.Mutex
	transparent memo[bool]
	position    memo[[2]int]
}

// NewApplier creates an applier that sends calls for win through dispatch.
// A nil dispatch gets a Queue owned by the applier; release it with Close.
func NewApplier(win Window, dispatch Dispatcher) *Applier {
	a := &Applier{win: win, dispatch: dispatch}
	if dispatch == nil {
		a.owned = NewQueue(0)
		a.dispatch = a.owned
	}
	return a
}

// Close stops the queue the applier created for itself, if any.
func (a *Applier) Close() {
	if a.owned != nil {
		a.owned.Close()
	}
}

// SetInputTransparent requests the click-through flag. It returns true when a
// call was queued and false when the value was already applied or the
// dispatcher refused the job.
func (a *Applier) SetInputTransparent(transparent bool) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.transparent.holds(transparent) {
		return false
	}

	seq := a.transparent.store(transparent)
	m, win := &a.transparent, a.win
	ok := a.dispatch.Dispatch(func() {
		if err := win.SetInputTransparent(transparent); err != nil {
			m.fail(seq, err)
			logFailure("failed to set input transparency", err, "transparent", transparent)
		}
	})
	if !ok {
		a.transparent.clear()
		return false
	}
	return true
}

// Transparent returns the last applied transparency, if any.
func (a *Applier) Transparent() (bool, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.transparent.holds(a.transparent.value) {
		return false, false
	}
	return a.transparent.value, true
}

// MoveTo requests a window move to the given screen position.
func (a *Applier) MoveTo(x, y int) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	pos := [2]int{x, y}
	if a.position.holds(pos) {
		return false
	}

	seq := a.position.store(pos)
	m, win := &a.position, a.win
	ok := a.dispatch.Dispatch(func() {
		if err := win.SetPosition(x, y); err != nil {
			m.fail(seq, err)
			logFailure("failed to move window", err, "x", x, "y", y)
		}
	})
	if !ok {
		a.position.clear()
		return false
	}
	return true
}

// StartDrag queues a native drag.
func (a *Applier) StartDrag() bool {
	win := a.win
	return a.dispatch.Dispatch(func() {
		if err := win.StartDrag(); err != nil {
			logFailure("failed to start native drag", err)
		}
	})
}

// logFailure logs ErrUnsupported at debug level and anything else as a
// warning.
func logFailure(msg string, err error, args ...any) {
	args = append(args, "err", err)
	if errors.Is(err, ErrUnsupported) {
		slog.Debug(msg, args...)
		return
	}
	slog.Warn(msg, args...)
}

// Forget clears the memo so the next request is always sent. Used after the
// window was changed behind the applier's back, e.g. by a native drag.
func (a *Applier) Forget() {
	a.mu.Lock()
	a.transparent.clear()
	a.position.clear()
	a.mu.Unlock()
}
