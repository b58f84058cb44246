package window

import (
	"errors"
	"sync"

	"floatpane/internal/geometry"
)

// fakeWindow records every mutation it receives.
type fakeWindow struct {
	mu          sync.Mutex
	cursor      geometry.Point
	rect        geometry.Rect
	scale       float64
	cursorErr   error
	rectErr     error
	transparent []bool
	moves       [][2]int
	drags       int
	dragErr     error
	// setErrs are returned by successive SetInputTransparent and
	// SetPosition calls, then nil.
	setErrs  []error
	moveErrs []error
}

func next(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return err
}

func (f *fakeWindow) CursorPosition() (geometry.Point, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor, f.cursorErr
}

func (f *fakeWindow) Rect() (geometry.Rect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rect, f.rectErr
}

func (f *fakeWindow) ScaleFactor() (float64, error) {
	if f.scale == 0 {
		return 0, errors.New("no scale")
	}
	return f.scale, nil
}

func (f *fakeWindow) SetPosition(x, y int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.moves = append(f.moves, [2]int{x, y})
	return next(&f.moveErrs)
}

func (f *fakeWindow) SetSize(int, int) error { return nil }

func (f *fakeWindow) SetInputTransparent(transparent bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.transparent = append(f.transparent, transparent)
	return next(&f.setErrs)
}

func (f *fakeWindow) StartDrag() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drags++
	return f.dragErr
}

// refuse drops every job.
type refuse struct{}

func (refuse) Dispatch(func()) bool { return false }
