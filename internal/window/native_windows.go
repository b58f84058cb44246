//go:build windows

package window

import (
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"floatpane/internal/geometry"
)

// Windows constants for extended window styles and window messages
const (
	_GWL_EXSTYLE       int32 = -20
	_WS_EX_TRANSPARENT int32 = 0x00000020
	_WS_EX_LAYERED     int32 = 0x00080000

	_SWP_NOSIZE         = 0x0001
	_SWP_NOMOVE         = 0x0002
	_SWP_NOZORDER       = 0x0004
	_SWP_NOACTIVATE     = 0x0010
	_SWP_ASYNCWINDOWPOS = 0x4000

	_WM_NCLBUTTONDOWN = 0x00A1
	_HTCAPTION        = 2
)

var (
	user32              = windows.NewLazySystemDLL("user32.dll")
	procFindWindowW     = user32.NewProc("FindWindowW")
	procGetWindowLongW  = user32.NewProc("GetWindowLongW")
	procSetWindowLongW  = user32.NewProc("SetWindowLongW")
	procGetCursorPos    = user32.NewProc("GetCursorPos")
	procGetWindowRect   = user32.NewProc("GetWindowRect")
	procSetWindowPos    = user32.NewProc("SetWindowPos")
	procGetDpiForWindow = user32.NewProc("GetDpiForWindow")
	procReleaseCapture  = user32.NewProc("ReleaseCapture")
	procPostMessageW    = user32.NewProc("PostMessageW")
)

type point struct {
	X, Y int32
}

// Native is the overlay's Win32 window, located by title.
type Native struct {
	title string

	mu   sync.Mutex
	hwnd uintptr
}

// NewNative returns the Win32 window with the given title. The handle is
// resolved lazily since the window may not exist yet.
func NewNative(title string) (*Native, error) {
	return &Native{title: title}, nil
}

// Close is a no-op; user32 holds no per-client connection.
func (n *Native) Close() {}

// handle finds and caches the HWND of the window by its title
func (n *Native) handle() (uintptr, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.hwnd != 0 {
		return n.hwnd, nil
	}

	title, err := windows.UTF16PtrFromString(n.title)
	if err != nil {
		return 0, fmt.Errorf("invalid window title: %w", err)
	}
	hwnd, _, _ := procFindWindowW.Call(0, uintptr(unsafe.Pointer(title)))
	if hwnd == 0 {
		return 0, fmt.Errorf("%w: %q", ErrNotFound, n.title)
	}
	n.hwnd = hwnd
	return hwnd, nil
}

// CursorPosition returns the pointer position in physical screen pixels.
func (n *Native) CursorPosition() (geometry.Point, error) {
	var pt point
	ret, _, err := procGetCursorPos.Call(uintptr(unsafe.Pointer(&pt)))
	if ret == 0 {
		return geometry.Point{}, fmt.Errorf("GetCursorPos: %w", err)
	}
	return geometry.Point{X: float64(pt.X), Y: float64(pt.Y)}, nil
}

// Rect returns the window rectangle in physical screen pixels.
func (n *Native) Rect() (geometry.Rect, error) {
	hwnd, err := n.handle()
	if err != nil {
		return geometry.Rect{}, err
	}

	var r windows.Rect
	ret, _, callErr := procGetWindowRect.Call(hwnd, uintptr(unsafe.Pointer(&r)))
	if ret == 0 {
		return geometry.Rect{}, fmt.Errorf("GetWindowRect: %w", callErr)
	}
	return geometry.Rect{
		Left:   float64(r.Left),
		Top:    float64(r.Top),
		Right:  float64(r.Right),
		Bottom: float64(r.Bottom),
	}, nil
}

// ScaleFactor returns the window DPI relative to 96.
func (n *Native) ScaleFactor() (float64, error) {
	hwnd, err := n.handle()
	if err != nil {
		return 1, err
	}
	if err := procGetDpiForWindow.Find(); err != nil {
		return 1, ErrUnsupported
	}
	dpi, _, _ := procGetDpiForWindow.Call(hwnd)
	if dpi == 0 {
		return 1, fmt.Errorf("GetDpiForWindow returned 0")
	}
	return float64(dpi) / 96, nil
}

// SetPosition moves the window without waiting for its thread to process it.
func (n *Native) SetPosition(x, y int) error {
	return n.setWindowPos(x, y, 0, 0, _SWP_NOSIZE)
}

// SetSize resizes the window without waiting for its thread to process it.
func (n *Native) SetSize(width, height int) error {
	return n.setWindowPos(0, 0, width, height, _SWP_NOMOVE)
}

func (n *Native) setWindowPos(x, y, width, height int, flags uintptr) error {
	hwnd, err := n.handle()
	if err != nil {
		return err
	}
	flags |= _SWP_NOZORDER | _SWP_NOACTIVATE | _SWP_ASYNCWINDOWPOS
	ret, _, callErr := procSetWindowPos.Call(
		hwnd,
		0,
		uintptr(int32(x)),
		uintptr(int32(y)),
		uintptr(int32(width)),
		uintptr(int32(height)),
		flags,
	)
	if ret == 0 {
		return fmt.Errorf("SetWindowPos: %w", callErr)
	}
	return nil
}

// SetInputTransparent toggles WS_EX_TRANSPARENT so mouse events pass through the window
func (n *Native) SetInputTransparent(transparent bool) error {
	hwnd, err := n.handle()
	if err != nil {
		return err
	}

	idx := _GWL_EXSTYLE
	exStyle, _, _ := procGetWindowLongW.Call(hwnd, uintptr(idx))
	cur := int32(exStyle)
	newStyle := cur | _WS_EX_LAYERED
	if transparent {
		newStyle = newStyle | _WS_EX_TRANSPARENT
	} else {
		newStyle = newStyle &^ _WS_EX_TRANSPARENT
	}
	if newStyle == cur {
		return nil
	}

	ret, _, callErr := procSetWindowLongW.Call(hwnd, uintptr(idx), uintptr(newStyle))
	if ret == 0 && callErr != windows.ERROR_SUCCESS {
		return fmt.Errorf("SetWindowLongW: %w", callErr)
	}
	return nil
}

// StartDrag enters the system move loop as if the caption had been pressed.
func (n *Native) StartDrag() error {
	hwnd, err := n.handle()
	if err != nil {
		return err
	}
	procReleaseCapture.Call()
	ret, _, callErr := procPostMessageW.Call(hwnd, _WM_NCLBUTTONDOWN, _HTCAPTION, 0)
	if ret == 0 {
		return fmt.Errorf("PostMessageW: %w", callErr)
	}
	return nil
}
