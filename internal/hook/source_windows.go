//go:build windows

package hook

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"
	"unsafe"

	"golang.org/x/sys/windows"

	"floatpane/internal/geometry"
)

const (
	_WH_KEYBOARD_LL = 13
	_WH_MOUSE_LL    = 14
	_HC_ACTION      = 0

	_WM_QUIT        = 0x0012
	_WM_KEYDOWN     = 0x0100
	_WM_KEYUP       = 0x0101
	_WM_SYSKEYDOWN  = 0x0104
	_WM_SYSKEYUP    = 0x0105
	_WM_MOUSEMOVE   = 0x0200
	_WM_LBUTTONDOWN = 0x0201
	_WM_LBUTTONUP   = 0x0202
	_WM_RBUTTONDOWN = 0x0204
	_WM_RBUTTONUP   = 0x0205
	_WM_MBUTTONDOWN = 0x0207
	_WM_MBUTTONUP   = 0x0208

	_VK_MENU  = 0x12
	_VK_LMENU = 0xA4
	_VK_RMENU = 0xA5
)

var (
	user32                  = windows.NewLazySystemDLL("user32.dll")
	procSetWindowsHookExW   = user32.NewProc("SetWindowsHookExW")
	procUnhookWindowsHookEx = user32.NewProc("UnhookWindowsHookEx")
	procCallNextHookEx      = user32.NewProc("CallNextHookEx")
	procGetMessageW         = user32.NewProc("GetMessageW")
	procPostThreadMessageW  = user32.NewProc("PostThreadMessageW")
)

type msllHookStruct struct {
	X, Y        int32
	MouseData   uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type kbdllHookStruct struct {
	VkCode      uint32
	ScanCode    uint32
	Flags       uint32
	Time        uint32
	DwExtraInfo uintptr
}

type msg struct {
	Hwnd    uintptr
	Message uint32
	WParam  uintptr
	LParam  uintptr
	Time    uint32
	X, Y    int32
}

// Low-level hook callbacks cannot carry state, so the running filter lives
// in a package variable. Only one win32 source may run at a time.
var (
	activeFilter     atomic.Pointer[Filter]
	mouseCallback    = windows.NewCallback(lowLevelMouseProc)
	keyboardCallback = windows.NewCallback(lowLevelKeyboardProc)
)

type win32Source struct{}

// NewSource returns the WH_MOUSE_LL / WH_KEYBOARD_LL hook source.
// Low-level hooks see every button, so Options are not needed.
func NewSource(Options) (Source, error) {
	return &win32Source{}, nil
}

// Run installs both low-level hooks on a locked OS thread and pumps its
// message queue, which is where Windows invokes the callbacks.
func (s *win32Source) Run(ctx context.Context, filter Filter) error {
	if !activeFilter.CompareAndSwap(nil, &filter) {
		return ErrBusy
	}
	defer activeFilter.Store(nil)

	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var module windows.Handle
	if err := windows.GetModuleHandleEx(0, nil, &module); err != nil {
		return fmt.Errorf("%w: GetModuleHandleEx: %v", ErrSubscribe, err)
	}

	mouseHook, _, err := procSetWindowsHookExW.Call(_WH_MOUSE_LL, mouseCallback, uintptr(module), 0)
	if mouseHook == 0 {
		return fmt.Errorf("%w: SetWindowsHookExW(WH_MOUSE_LL): %v", ErrSubscribe, err)
	}
	defer procUnhookWindowsHookEx.Call(mouseHook)

	keyboardHook, _, err := procSetWindowsHookExW.Call(_WH_KEYBOARD_LL, keyboardCallback, uintptr(module), 0)
	if keyboardHook == 0 {
		return fmt.Errorf("%w: SetWindowsHookExW(WH_KEYBOARD_LL): %v", ErrSubscribe, err)
	}
	defer procUnhookWindowsHookEx.Call(keyboardHook)

	threadID := windows.GetCurrentThreadId()
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			procPostThreadMessageW.Call(uintptr(threadID), _WM_QUIT, 0, 0)
		case <-done:
		}
	}()

	var m msg
	for {
		ret, _, err := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0)
		switch int32(ret) {
		case -1:
			return fmt.Errorf("GetMessageW: %w", err)
		case 0:
			return ctx.Err()
		}
	}
}

func lowLevelMouseProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == _HC_ACTION {
		if f := activeFilter.Load(); f != nil {
			info := (*msllHookStruct)(unsafe.Pointer(lParam))
			if ev, ok := mouseEvent(uint32(wParam), info); ok && (*f)(ev) == Consume {
				return 1
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}

func lowLevelKeyboardProc(nCode, wParam, lParam uintptr) uintptr {
	if int32(nCode) == _HC_ACTION {
		if f := activeFilter.Load(); f != nil {
			info := (*kbdllHookStruct)(unsafe.Pointer(lParam))
			if ev, ok := keyEvent(uint32(wParam), info); ok && (*f)(ev) == Consume {
				return 1
			}
		}
	}
	ret, _, _ := procCallNextHookEx.Call(0, nCode, wParam, lParam)
	return ret
}

func mouseEvent(message uint32, info *msllHookStruct) (Event, bool) {
	ev := Event{
		Position:    geometry.Point{X: float64(info.X), Y: float64(info.Y)},
		HasPosition: true,
	}
	switch message {
	case _WM_MOUSEMOVE:
		ev.Kind = MouseMove
	case _WM_LBUTTONDOWN:
		ev.Kind, ev.Button = ButtonPress, ButtonLeft
	case _WM_LBUTTONUP:
		ev.Kind, ev.Button = ButtonRelease, ButtonLeft
	case _WM_RBUTTONDOWN:
		ev.Kind, ev.Button = ButtonPress, ButtonRight
	case _WM_RBUTTONUP:
		ev.Kind, ev.Button = ButtonRelease, ButtonRight
	case _WM_MBUTTONDOWN:
		ev.Kind, ev.Button = ButtonPress, ButtonMiddle
	case _WM_MBUTTONUP:
		ev.Kind, ev.Button = ButtonRelease, ButtonMiddle
	default:
		return Event{}, false
	}
	return ev, true
}

func keyEvent(message uint32, info *kbdllHookStruct) (Event, bool) {
	var ev Event
	switch message {
	case _WM_KEYDOWN, _WM_SYSKEYDOWN:
		ev.Kind = KeyPress
	case _WM_KEYUP, _WM_SYSKEYUP:
		ev.Kind = KeyRelease
	default:
		return Event{}, false
	}
	switch info.VkCode {
	case _VK_MENU, _VK_LMENU:
		ev.Key = KeyAlt
	case _VK_RMENU:
		ev.Key = KeyAltGr
	default:
		ev.Key = KeyOther
	}
	return ev, true
}
