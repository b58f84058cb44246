//go:build linux

package window

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/BurntSushi/xgb/shape"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xwindow"

	"floatpane/internal/geometry"
)

// _NET_WM_MOVERESIZE source indication for a normal application.
const moveresizeSourceApplication = 1

// Native is the overlay's X11 toplevel, located by title among the windows
// the window manager lists in _NET_CLIENT_LIST.
type Native struct {
	title   string
	xu      *xgbutil.XUtil
	shapeOK bool

	mu  sync.Mutex
	win xproto.Window
}

// NewNative connects to the X server. The window itself is resolved lazily.
func NewNative(title string) (*Native, error) {
	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to X server: %w", err)
	}

	n := &Native{title: title, xu: xu}
	if err := shape.Init(xu.Conn()); err != nil {
		slog.Warn("X SHAPE extension unavailable, click-through disabled", "err", err)
	} else {
		n.shapeOK = true
	}
	return n, nil
}

// Close drops the X connection.
func (n *Native) Close() {
	n.xu.Conn().Close()
}

func (n *Native) handle() (xproto.Window, error) {
	n.mu.Lock()
	defer n.mu.Unlock()

	if n.win != 0 {
		return n.win, nil
	}

	clients, err := ewmh.ClientListGet(n.xu)
	if err != nil {
		return 0, fmt.Errorf("failed to read client list: %w", err)
	}
	for _, c := range clients {
		name, err := ewmh.WmNameGet(n.xu, c)
		if err != nil || name == "" {
			name, err = icccm.WmNameGet(n.xu, c)
		}
		if err == nil && name == n.title {
			n.win = c
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrNotFound, n.title)
}

// CursorPosition queries the pointer relative to the root window.
func (n *Native) CursorPosition() (geometry.Point, error) {
	reply, err := xproto.QueryPointer(n.xu.Conn(), n.xu.RootWin()).Reply()
	if err != nil {
		return geometry.Point{}, fmt.Errorf("QueryPointer: %w", err)
	}
	return geometry.Point{X: float64(reply.RootX), Y: float64(reply.RootY)}, nil
}

// Rect returns the client area of the window in root coordinates.
func (n *Native) Rect() (geometry.Rect, error) {
	win, err := n.handle()
	if err != nil {
		return geometry.Rect{}, err
	}
	conn := n.xu.Conn()

	geom, err := xproto.GetGeometry(conn, xproto.Drawable(win)).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("GetGeometry: %w", err)
	}
	origin, err := xproto.TranslateCoordinates(conn, win, n.xu.RootWin(), 0, 0).Reply()
	if err != nil {
		return geometry.Rect{}, fmt.Errorf("TranslateCoordinates: %w", err)
	}
	return geometry.RectFromBounds(
		float64(origin.DstX), float64(origin.DstY),
		float64(geom.Width), float64(geom.Height),
	), nil
}

// ScaleFactor is unknown on core X11; the server reports physical pixels.
func (n *Native) ScaleFactor() (float64, error) {
	return 1, ErrUnsupported
}

// SetPosition asks the window manager to move the window.
func (n *Native) SetPosition(x, y int) error {
	win, err := n.handle()
	if err != nil {
		return err
	}
	return xwindow.New(n.xu, win).WMMove(x, y)
}

// SetSize asks the window manager to resize the window.
func (n *Native) SetSize(width, height int) error {
	win, err := n.handle()
	if err != nil {
		return err
	}
	return xwindow.New(n.xu, win).WMResize(width, height)
}

// SetInputTransparent sets the window's input shape: empty when transparent,
// the default (whole window) otherwise.
func (n *Native) SetInputTransparent(transparent bool) error {
	if !n.shapeOK {
		return ErrUnsupported
	}
	win, err := n.handle()
	if err != nil {
		return err
	}
	conn := n.xu.Conn()

	if transparent {
		err = shape.RectanglesChecked(conn, shape.SoSet, shape.SkInput,
			xproto.ClipOrderingUnsorted, win, 0, 0, nil).Check()
	} else {
		err = shape.MaskChecked(conn, shape.SoSet, shape.SkInput,
			win, 0, 0, xproto.PixmapNone).Check()
	}
	if err != nil {
		return fmt.Errorf("set input shape: %w", err)
	}
	return nil
}

// StartDrag sends _NET_WM_MOVERESIZE so the window manager moves the window
// with whichever button is currently held.
func (n *Native) StartDrag() error {
	win, err := n.handle()
	if err != nil {
		return err
	}

	reply, err := xproto.QueryPointer(n.xu.Conn(), n.xu.RootWin()).Reply()
	if err != nil {
		return fmt.Errorf("QueryPointer: %w", err)
	}

	button := int(xproto.ButtonIndex1)
	if reply.Mask&xproto.KeyButMaskButton3 != 0 {
		button = int(xproto.ButtonIndex3)
	}
	return ewmh.WmMoveresizeExtra(n.xu, win, ewmh.Move,
		int(reply.RootX), int(reply.RootY), button, moveresizeSourceApplication)
}
