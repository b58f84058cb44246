package geometry

// Default controls region: a square anchored to the bottom-right corner of the
// window. Used until a caller sets explicit controls bounds.
const (
	DefaultControlsMarginRight  = 24.0
	DefaultControlsMarginBottom = 24.0
	DefaultControlsWidth        = 360.0
	DefaultControlsHeight       = 360.0
)

// ControlsRegion describes the fallback controls rectangle relative to the
// bottom-right corner of the window.
type ControlsRegion struct {
	MarginRight  float64
	MarginBottom float64
	Width        float64
	Height       float64
}

// DefaultControlsRegion returns the 360x360 region inset 24px from the
// right and bottom edges.
func DefaultControlsRegion() ControlsRegion {
	return ControlsRegion{
		MarginRight:  DefaultControlsMarginRight,
		MarginBottom: DefaultControlsMarginBottom,
		Width:        DefaultControlsWidth,
		Height:       DefaultControlsHeight,
	}
}

// Local returns the region in window-local coordinates for a window of the
// given size. Left and top are clipped to the window origin.
func (c ControlsRegion) Local(width, height float64) Rect {
	right := width - c.MarginRight
	bottom := height - c.MarginBottom
	left := right - c.Width
	top := bottom - c.Height
	if left < 0 {
		left = 0
	}
	if top < 0 {
		top = 0
	}
	return Rect{Left: left, Top: top, Right: right, Bottom: bottom}
}

// PointInRect reports whether p lies in r. All four edges are inclusive.
func PointInRect(p Point, r Rect) bool {
	return p.X >= r.Left && p.X <= r.Right && p.Y >= r.Top && p.Y <= r.Bottom
}

// IsNearWindow reports whether the screen-space point p is within margin
// pixels of window. Used for hover-fade, not for click-through.
func IsNearWindow(p Point, window Rect, margin float64) bool {
	grown := Rect{
		Left:   window.Left - margin,
		Top:    window.Top - margin,
		Right:  window.Right + margin,
		Bottom: window.Bottom + margin,
	}
	return PointInRect(p, grown)
}

// IsInControls reports whether the screen-space point p is over the
// controls region of window. A non-nil, non-empty override (window-local)
// wins over the default region.
func IsInControls(p Point, window Rect, override *Rect, region ControlsRegion) bool {
	local := window.ToLocal(p)
	if override != nil && !override.IsEmpty() {
		return PointInRect(local, *override)
	}
	return PointInRect(local, region.Local(window.Width(), window.Height()))
}
