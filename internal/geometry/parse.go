package geometry

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseRect parses "left,top,right,bottom".
func ParseRect(s string) (Rect, error) {
	v, err := parseFloats(s, 4)
	if err != nil {
		return Rect{}, fmt.Errorf("invalid rect %q: %w", s, err)
	}
	r := Rect{Left: v[0], Top: v[1], Right: v[2], Bottom: v[3]}
	if r.Left > r.Right || r.Top > r.Bottom {
		return Rect{}, fmt.Errorf("invalid rect %q: edges are inverted", s)
	}
	return r, nil
}

// ParsePoint parses "x,y".
func ParsePoint(s string) (Point, error) {
	v, err := parseFloats(s, 2)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: v[0], Y: v[1]}, nil
}

func parseFloats(s string, n int) ([]float64, error) {
	parts := strings.Split(s, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("expected %d comma-separated values, got %d", n, len(parts))
	}
	out := make([]float64, n)
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out[i] = f
	}
	return out, nil
}
