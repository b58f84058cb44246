package engine

import (
	"context"
	"log/slog"

	"floatpane/internal/geometry"
)

// Event names emitted to the presentation layer.
const (
	EventCursor   = "floatpane:desktop-cursor"
	EventHover    = "floatpane:desktop-hover"
	EventBehavior = "floatpane:window-behavior"
)

// Sink receives named payloads. Emission is fire-and-forget.
type Sink interface {
	Emit(name string, payload any)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(name string, payload any)

func (f SinkFunc) Emit(name string, payload any) { f(name, payload) }

// LogSink writes every emission to the default logger.
type LogSink struct {
	Level slog.Level
}

func (s LogSink) Emit(name string, payload any) {
	slog.Log(context.Background(), s.Level, "emit", "event", name, "payload", payload)
}

type nopSink struct{}

func (nopSink) Emit(string, any) {}

// CursorState is the payload of EventCursor.
type CursorState struct {
	CursorX      float64 `json:"cursorX" yaml:"cursorX"`
	CursorY      float64 `json:"cursorY" yaml:"cursorY"`
	WindowLeft   int     `json:"windowLeft" yaml:"windowLeft"`
	WindowTop    int     `json:"windowTop" yaml:"windowTop"`
	WindowRight  int     `json:"windowRight" yaml:"windowRight"`
	WindowBottom int     `json:"windowBottom" yaml:"windowBottom"`
	ScaleFactor  float64 `json:"scaleFactor" yaml:"scaleFactor"`
	InsideWindow bool    `json:"insideWindow" yaml:"insideWindow"`
}

// NewCursorState builds the payload for a cursor/window sample.
func NewCursorState(cursor geometry.Point, window geometry.Rect, scale float64) CursorState {
	return CursorState{
		CursorX:      cursor.X,
		CursorY:      cursor.Y,
		WindowLeft:   int(window.Left),
		WindowTop:    int(window.Top),
		WindowRight:  int(window.Right),
		WindowBottom: int(window.Bottom),
		ScaleFactor:  scale,
		InsideWindow: geometry.PointInRect(cursor, window),
	}
}

// HoverFade is the payload of EventHover.
type HoverFade struct {
	Faded bool `json:"faded" yaml:"faded"`
}
