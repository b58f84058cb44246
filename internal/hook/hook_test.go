package hook

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestKindAndButtonStrings(t *testing.T) {
	if got := ButtonPress.String(); got != "button-press" {
		t.Errorf("ButtonPress.String() = %q; want %q", got, "button-press")
	}
	if got := Kind(99).String(); got != "unknown" {
		t.Errorf("Kind(99).String() = %q; want %q", got, "unknown")
	}
	if got := ButtonRight.String(); got != "right" {
		t.Errorf("ButtonRight.String() = %q; want %q", got, "right")
	}
	if !KeyAltGr.IsAlt() || KeyOther.IsAlt() {
		t.Error("IsAlt misclassifies keys")
	}
}

func TestChannelSource_RecordsVerdicts(t *testing.T) {
	events := make(chan Event, 3)
	events <- Event{Kind: ButtonPress, Button: ButtonRight}
	events <- Event{Kind: MouseMove}
	events <- Event{Kind: ButtonRelease, Button: ButtonRight}
	close(events)

	src := NewChannelSource(events)
	err := src.Run(context.Background(), func(ev Event) Verdict {
		if ev.Button == ButtonRight {
			return Consume
		}
		return Forward
	})
	if err != nil {
		t.Fatalf("Run() = %v; want nil", err)
	}

	got := src.Verdicts()
	want := []Verdict{Consume, Forward, Consume}
	if len(got) != len(want) {
		t.Fatalf("verdicts = %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("verdict[%d] = %v; want %v", i, got[i], want[i])
		}
	}
}

func TestChannelSource_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	src := NewChannelSource(make(chan Event))

	done := make(chan error, 1)
	go func() {
		done <- src.Run(ctx, func(Event) Verdict { return Forward })
	}()
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run() = %v; want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
