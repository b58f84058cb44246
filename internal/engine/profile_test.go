package engine

import (
	"testing"
	"time"

	"floatpane/internal/config"
	"floatpane/internal/hook"
)

func TestProfileFor(t *testing.T) {
	tests := []struct {
		gesture string
		want    string
	}{
		{"right-drag", "right-drag"},
		{"ALT-DRAG", "alt-drag"},
		{" alt-drag ", "alt-drag"},
		{"auto", DefaultProfile().Name},
		{"", DefaultProfile().Name},
	}
	for _, tt := range tests {
		p, err := ProfileFor(tt.gesture)
		if err != nil {
			t.Fatalf("ProfileFor(%q) error: %v", tt.gesture, err)
		}
		if p.Name != tt.want {
			t.Errorf("ProfileFor(%q) = %s; want %s", tt.gesture, p.Name, tt.want)
		}
	}

	if _, err := ProfileFor("middle-drag"); err == nil {
		t.Error("expected error for unknown gesture")
	}
}

func TestDefaultProfilePerPlatform(t *testing.T) {
	if p := defaultProfile("windows"); p.Name != ProfileAltDrag.Name {
		t.Errorf("windows default = %s; want alt-drag", p.Name)
	}
	if p := defaultProfile("linux"); p.Name != ProfileRightDrag.Name {
		t.Errorf("linux default = %s; want right-drag", p.Name)
	}
}

func TestProfileHookOptions(t *testing.T) {
	opts := ProfileAltDrag.HookOptions()
	if len(opts.Buttons) != 1 || opts.Buttons[0] != hook.ButtonLeft {
		t.Errorf("alt-drag buttons = %v; want [left]", opts.Buttons)
	}
	if ProfileRightDrag.Drag != DragNative || ProfileAltDrag.Drag != DragManual {
		t.Error("unexpected drag modes")
	}
	// A manual drag must keep the release from reaching other clients.
	if !opts.KeepGrab {
		t.Error("alt-drag should keep the pointer grab")
	}
	if ProfileRightDrag.HookOptions().KeepGrab {
		t.Error("right-drag hands the pointer to the window manager")
	}
}

func TestFromSettings(t *testing.T) {
	cfg, err := FromSettings(config.InteractionConfig{
		Gesture:        "alt-drag",
		PollIntervalMs: 20,
		HoverMargin:    4,
		Controls:       config.ControlsConfig{MarginRight: 1, MarginBottom: 2, Width: 3, Height: 4},
	})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Profile.Name != "alt-drag" || cfg.PollInterval != 20*time.Millisecond || cfg.HoverMargin != 4 {
		t.Errorf("FromSettings = %+v", cfg)
	}
	if cfg.Controls.Height != 4 {
		t.Errorf("controls = %+v", cfg.Controls)
	}

	if _, err := FromSettings(config.InteractionConfig{Gesture: "bogus"}); err == nil {
		t.Error("expected error for unknown gesture")
	}
}
