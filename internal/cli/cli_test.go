package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"floatpane/internal/geometry"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCommand(&out)
	args = append(args, "--config", filepath.Join(t.TempDir(), "config.toml"))
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootCommand_HasSubcommands(t *testing.T) {
	root := NewRootCommand(&bytes.Buffer{})
	found := make(map[string]bool)
	for _, c := range root.Commands() {
		found[c.Name()] = true
	}
	for _, name := range []string{"hit", "sample", "watch", "config"} {
		if !found[name] {
			t.Errorf("expected subcommand %q not found", name)
		}
	}
}

func TestHit_JSON(t *testing.T) {
	out, err := run(t, "hit", "--format", "json",
		"--window", "100,100,500,400", "--point", "450,360", "--click-through")
	if err != nil {
		t.Fatalf("hit failed: %v", err)
	}

	var res HitResult
	if err := json.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out)
	}
	if !res.Inside || !res.InControls || res.Transparent {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Local != (geometry.Point{X: 350, Y: 260}) {
		t.Errorf("local = %+v; want (350,260)", res.Local)
	}
}

func TestHit_YAMLWithExplicitControls(t *testing.T) {
	out, err := run(t, "hit",
		"--window", "0,0,640,720", "--point", "30,30", "--controls", "10,10,60,40", "--click-through")
	if err != nil {
		t.Fatalf("hit failed: %v", err)
	}

	var res HitResult
	if err := yaml.Unmarshal([]byte(out), &res); err != nil {
		t.Fatalf("output is not valid YAML: %v\n%s", err, out)
	}
	if !res.Explicit || !res.InControls || res.Transparent {
		t.Errorf("unexpected result: %+v", res)
	}
}

func TestHit_BadInput(t *testing.T) {
	if _, err := run(t, "hit", "--window", "1,2,3", "--point", "1,1"); err == nil {
		t.Error("expected error for malformed --window")
	}
	if _, err := run(t, "hit", "--window", "0,0,10,10"); err == nil {
		t.Error("expected error for missing --point")
	}
	if _, err := run(t, "hit", "--format", "xml", "--window", "0,0,10,10", "--point", "1,1"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestEvaluateHit_Transparency(t *testing.T) {
	win := geometry.Rect{Left: 100, Top: 100, Right: 500, Bottom: 400}
	region := geometry.DefaultControlsRegion()

	res := evaluateHit(geometry.Point{X: 110, Y: 390}, win, nil, region, 0, true)
	if !res.Inside || res.InControls || !res.Transparent {
		t.Errorf("corner point: %+v", res)
	}

	res = evaluateHit(geometry.Point{X: 110, Y: 390}, win, nil, region, 0, false)
	if res.Transparent {
		t.Error("opaque mode must never be transparent")
	}

	res = evaluateHit(geometry.Point{X: 95, Y: 95}, win, nil, region, 10, true)
	if res.Inside || !res.Near {
		t.Errorf("margin point: %+v", res)
	}
}

func TestConfigCommand(t *testing.T) {
	out, err := run(t, "config")
	if err != nil {
		t.Fatalf("config failed: %v", err)
	}
	if !strings.Contains(out, "config.toml") || !strings.Contains(out, "gesture: auto") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPrintSink_SerializesEmissions(t *testing.T) {
	var buf bytes.Buffer
	sink := &printSink{w: &buf, format: FormatJSON}
	sink.Emit("floatpane:desktop-hover", map[string]bool{"faded": true})

	var got Emission
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatal(err)
	}
	if got.Event != "floatpane:desktop-hover" {
		t.Errorf("event = %q", got.Event)
	}
}
