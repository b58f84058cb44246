package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"floatpane/internal/engine"
	"floatpane/internal/geometry"
)

// HitResult is the output of the hit command.
type HitResult struct {
	Point        geometry.Point `yaml:"point"         json:"point"`
	Local        geometry.Point `yaml:"local"         json:"local"`
	Window       geometry.Rect  `yaml:"window"        json:"window"`
	Controls     geometry.Rect  `yaml:"controls"      json:"controls"`
	Explicit     bool           `yaml:"explicit"      json:"explicit"`
	Inside       bool           `yaml:"inside"        json:"inside"`
	Near         bool           `yaml:"near"          json:"near"`
	InControls   bool           `yaml:"inControls"    json:"inControls"`
	ClickThrough bool           `yaml:"clickThrough"  json:"clickThrough"`
	Transparent  bool           `yaml:"transparent"   json:"transparent"`
}

func newHitCommand(opts *options) *cobra.Command {
	var (
		windowFlag   string
		pointFlag    string
		controlsFlag string
		margin       float64
		clickThrough bool
	)

	cmd := &cobra.Command{
		Use:   "hit",
		Short: "Classify a screen point against a window rect",
		Long:  "Evaluate the hit-test rules offline: inside window, near window (hover-fade), inside the controls region, and the resulting input transparency.",
		Example: `  floatprobe hit --window 100,100,500,400 --point 450,360 --click-through
  floatprobe hit --window 0,0,640,720 --point 30,30 --controls 10,10,60,40`,
		RunE: func(cmd *cobra.Command, args []string) error {
			win, err := geometry.ParseRect(windowFlag)
			if err != nil {
				return fmt.Errorf("--window: %w", err)
			}
			p, err := geometry.ParsePoint(pointFlag)
			if err != nil {
				return fmt.Errorf("--point: %w", err)
			}
			var override *geometry.Rect
			if controlsFlag != "" {
				r, err := geometry.ParseRect(controlsFlag)
				if err != nil {
					return fmt.Errorf("--controls: %w", err)
				}
				override = &r
			}

			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			region := cfg.Get().Interaction.Controls.Region()

			return opts.print(evaluateHit(p, win, override, region, margin, clickThrough))
		},
	}

	cmd.Flags().StringVar(&windowFlag, "window", "", "Window rect in screen space: left,top,right,bottom")
	cmd.Flags().StringVar(&pointFlag, "point", "", "Pointer position in screen space: x,y")
	cmd.Flags().StringVar(&controlsFlag, "controls", "", "Explicit window-local controls rect: left,top,right,bottom")
	cmd.Flags().Float64Var(&margin, "margin", 0, "Hover-fade margin in pixels")
	cmd.Flags().BoolVar(&clickThrough, "click-through", false, "Evaluate with click-through enabled")
	cmd.MarkFlagRequired("window")
	cmd.MarkFlagRequired("point")
	return cmd
}

func evaluateHit(p geometry.Point, win geometry.Rect, override *geometry.Rect, region geometry.ControlsRegion, margin float64, clickThrough bool) HitResult {
	res := HitResult{
		Point:        p,
		Local:        win.ToLocal(p),
		Window:       win,
		Controls:     region.Local(win.Width(), win.Height()),
		Inside:       geometry.PointInRect(p, win),
		Near:         geometry.IsNearWindow(p, win, margin),
		InControls:   geometry.IsInControls(p, win, override, region),
		ClickThrough: clickThrough,
	}
	if override != nil && !override.IsEmpty() {
		res.Controls = *override
		res.Explicit = true
	}
	res.Transparent = engine.Transparent(clickThrough, p, win, override, region)
	return res
}
