package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"floatpane/internal/engine"
	"floatpane/internal/hook"
	"floatpane/internal/logging"
	"floatpane/internal/overlay"
	"floatpane/internal/window"
)

// Emission is one engine event as printed by watch.
type Emission struct {
	Event   string `yaml:"event"   json:"event"`
	Payload any    `yaml:"payload" json:"payload"`
}

// printSink encodes emissions to the command output. Listener and poller
// emit concurrently, so writes are serialized.
type printSink struct {
	mu     sync.Mutex
	w      io.Writer
	format Format
}

func (s *printSink) Emit(name string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := encode(s.w, s.format, Emission{Event: name, Payload: payload}); err != nil {
		slog.Debug("failed to print event", "event", name, "err", err)
	}
}

// dryRun reads real geometry but only logs mutations.
type dryRun struct {
	window.Window
}

func (d dryRun) SetPosition(x, y int) error {
	slog.Info("dry-run: move", "x", x, "y", y)
	return nil
}

func (d dryRun) SetSize(w, h int) error {
	slog.Info("dry-run: resize", "width", w, "height", h)
	return nil
}

func (d dryRun) SetInputTransparent(t bool) error {
	slog.Info("dry-run: input transparency", "transparent", t)
	return nil
}

func (d dryRun) StartDrag() error {
	slog.Info("dry-run: native drag")
	return nil
}

func newWatchCommand(opts *options) *cobra.Command {
	var (
		title        string
		gesture      string
		clickThrough bool
		noDrag       bool
		dry          bool
		events       string
		duration     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run the interaction engine against a window",
		Long:  "Find a top-level window by title, install the global input hook and run the listener and poller until interrupted. Engine events are printed as they are emitted.",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadConfig()
			if err != nil {
				return err
			}
			cfg := svc.Get()

			logCfg := cfg.Log
			logCfg.File = ""
			logger, _, err := logging.New(logCfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			slog.SetDefault(logger)

			ic := cfg.Interaction
			if gesture != "" {
				ic.Gesture = gesture
			}
			ecfg, err := engine.FromSettings(ic)
			if err != nil {
				return err
			}
			if title == "" {
				title = cfg.Window.Title
			}

			native, err := window.NewNative(title)
			if err != nil {
				return fmt.Errorf("failed to open window %q: %w", title, err)
			}
			defer native.Close()

			var win window.Window = native
			if dry {
				win = dryRun{Window: native}
			}

			source, err := hook.NewSource(ecfg.Profile.HookOptions())
			if err != nil {
				slog.Warn("global input hook unavailable, watching geometry only", "err", err)
				source = nil
			}

			var sink engine.Sink = &printSink{w: opts.out, format: opts.format}
			if events == "log" {
				sink = engine.LogSink{Level: slog.LevelInfo}
			}

			queue := window.NewQueue(64)
			defer queue.Close()

			behavior := overlay.New()
			behavior.SetDragEnabled(!noDrag)
			e := engine.New(ecfg, behavior, win, queue, source, sink)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			e.Start(ctx)
			if clickThrough {
				e.SetClickThrough(true)
			}
			<-ctx.Done()
			e.Wait()

			// Leave the window accepting input.
			if clickThrough {
				e.SetClickThrough(false)
				queue.Flush()
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Window title (default: [window] title from config)")
	cmd.Flags().StringVar(&gesture, "gesture", "", "Gesture profile: auto, right-drag or alt-drag")
	cmd.Flags().BoolVar(&clickThrough, "click-through", false, "Enable click-through while watching")
	cmd.Flags().BoolVar(&noDrag, "no-drag", false, "Disable drag gestures")
	cmd.Flags().BoolVar(&dry, "dry-run", false, "Log window mutations instead of applying them")
	cmd.Flags().StringVar(&events, "events", "stdout", "Where engine events go: stdout or log")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (0 runs until interrupted)")
	return cmd
}

func newSampleCommand(opts *options) *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Print one cursor/window geometry sample",
		RunE: func(cmd *cobra.Command, args []string) error {
			if title == "" {
				svc, err := opts.loadConfig()
				if err != nil {
					return err
				}
				title = svc.Get().Window.Title
			}

			native, err := window.NewNative(title)
			if err != nil {
				return fmt.Errorf("failed to open window %q: %w", title, err)
			}
			defer native.Close()

			probe := window.NewProbe(native)
			s, ok := probe.Sample()
			if !ok {
				return fmt.Errorf("could not read geometry of %q", title)
			}
			return opts.print(engine.NewCursorState(s.Cursor, s.Window, probe.Scale()))
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Window title (default: [window] title from config)")
	return cmd
}

// ConfigResult is the output of the config command.
type ConfigResult struct {
	Path   string `yaml:"path"   json:"path"`
	Config any    `yaml:"config" json:"config"`
}

func newConfigCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.loadConfig()
			if err != nil {
				return err
			}
			return opts.print(ConfigResult{Path: svc.Path(), Config: svc.Get()})
		},
	}
}
