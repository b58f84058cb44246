package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"
	"github.com/wailsapp/wails/v2/pkg/runtime"

	"floatpane/internal/config"
	"floatpane/internal/engine"
	"floatpane/internal/geometry"
	"floatpane/internal/hook"
	"floatpane/internal/logging"
	"floatpane/internal/overlay"
	"floatpane/internal/window"
)

//go:embed all:frontend/dist
var assets embed.FS

// App struct
type App struct {
	ctx      context.Context
	cancel   context.CancelFunc
	config   *config.Service
	behavior *overlay.Behavior
	engine   *engine.Engine
	queue    *window.Queue
	native   *window.Native
	closeLog func() error
}

// NewApp creates a new App application struct
func NewApp(cfg *config.Service) *App {
	return &App{
		config:   cfg,
		behavior: overlay.New(),
	}
}

// OnStartup is called when the app starts up
func (a *App) OnStartup(ctx context.Context) {
	a.ctx = ctx
	cfg := a.config.Get()

	closeLog, err := logging.Init(cfg.Log)
	if err != nil {
		fmt.Printf("Failed to initialize logging: %v\n", err)
	} else {
		a.closeLog = closeLog
	}

	placeWindow(ctx, cfg.Window)

	engineCfg, err := engine.FromSettings(cfg.Interaction)
	if err != nil {
		slog.Warn("invalid interaction settings, using defaults", "err", err)
		engineCfg = engine.DefaultConfig()
	}

	win := a.openWindow(ctx, cfg.Window.Title)

	source, err := hook.NewSource(engineCfg.Profile.HookOptions())
	if err != nil {
		slog.Error("global input hook unavailable", "err", err)
		source = nil
	}

	a.queue = window.NewQueue(64)
	a.engine = engine.New(engineCfg, a.behavior, win, a.queue, source, wailsSink{ctx: ctx})

	loopCtx, cancel := context.WithCancel(ctx)
	a.cancel = cancel
	a.engine.Start(loopCtx)
}

// OnShutdown is called when the app is shutting down
func (a *App) OnShutdown(ctx context.Context) {
	if a.cancel != nil {
		a.cancel()
	}
	if a.engine != nil {
		a.engine.Wait()
		a.engine.Close()
	}
	if a.queue != nil {
		a.queue.Close()
	}
	if a.native != nil {
		a.native.Close()
	}
	if a.config != nil {
		if err := a.config.Save(); err != nil {
			slog.Warn("failed to save config", "err", err)
		}
	}
	if a.closeLog != nil {
		a.closeLog()
	}
}

// openWindow prefers the native adapter, which can read the global cursor and
// change input transparency. The Wails runtime adapter only covers geometry.
func (a *App) openWindow(ctx context.Context, title string) window.Window {
	native, err := window.NewNative(title)
	if err == nil {
		a.native = native
		return native
	}
	if errors.Is(err, window.ErrUnsupported) {
		slog.Info("no native window backend on this platform, click-through disabled")
	} else {
		slog.Warn("failed to open native window backend", "err", err)
	}
	return window.NewWails(ctx)
}

// placeWindow sizes the window and puts it in the bottom-right corner of the
// primary screen.
func placeWindow(ctx context.Context, wc config.WindowConfig) {
	w := window.NewWails(ctx)
	if err := w.SetSize(wc.Width, wc.Height); err != nil {
		slog.Warn("failed to size window", "err", err)
	}

	screens, err := runtime.ScreenGetAll(ctx)
	if err != nil || len(screens) == 0 {
		slog.Debug("screen info unavailable, keeping default position", "err", err)
		return
	}
	screen := screens[0]
	for _, s := range screens {
		if s.IsPrimary {
			screen = s
			break
		}
	}

	x := max(screen.Size.Width-wc.Width-wc.MarginRight, 0)
	y := max(screen.Size.Height-wc.Height-wc.MarginBottom, 0)
	if err := w.SetPosition(x, y); err != nil {
		slog.Warn("failed to place window", "err", err)
	}
}

// wailsSink forwards engine events to the frontend.
type wailsSink struct {
	ctx context.Context
}

func (s wailsSink) Emit(name string, payload any) {
	runtime.EventsEmit(s.ctx, name, payload)
}

// GetWindowBehavior returns the current click-through and drag flags
func (a *App) GetWindowBehavior() overlay.Snapshot {
	return a.behavior.Snapshot()
}

// SetClickThrough enables or disables click-through and applies it now
func (a *App) SetClickThrough(enabled bool) overlay.Snapshot {
	if a.engine == nil {
		a.behavior.SetClickThrough(enabled)
		return a.behavior.Snapshot()
	}
	return a.engine.SetClickThrough(enabled)
}

// ToggleClickThrough flips click-through
func (a *App) ToggleClickThrough() overlay.Snapshot {
	if a.engine == nil {
		a.behavior.ToggleClickThrough()
		return a.behavior.Snapshot()
	}
	return a.engine.ToggleClickThrough()
}

// SetDragEnabled enables or disables drag gestures
func (a *App) SetDragEnabled(enabled bool) overlay.Snapshot {
	if a.engine == nil {
		a.behavior.SetDragEnabled(enabled)
		return a.behavior.Snapshot()
	}
	return a.engine.SetDragEnabled(enabled)
}

// ToggleDragMode flips drag mode
func (a *App) ToggleDragMode() overlay.Snapshot {
	if a.engine == nil {
		a.behavior.ToggleDragMode()
		return a.behavior.Snapshot()
	}
	return a.engine.ToggleDragMode()
}

// SetControlsBounds sets the window-local rectangle that stays clickable
// while click-through is on. Pass null to restore the default region.
func (a *App) SetControlsBounds(bounds *geometry.Rect) overlay.Snapshot {
	if a.engine == nil {
		a.behavior.SetControlsBounds(bounds)
		return a.behavior.Snapshot()
	}
	return a.engine.SetControlsBounds(bounds)
}

func main() {
	configSvc, err := config.New()
	if err != nil {
		fmt.Printf("Failed to initialize config: %v\n", err)
		os.Exit(1)
	}
	cfg := configSvc.Get()

	// Create an instance of the app structure
	app := NewApp(configSvc)

	appOptions := &options.App{
		Title:  cfg.Window.Title,
		Width:  cfg.Window.Width,
		Height: cfg.Window.Height,
		AssetServer: &assetserver.Options{
			Assets: assets,
		},
		Frameless:        true,
		AlwaysOnTop:      cfg.Window.AlwaysOnTop,
		DisableResize:    true,
		BackgroundColour: &options.RGBA{R: 0, G: 0, B: 0, A: 0}, // Transparent
		OnStartup:        app.OnStartup,
		OnShutdown:       app.OnShutdown,
		Bind:             []interface{}{app},
	}
	platformOptions(appOptions)

	if err := wails.Run(appOptions); err != nil {
		fmt.Printf("Error starting application: %v\n", err)
		os.Exit(1)
	}
}
