package main

import (
	"fmt"
	"io"

	"github.com/Carmen-Shannon/paddleball/config"
	"github.com/Carmen-Shannon/paddleball/engine"
	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/engine/renderer"
	"github.com/Carmen-Shannon/paddleball/engine/window"
	"github.com/Carmen-Shannon/paddleball/paddleball"
)

// app is everything built during setup, released in reverse order.
type app struct {
	renderer renderer.Renderer
	state    paddleball.RenderState
	engine   engine.Engine
}

// setupLogger installs the process logger described by cfg.Log. levelOverride, when set, wins
// over the configured level.
func setupLogger(out io.Writer, cfg config.LogConfig, levelOverride string) error {
	name := cfg.Level
	if levelOverride != "" {
		name = levelOverride
	}
	level, err := logger.ParseLevel(name)
	if err != nil {
		return err
	}
	logger.SetLogger(logger.New(out, level, cfg.Format))
	return nil
}

func windowOptions(cfg config.WindowConfig) []window.WindowBuilderOption {
	return []window.WindowBuilderOption{
		window.WithTitle(cfg.Title),
		window.WithWidth(cfg.Width),
		window.WithHeight(cfg.Height),
		window.WithMinWidth(cfg.MinWidth),
		window.WithMinHeight(cfg.MinHeight),
		window.WithMaxWidth(cfg.MaxWidth),
		window.WithMaxHeight(cfg.MaxHeight),
		window.WithAspect(cfg.Aspect()),
		window.WithResizeThrottle(cfg.ResizeThrottle),
	}
}

func rendererOptions(cfg config.RendererConfig) []renderer.RendererBuilderOption {
	return []renderer.RendererBuilderOption{
		renderer.WithPresentMode(renderer.ParsePresentMode(cfg.PresentMode)),
		renderer.WithMSAA(renderer.MSAASampleCount(cfg.MSAA)),
		renderer.WithForceFallbackAdapter(cfg.ForceFallbackAdapter),
		renderer.WithPowerPreference(renderer.ParsePowerPreference(cfg.PowerPreference)),
		renderer.WithClearColor(cfg.ClearColor),
	}
}

// newApp acquires the GPU for w and builds the scene and the engine that drives it.
func newApp(w window.Window, cfg config.Config) (*app, error) {
	r, err := renderer.NewRenderer(w, rendererOptions(cfg.Renderer)...)
	if err != nil {
		return nil, fmt.Errorf("create renderer: %w", err)
	}

	state, err := paddleball.NewRenderState(r, w,
		paddleball.WithScene(cfg.Scene),
		paddleball.WithColors(paddleball.DefaultColors.WithClear(cfg.Renderer.ClearColor)),
	)
	if err != nil {
		r.Release()
		return nil, fmt.Errorf("create scene: %w", err)
	}

	eng := engine.NewEngine(
		engine.WithWindow(w),
		engine.WithFrame(state.Frame),
		engine.WithProfiling(cfg.Profiling),
	)

	logger.Logger().Info("setup complete",
		"format", r.SurfaceFormat(),
		"present_mode", cfg.Renderer.PresentMode,
		"msaa", cfg.Renderer.MSAA,
	)
	return &app{renderer: r, state: state, engine: eng}, nil
}

func (a *app) run() error {
	defer a.release()
	return a.engine.Run()
}

func (a *app) release() {
	a.state.Release()
	a.renderer.Release()
}
