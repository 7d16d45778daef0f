//go:build !js

// Command paddleball opens a window and draws the paddleball scene with WebGPU.
//
// With -snapshot it renders the scene on the CPU to a PNG file instead and exits.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/Carmen-Shannon/paddleball/config"
	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/engine/window"
	"github.com/Carmen-Shannon/paddleball/paddleball"
	"github.com/Carmen-Shannon/paddleball/paddleball/snapshot"
)

func init() {
	// GLFW and the wgpu surface must stay on the main thread.
	runtime.LockOSThread()
}

type options struct {
	configPath        string
	logLevel          string
	snapshotPath      string
	snapshotReference bool
	dumpConfig        bool
}

func parseFlags(args []string) (options, error) {
	var opts options
	fs := flag.NewFlagSet("paddleball", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "YAML config file; unset keys keep their defaults")
	fs.StringVar(&opts.logLevel, "log-level", "", "log level override: debug, info, warn or error")
	fs.StringVar(&opts.snapshotPath, "snapshot", "", "render one frame on the CPU to this PNG file and exit")
	fs.BoolVar(&opts.snapshotReference, "snapshot-reference", false, "shade the snapshot per pixel like the fragment shader")
	fs.BoolVar(&opts.dumpConfig, "dump-config", false, "print the effective config as YAML and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: %s [flags]\n\nFlags:\n", fs.Name())
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func loadConfig(path string) (config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if err := run(opts); err != nil {
		logger.Logger().Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if err := setupLogger(os.Stderr, cfg.Log, opts.logLevel); err != nil {
		return err
	}

	if opts.dumpConfig {
		return config.Encode(os.Stdout, cfg)
	}

	if opts.snapshotPath != "" {
		u := paddleball.UniformsFromConfig(cfg.Scene, paddleball.AspectRatio(cfg.Window.Width, cfg.Window.Height))
		colors := paddleball.DefaultColors.WithClear(cfg.Renderer.ClearColor)
		return snapshot.WritePNG(opts.snapshotPath, u, colors, cfg.Window.Width, cfg.Window.Height, opts.snapshotReference)
	}

	w, err := window.NewWindow(windowOptions(cfg.Window)...)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}

	a, err := newApp(w, cfg)
	if err != nil {
		_ = w.Close()
		return err
	}
	return a.run()
}
