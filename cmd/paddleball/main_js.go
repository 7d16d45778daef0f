//go:build js && wasm

// Command paddleball is the browser build of the paddleball scene. The page calls
// paddleballRun(canvas) once WebGPU is known to be available; paddleballNotifyResize and
// paddleballSetDPR forward host layout changes.
package main

import (
	"fmt"
	"sync/atomic"
	"syscall/js"

	"github.com/Carmen-Shannon/paddleball/config"
	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/engine/window"
)

// display is shared with the canvas window so host notifications that arrive before or
// during setup are not lost.
var display = window.NewDisplayState()

var started atomic.Bool

func main() {
	cfg := config.Default()
	if err := setupLogger(consoleWriter{}, cfg.Log, ""); err != nil {
		logger.Logger().Error("fatal", "err", err)
		return
	}

	registerExports(cfg)
	select {}
}

// registerExports installs the functions the host page calls on globalThis.
func registerExports(cfg config.Config) {
	global := js.Global()
	global.Set("paddleballRun", js.FuncOf(func(_ js.Value, args []js.Value) any {
		var canvas js.Value
		if len(args) > 0 {
			canvas = args[0]
		}
		if !started.CompareAndSwap(false, true) {
			logger.Logger().Warn("paddleballRun called more than once")
			return nil
		}
		// Adapter and device requests wait on promises, which cannot happen inside a JS callback.
		go run(canvas, cfg)
		return nil
	}))
	global.Set("paddleballNotifyResize", js.FuncOf(func(js.Value, []js.Value) any {
		display.NotifyResize()
		return nil
	}))
	global.Set("paddleballSetDPR", js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) > 0 && args[0].Type() == js.TypeNumber {
			display.SetDevicePixelRatio(float32(args[0].Float()))
		}
		return nil
	}))
}

func run(canvas js.Value, cfg config.Config) {
	defer func() {
		if r := recover(); r != nil {
			logger.Logger().Error("fatal", "err", fmt.Errorf("setup panicked: %v", r))
		}
	}()

	opts := append(windowOptions(cfg.Window), window.WithDisplayState(display))
	if canvas.Truthy() {
		opts = append(opts, window.WithCanvas(canvas))
	}
	w, err := window.NewWindow(opts...)
	if err != nil {
		logger.Logger().Error("fatal", "err", err)
		return
	}

	a, err := newApp(w, cfg)
	if err != nil {
		_ = w.Close()
		logger.Logger().Error("fatal", "err", err)
		return
	}
	if err := a.run(); err != nil {
		logger.Logger().Info("stopped", "err", err)
	}
}

// consoleWriter sends log lines to console.log.
type consoleWriter struct{}

func (consoleWriter) Write(p []byte) (int, error) {
	js.Global().Get("console").Call("log", string(p))
	return len(p), nil
}
