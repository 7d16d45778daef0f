//go:build js && wasm

package window

import (
	"errors"
	"fmt"
	"syscall/js"
	"time"

	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/cogentcore/webgpu/wgpu"
)

// canvasWindow holds the browser-specific window state: the canvas being drawn to,
// the element it is letterboxed inside, and the registered JS callbacks.
type canvasWindow struct {
	parent    *engineWindow
	canvas    js.Value
	container js.Value
	running   bool
	done      chan struct{}

	throttle      *Throttle
	resizeQueued  bool
	pendingResize bool

	frameFunc    js.Func
	resizeFunc   js.Func
	observer     js.Value
	hasObserver  bool
	lastFrameReq js.Value
}

// WithCanvas selects the HTMLCanvasElement the window draws to. Without it the first
// canvas in the document is used. The canvas' parent element is the letterbox container.
//
// Parameters:
//   - canvas: the HTMLCanvasElement
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithCanvas(canvas js.Value) WindowBuilderOption {
	return func(w *engineWindow) {
		w.internalWindow = &canvasWindow{canvas: canvas}
	}
}

// newPlatformWindow binds the canvas, sizes it to the container and starts listening for
// window resizes and container size changes.
func newPlatformWindow(w *engineWindow) error {
	cw, _ := w.internalWindow.(*canvasWindow)
	if cw == nil {
		cw = &canvasWindow{}
	}
	if !cw.canvas.Truthy() {
		cw.canvas = js.Global().Get("document").Call("querySelector", "canvas")
	}
	if !cw.canvas.Truthy() {
		return errors.New("no canvas element to draw to")
	}
	cw.parent = w
	cw.container = cw.canvas.Get("parentElement")
	cw.running = true
	cw.done = make(chan struct{})
	cw.throttle = NewThrottle(w.resizeThrottle)
	w.internalWindow = cw

	if w.title != "" {
		js.Global().Get("document").Set("title", w.title)
	}

	if cw.container.Truthy() {
		style := cw.container.Get("style")
		style.Set("display", "flex")
		style.Set("alignItems", "center")
		style.Set("justifyContent", "center")

		cw.resizeFunc = js.FuncOf(func(js.Value, []js.Value) any {
			cw.queueResize()
			return nil
		})
		js.Global().Call("addEventListener", "resize", cw.resizeFunc)
		if ro := js.Global().Get("ResizeObserver"); ro.Truthy() {
			cw.observer = ro.New(cw.resizeFunc)
			cw.observer.Call("observe", cw.container)
			cw.hasObserver = true
		}
		// Before the first frame the backing size is applied immediately so the renderer
		// configures the surface with the right dimensions.
		cw.applyResize(true)
	}

	w.width = canvasDimension(cw.canvas.Get("width"))
	w.height = canvasDimension(cw.canvas.Get("height"))
	w.display.SetDevicePixelRatio(float32(devicePixelRatio()))

	logger.Logger().Debug("canvas window bound",
		"width", w.width,
		"height", w.height,
		"dpr", w.display.DevicePixelRatio(),
	)
	return nil
}

// queueResize defers the resize to the next animation frame so bursts of resize events
// collapse into one surface reconfiguration.
func (cw *canvasWindow) queueResize() {
	cw.pendingResize = true
	if cw.resizeQueued {
		return
	}
	cw.resizeQueued = true
	var f js.Func
	f = js.FuncOf(func(js.Value, []js.Value) any {
		f.Release()
		cw.resizeQueued = false
		if !cw.running || !cw.pendingResize {
			return nil
		}
		if !cw.throttle.Allow(time.Now()) {
			cw.queueResize()
			return nil
		}
		cw.applyResize(false)
		return nil
	})
	js.Global().Call("requestAnimationFrame", f)
}

// applyResize letterboxes the canvas inside its container and updates the backing size.
// The window is notified only when the backing size actually changes.
func (cw *canvasWindow) applyResize(initial bool) {
	cw.pendingResize = false
	w := cw.parent
	dpr := devicePixelRatio()
	rect := cw.container.Call("getBoundingClientRect")
	fit := Letterbox(rect.Get("width").Float(), rect.Get("height").Float(), w.aspect, dpr)

	style := cw.canvas.Get("style")
	style.Set("width", fmt.Sprintf("%gpx", fit.CSSWidth))
	style.Set("height", fmt.Sprintf("%gpx", fit.CSSHeight))

	if canvasDimension(cw.canvas.Get("width")) == fit.Width && canvasDimension(cw.canvas.Get("height")) == fit.Height {
		return
	}
	cw.canvas.Set("width", fit.Width)
	cw.canvas.Set("height", fit.Height)
	if initial {
		return
	}
	w.display.SetDevicePixelRatio(float32(dpr))
	w.setSize(fit.Width, fit.Height)
}

// platformGetSurfaceDescriptor hands the bound canvas to the WebGPU binding, which takes a
// "webgpu" context from it.
func platformGetSurfaceDescriptor(w *engineWindow) *wgpu.SurfaceDescriptor {
	cw, ok := w.internalWindow.(*canvasWindow)
	if !ok || !cw.canvas.Truthy() {
		return nil
	}
	return &wgpu.SurfaceDescriptor{Label: w.title, Canvas: cw.canvas}
}

func platformIsRunningCheck(w *engineWindow) bool {
	cw, ok := w.internalWindow.(*canvasWindow)
	return ok && cw.running
}

// platformCloseWindow stops the animation frame loop and removes the resize listeners.
// The canvas element stays in the document.
func platformCloseWindow(w *engineWindow) error {
	cw, ok := w.internalWindow.(*canvasWindow)
	if !ok {
		return fmt.Errorf("window is not initialized")
	}
	if !cw.running {
		return nil
	}
	cw.running = false
	if cw.lastFrameReq.Truthy() {
		js.Global().Call("cancelAnimationFrame", cw.lastFrameReq)
	}
	if cw.hasObserver {
		cw.observer.Call("disconnect")
	}
	if cw.resizeFunc.Truthy() {
		js.Global().Call("removeEventListener", "resize", cw.resizeFunc)
	}
	close(cw.done)
	return nil
}

// platformRunLoop schedules a self-rescheduling requestAnimationFrame callback and blocks until
// the window is closed. The update callback runs on the browser's event loop.
func platformRunLoop(w *engineWindow) {
	cw, ok := w.internalWindow.(*canvasWindow)
	if !ok || !cw.running {
		return
	}
	cw.frameFunc = js.FuncOf(func(js.Value, []js.Value) any {
		if !cw.running {
			return nil
		}
		w.width = canvasDimension(cw.canvas.Get("width"))
		w.height = canvasDimension(cw.canvas.Get("height"))
		if w.onUpdate != nil {
			w.onUpdate()
		}
		if cw.running {
			cw.lastFrameReq = js.Global().Call("requestAnimationFrame", cw.frameFunc)
		}
		return nil
	})
	cw.lastFrameReq = js.Global().Call("requestAnimationFrame", cw.frameFunc)

	<-cw.done
	cw.frameFunc.Release()
	if cw.resizeFunc.Truthy() {
		cw.resizeFunc.Release()
	}
}

func devicePixelRatio() float64 {
	v := js.Global().Get("devicePixelRatio")
	if v.Type() != js.TypeNumber {
		return 1
	}
	return v.Float()
}

func canvasDimension(v js.Value) int {
	if v.Type() != js.TypeNumber {
		return 1
	}
	return max(1, v.Int())
}
