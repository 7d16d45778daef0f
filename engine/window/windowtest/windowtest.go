// Package windowtest provides an in-memory window.Window for tests that drive a frame loop
// without a display.
package windowtest

import (
	"sync"

	"github.com/Carmen-Shannon/paddleball/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
)

// Window is a headless window.Window. ProcessMessages calls the update callback until Close is
// called or MaxFrames iterations have run.
type Window struct {
	// MaxFrames bounds the loop; 0 means run until Close.
	MaxFrames int

	mu       sync.Mutex
	width    int
	height   int
	closed   bool
	closes   int
	frames   int
	display  *window.DisplayState
	onUpdate func()
	onResize func(width, height int)
}

var _ window.Window = &Window{}

// New returns a headless window of the given drawable size.
func New(width, height int) *Window {
	return &Window{
		width:   width,
		height:  height,
		display: window.NewDisplayState(),
	}
}

func (w *Window) SetUpdateCallback(callback func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onUpdate = callback
}

func (w *Window) SetResizeCallback(callback func(width, height int)) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.onResize = callback
}

func (w *Window) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }

func (w *Window) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed
}

func (w *Window) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.closes++
	return nil
}

func (w *Window) ProcessMessages() {
	for {
		w.mu.Lock()
		if w.closed || (w.MaxFrames > 0 && w.frames >= w.MaxFrames) {
			w.mu.Unlock()
			return
		}
		w.frames++
		update := w.onUpdate
		w.mu.Unlock()

		if update != nil {
			update()
		}
	}
}

func (w *Window) Width() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.width
}

func (w *Window) Height() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.height
}

func (w *Window) Display() *window.DisplayState { return w.display }

// Resize changes the drawable size the way a host resize does: the size is updated, the
// resize-pending flag is raised and the resize callback runs.
func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.width, w.height = width, height
	cb := w.onResize
	w.mu.Unlock()

	w.display.NotifyResize()
	if cb != nil {
		cb(width, height)
	}
}

// Frames returns how many loop iterations have run.
func (w *Window) Frames() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.frames
}

// Closes returns how many times Close was called.
func (w *Window) Closes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closes
}
