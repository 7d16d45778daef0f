package window

import (
	"fmt"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
)

// Window provides a platform surface and the frame message loop.
// Wraps platform-specific window implementations (GLFW on desktop, an HTML canvas in the browser)
// with a common interface.
type Window interface {
	// SetUpdateCallback sets the function called each message loop iteration.
	//
	// Parameters:
	//   - callback: function to call (or nil to disable)
	SetUpdateCallback(callback func())

	// SetResizeCallback sets the function called when the drawable size changes.
	//
	// Parameters:
	//   - callback: function receiving new width and height in pixels
	SetResizeCallback(callback func(width, height int))

	// SurfaceDescriptor returns a wgpu.SurfaceDescriptor suitable for creating a WebGPU surface.
	// On desktop the descriptor is created by the wgpuglfw bridge from the underlying GLFW window.
	// In the browser it carries the bound canvas element.
	//
	// Returns:
	//   - *wgpu.SurfaceDescriptor: the platform-specific surface descriptor, or nil before the
	//     window is bound
	SurfaceDescriptor() *wgpu.SurfaceDescriptor

	// IsRunning returns true if the window is still active.
	//
	// Returns:
	//   - bool: true if window is running, false if closed
	IsRunning() bool

	// Close stops the message loop and releases platform resources.
	//
	// Returns:
	//   - error: error if close operation fails
	Close() error

	// ProcessMessages runs the window message loop.
	// Blocks until the window is closed. Calls the update callback once per iteration
	// (once per animation frame in the browser).
	ProcessMessages()

	// Width returns the current drawable width in pixels.
	//
	// Returns:
	//   - int: width in pixels
	Width() int

	// Height returns the current drawable height in pixels.
	//
	// Returns:
	//   - int: height in pixels
	Height() int

	// Display returns the resize-pending flag and device pixel ratio shared with the host.
	//
	// Returns:
	//   - *DisplayState: the window's display state, never nil
	Display() *DisplayState
}

// engineWindow is the implementation of the Window interface.
// Holds window configuration, platform state, and callbacks.
type engineWindow struct {
	// title is the window title displayed in the title bar (or the document title in the browser).
	title string

	// maxWidth is the maximum allowed window width during resize, 0 for no limit.
	maxWidth int

	// maxHeight is the maximum allowed window height during resize, 0 for no limit.
	maxHeight int

	// minWidth is the minimum allowed window width during resize.
	minWidth int

	// minHeight is the minimum allowed window height during resize.
	minHeight int

	// width is the current drawable width in pixels.
	width int

	// height is the current drawable height in pixels.
	height int

	// aspect is the content aspect ratio used for letterboxing.
	aspect float64

	// resizeThrottle is the minimum interval between two applied canvas resizes.
	resizeThrottle time.Duration

	// display carries the resize flag and device pixel ratio.
	display *DisplayState

	// internalWindow holds the platform-specific window data.
	internalWindow any

	// onUpdate is called each iteration of the message loop (if set).
	onUpdate func()

	// onResize is called when the drawable size changes.
	onResize func(width, height int)
}

var _ Window = &engineWindow{}

// NewWindow creates a new Window with the specified options.
// Applies default values first, then each option in order, then creates the platform window.
//
// Parameters:
//   - options: functional options to configure the window
//
// Returns:
//   - Window: the configured, visible window
//   - error: an error if the platform window could not be created
func NewWindow(options ...WindowBuilderOption) (Window, error) {
	w := &engineWindow{
		title:          "paddleball",
		minWidth:       320,
		minHeight:      180,
		width:          1280,
		height:         720,
		aspect:         16.0 / 9.0,
		resizeThrottle: 33 * time.Millisecond,
		display:        NewDisplayState(),
	}
	for _, opt := range options {
		opt(w)
	}
	if err := newPlatformWindow(w); err != nil {
		return nil, fmt.Errorf("failed to create platform window: %w", err)
	}
	return w, nil
}

func (w *engineWindow) SetUpdateCallback(callback func()) {
	w.onUpdate = callback
}

func (w *engineWindow) SetResizeCallback(callback func(width, height int)) {
	w.onResize = callback
}

func (w *engineWindow) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return platformGetSurfaceDescriptor(w)
}

func (w *engineWindow) IsRunning() bool {
	return platformIsRunningCheck(w)
}

func (w *engineWindow) Close() error {
	return platformCloseWindow(w)
}

func (w *engineWindow) ProcessMessages() {
	platformRunLoop(w)
}

func (w *engineWindow) Width() int {
	return w.width
}

func (w *engineWindow) Height() int {
	return w.height
}

func (w *engineWindow) Display() *DisplayState {
	return w.display
}

// setSize stores a new drawable size and notifies the resize callback when it changed.
func (w *engineWindow) setSize(width, height int) {
	if width == w.width && height == w.height {
		return
	}
	w.width = width
	w.height = height
	w.display.NotifyResize()
	if w.onResize != nil {
		w.onResize(width, height)
	}
}
