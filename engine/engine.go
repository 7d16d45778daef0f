package engine

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Carmen-Shannon/paddleball/engine/logger"
	"github.com/Carmen-Shannon/paddleball/engine/profiler"
	"github.com/Carmen-Shannon/paddleball/engine/window"
)

// ErrNoWindow is returned by Run when the engine was built without a window.
var ErrNoWindow = errors.New("engine has no window")

type engine struct {
	window window.Window

	profiler         *profiler.Profiler
	profilingEnabled bool

	frameCallback func(deltaTime float32) error

	mu        sync.Mutex
	err       error
	lastFrame time.Time
	quitOnce  sync.Once

	now func() time.Time
}

// Engine drives a per-frame callback from a window's message loop.
//
// The window owns the loop: each iteration it calls the engine, which measures the frame delta
// and runs the frame callback. A frame that returns an error or panics is logged and ends the
// loop; Run then returns that error.
type Engine interface {
	// Window returns the window the engine runs on.
	//
	// Returns:
	//   - window.Window: the window
	Window() window.Window

	// EnableProfiler turns on the once-per-second frame stats log.
	EnableProfiler()

	// DisableProfiler turns the frame stats log off.
	DisableProfiler()

	// SetFrameCallback replaces the per-frame callback.
	//
	// Parameters:
	//   - callback: called once per window loop iteration with the seconds since the last frame
	SetFrameCallback(callback func(deltaTime float32) error)

	// Run installs the frame callback on the window and blocks in its message loop.
	//
	// Returns:
	//   - error: the frame error that stopped the loop, nil on a normal close
	Run() error

	// Quit closes the window, ending Run. Safe to call more than once.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine configured by options.
//
// Parameters:
//   - options: builder options, typically WithWindow and WithFrame
//
// Returns:
//   - Engine: the engine
func NewEngine(options ...EngineBuilderOption) Engine {
	e := &engine{
		profiler: profiler.NewProfiler(),
		now:      time.Now,
	}

	for _, opt := range options {
		opt(e)
	}

	return e
}

func (e *engine) Window() window.Window {
	return e.window
}

func (e *engine) EnableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = true
}

func (e *engine) DisableProfiler() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.profilingEnabled = false
}

func (e *engine) SetFrameCallback(callback func(deltaTime float32) error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.frameCallback = callback
}

func (e *engine) Run() error {
	if e.window == nil {
		return ErrNoWindow
	}

	e.mu.Lock()
	e.lastFrame = e.now()
	e.mu.Unlock()

	e.window.SetUpdateCallback(e.handleFrame)
	e.window.SetResizeCallback(e.handleResize)
	e.window.ProcessMessages()

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *engine) Quit() {
	e.quitOnce.Do(func() {
		if e.window == nil {
			return
		}
		if err := e.window.Close(); err != nil {
			logger.Logger().Warn("window close failed", "err", err)
		}
	})
}

// handleResize logs drawable size changes. The frame callback picks the new size up from the
// window's display state.
func (e *engine) handleResize(width, height int) {
	logger.Logger().Debug("window resized", "width", width, "height", height)
}

// handleFrame runs one frame. It is the window's update callback.
func (e *engine) handleFrame() {
	defer func() {
		if r := recover(); r != nil {
			e.fail(fmt.Errorf("frame panicked: %v", r))
		}
	}()

	e.mu.Lock()
	if e.err != nil {
		e.mu.Unlock()
		return
	}
	now := e.now()
	dt := float32(now.Sub(e.lastFrame).Seconds())
	e.lastFrame = now
	callback := e.frameCallback
	profiling := e.profilingEnabled
	e.mu.Unlock()

	if callback != nil {
		if err := callback(dt); err != nil {
			e.fail(err)
			return
		}
	}

	if profiling && e.profiler != nil {
		e.profiler.Tick()
	}
}

// fail records the first frame error and stops the loop.
func (e *engine) fail(err error) {
	e.mu.Lock()
	first := e.err == nil
	if first {
		e.err = err
	}
	e.mu.Unlock()

	if first {
		logger.Logger().Error("render error", "err", err)
	}
	e.Quit()
}
