//go:build js && wasm

package window

import (
	"syscall/js"
	"testing"
	"time"
)

// page stubs the DOM pieces the canvas window touches, so the tests also run outside a browser.
type page struct {
	canvas    js.Value
	container js.Value
	rect      [2]float64
	frames    chan struct{}
	cancels   int
	funcs     []js.Func
}

func setGlobal(t *testing.T, name string, v any) {
	t.Helper()
	global := js.Global()
	old := global.Get(name)
	global.Set(name, v)
	t.Cleanup(func() { global.Set(name, old) })
}

func newPage(t *testing.T, width, height float64) *page {
	t.Helper()
	object := js.Global().Get("Object")
	p := &page{rect: [2]float64{width, height}, frames: make(chan struct{}, 16)}
	fn := func(f func(args []js.Value) any) js.Func {
		jf := js.FuncOf(func(_ js.Value, args []js.Value) any { return f(args) })
		p.funcs = append(p.funcs, jf)
		return jf
	}
	t.Cleanup(func() {
		for _, f := range p.funcs {
			f.Release()
		}
	})

	p.container = object.New()
	p.container.Set("style", object.New())
	p.container.Set("getBoundingClientRect", fn(func([]js.Value) any {
		return map[string]any{"width": p.rect[0], "height": p.rect[1]}
	}))

	p.canvas = object.New()
	p.canvas.Set("width", 300)
	p.canvas.Set("height", 150)
	p.canvas.Set("style", object.New())
	p.canvas.Set("parentElement", p.container)

	document := object.New()
	document.Set("title", "")
	setGlobal(t, "document", document)
	setGlobal(t, "devicePixelRatio", 1)
	setGlobal(t, "ResizeObserver", js.Undefined())
	setGlobal(t, "addEventListener", fn(func([]js.Value) any { return nil }))
	setGlobal(t, "removeEventListener", fn(func([]js.Value) any { return nil }))
	setGlobal(t, "requestAnimationFrame", fn(func([]js.Value) any {
		select {
		case p.frames <- struct{}{}:
		default:
		}
		return 1
	}))
	setGlobal(t, "cancelAnimationFrame", fn(func([]js.Value) any {
		p.cancels++
		return nil
	}))
	return p
}

func newCanvasWindow(t *testing.T, p *page) *engineWindow {
	t.Helper()
	w, err := NewWindow(WithCanvas(p.canvas), WithTitle("canvas test"), WithResizeThrottle(0))
	if err != nil {
		t.Fatalf("NewWindow() = %v", err)
	}
	return w.(*engineWindow)
}

func TestCanvasSurfaceDescriptor(t *testing.T) {
	p := newPage(t, 1600, 900)
	w := newCanvasWindow(t, p)
	defer w.Close()

	desc := w.SurfaceDescriptor()
	if desc == nil {
		t.Fatal("SurfaceDescriptor() = nil, want the bound canvas")
	}
	if !desc.Canvas.Equal(p.canvas) {
		t.Error("descriptor does not carry the bound canvas")
	}
	if desc.Label != "canvas test" {
		t.Errorf("Label = %q, want the window title", desc.Label)
	}
	if got := js.Global().Get("document").Get("title").String(); got != "canvas test" {
		t.Errorf("document.title = %q", got)
	}
}

func TestCanvasInitialSizeIsLetterboxed(t *testing.T) {
	p := newPage(t, 1000, 1000)
	w := newCanvasWindow(t, p)
	defer w.Close()

	if w.Width() != 1000 || w.Height() != 562 {
		t.Errorf("size = %dx%d, want 1000x562", w.Width(), w.Height())
	}
	if w.Display().TakeNeedsResize() {
		t.Error("the initial fit should not raise the resize flag")
	}
}

func TestCanvasApplyResize(t *testing.T) {
	p := newPage(t, 1600, 900)
	w := newCanvasWindow(t, p)
	defer w.Close()
	cw := w.internalWindow.(*canvasWindow)

	p.rect = [2]float64{800, 450}
	cw.applyResize(false)
	if !w.Display().TakeNeedsResize() {
		t.Error("a new backing size should raise the resize flag")
	}
	if w.Width() != 800 || w.Height() != 450 {
		t.Errorf("size = %dx%d, want 800x450", w.Width(), w.Height())
	}
	if got := p.canvas.Get("width").Int(); got != 800 {
		t.Errorf("canvas.width = %d, want 800", got)
	}

	cw.applyResize(false)
	if w.Display().TakeNeedsResize() {
		t.Error("an unchanged size should not raise the resize flag")
	}
}

func TestCanvasCloseStopsLoop(t *testing.T) {
	p := newPage(t, 640, 360)
	w := newCanvasWindow(t, p)

	done := make(chan struct{})
	go func() {
		w.ProcessMessages()
		close(done)
	}()

	select {
	case <-p.frames:
	case <-time.After(2 * time.Second):
		t.Fatal("loop never requested an animation frame")
	}
	if !w.IsRunning() {
		t.Fatal("window should run until closed")
	}

	if err := w.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ProcessMessages did not return after Close")
	}
	if w.IsRunning() {
		t.Error("IsRunning() after Close")
	}
	if p.cancels != 1 {
		t.Errorf("cancelAnimationFrame calls = %d, want 1", p.cancels)
	}
	if err := w.Close(); err != nil {
		t.Errorf("second Close() = %v", err)
	}
}
