//go:build !js

package window

import (
	"runtime"
	"testing"
)

func TestGLFWCloseBeforeLoopDestroysWindow(t *testing.T) {
	if runtime.GOOS == "darwin" {
		t.Skip("GLFW windows must be created on the main thread on macOS")
	}
	w, err := NewWindow(WithTitle("close test"), WithWidth(320), WithHeight(180))
	if err != nil {
		t.Skipf("no display: %v", err)
	}
	ew := w.(*engineWindow)

	if err := w.Close(); err != nil {
		t.Fatalf("Close() = %v", err)
	}
	if ew.internalWindow != nil {
		t.Error("window not destroyed when its loop never ran")
	}
	if w.IsRunning() {
		t.Error("IsRunning() after Close")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("destroyed window still hands out a surface descriptor")
	}

	// GLFW was terminated, so a fresh window must initialise it again.
	again, err := NewWindow(WithTitle("close test"), WithWidth(320), WithHeight(180))
	if err != nil {
		t.Fatalf("NewWindow() after teardown = %v", err)
	}
	if err := again.Close(); err != nil {
		t.Fatalf("second window Close() = %v", err)
	}
}
