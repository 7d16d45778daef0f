package window

import "time"

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMaxWidth sets the maximum allowed window width. Zero removes the limit.
//
// Parameters:
//   - maxWidth: maximum width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxWidth(maxWidth int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth = maxWidth
	}
}

// WithMaxHeight sets the maximum allowed window height. Zero removes the limit.
//
// Parameters:
//   - maxHeight: maximum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxHeight(maxHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxHeight = maxHeight
	}
}

// WithMinWidth sets the minimum allowed window width.
//
// Parameters:
//   - minWidth: minimum width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinWidth(minWidth int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth = minWidth
	}
}

// WithMinHeight sets the minimum allowed window height.
//
// Parameters:
//   - minHeight: minimum height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinHeight(minHeight int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minHeight = minHeight
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}

// WithAspect sets the content aspect ratio (width / height) the browser canvas is letterboxed to.
// Non-positive values are ignored.
//
// Parameters:
//   - aspect: the content aspect ratio
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithAspect(aspect float64) WindowBuilderOption {
	return func(w *engineWindow) {
		if aspect > 0 {
			w.aspect = aspect
		}
	}
}

// WithResizeThrottle sets the minimum interval between two applied canvas resizes.
//
// Parameters:
//   - d: the throttle interval, 0 to apply every resize immediately
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithResizeThrottle(d time.Duration) WindowBuilderOption {
	return func(w *engineWindow) {
		w.resizeThrottle = d
	}
}

// WithDisplayState shares an existing DisplayState with the window, so host notifications
// received before the window exists are not lost.
//
// Parameters:
//   - d: the display state to use; nil keeps the window's own
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithDisplayState(d *DisplayState) WindowBuilderOption {
	return func(w *engineWindow) {
		if d != nil {
			w.display = d
		}
	}
}
