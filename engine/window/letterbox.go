package window

import "math"

// Fit is the result of letterboxing a drawable into a container.
type Fit struct {
	// CSSWidth and CSSHeight are the displayed size in CSS pixels.
	CSSWidth  float64
	CSSHeight float64

	// Width and Height are the backing size in device pixels, never below 1.
	Width  int
	Height int
}

// Letterbox returns the largest rectangle with the given aspect ratio that fits inside
// the container, together with the backing size for the device pixel ratio.
// An empty container (either side <= 0) is returned unchanged and yields a 1x1 backing size.
//
// Parameters:
//   - containerW: container width in CSS pixels
//   - containerH: container height in CSS pixels
//   - aspect: content width / height
//   - dpr: device pixel ratio
//
// Returns:
//   - Fit: the displayed and backing sizes
func Letterbox(containerW, containerH, aspect, dpr float64) Fit {
	cssW, cssH := containerW, containerH
	if cssW > 0 && cssH > 0 && aspect > 0 {
		if fitH := cssW / aspect; fitH <= cssH {
			cssH = fitH
		} else {
			cssW = cssH * aspect
		}
	}
	if !(dpr > 0) || math.IsInf(dpr, 0) {
		dpr = 1
	}
	return Fit{
		CSSWidth:  cssW,
		CSSHeight: cssH,
		Width:     backing(cssW, dpr),
		Height:    backing(cssH, dpr),
	}
}

// backing converts a CSS length to device pixels. The epsilon absorbs the rounding error of
// dividing by a non-representable aspect such as 16/9.
func backing(css, dpr float64) int {
	v := math.Floor(css*dpr + 1e-6)
	if !(v >= 1) {
		return 1
	}
	return int(v)
}
