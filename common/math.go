package common

import (
	"encoding/binary"
	"math"
)

// Clamp restricts v to the closed interval [lo, hi].
//
// Parameters:
//   - v: the value to clamp
//   - lo: the lower bound
//   - hi: the upper bound
//
// Returns:
//   - float32: v limited to [lo, hi]
func Clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsFinite32 reports whether v is neither NaN nor an infinity.
//
// Parameters:
//   - v: the value to check
//
// Returns:
//   - bool: true if v is a finite number
func IsFinite32(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// SmoothStep performs Hermite interpolation between 0 and 1 when edge0 < x < edge1,
// matching the WGSL smoothstep builtin.
//
// Parameters:
//   - edge0: the lower edge
//   - edge1: the upper edge
//   - x: the source value
//
// Returns:
//   - float32: the interpolated value in [0, 1]
func SmoothStep(edge0, edge1, x float32) float32 {
	if edge0 == edge1 {
		if x < edge0 {
			return 0
		}
		return 1
	}
	t := Clamp((x-edge0)/(edge1-edge0), 0, 1)
	return t * t * (3 - 2*t)
}

// PutFloat32s writes values into buf as consecutive little-endian IEEE-754 floats,
// which is the byte order WebGPU expects for uniform buffer uploads.
// buf must hold at least 4*len(values) bytes.
//
// Parameters:
//   - buf: destination byte slice
//   - values: the floats to encode
func PutFloat32s(buf []byte, values ...float32) {
	for i, v := range values {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
