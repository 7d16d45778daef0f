package window

import (
	"math"
	"sync/atomic"
)

// DisplayState holds the two notifications a host sends about the drawable surface:
// a resize-pending flag and the device pixel ratio. It is safe for concurrent use.
type DisplayState struct {
	needsResize atomic.Bool
	dprBits     atomic.Uint32
}

// NewDisplayState returns a DisplayState with no resize pending and a pixel ratio of 1.
func NewDisplayState() *DisplayState {
	d := &DisplayState{}
	d.dprBits.Store(math.Float32bits(1))
	return d
}

// NotifyResize records that the host changed the surface backing size.
func (d *DisplayState) NotifyResize() {
	d.needsResize.Store(true)
}

// TakeNeedsResize reports whether a resize is pending and clears the flag.
// Two consecutive calls without an intervening NotifyResize return true then false.
func (d *DisplayState) TakeNeedsResize() bool {
	return d.needsResize.Swap(false)
}

// SetDevicePixelRatio stores the host's device pixel ratio.
// Values that are not finite or not positive are stored as 1.
func (d *DisplayState) SetDevicePixelRatio(dpr float32) {
	f := float64(dpr)
	if math.IsNaN(f) || math.IsInf(f, 0) || dpr <= 0 {
		dpr = 1
	}
	d.dprBits.Store(math.Float32bits(dpr))
}

// DevicePixelRatio returns the last stored device pixel ratio.
func (d *DisplayState) DevicePixelRatio() float32 {
	return math.Float32frombits(d.dprBits.Load())
}
