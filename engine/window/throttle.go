package window

import "time"

// Throttle lets at most one action through per interval. The caller retries a refused
// action on a later frame.
type Throttle struct {
	interval time.Duration
	last     time.Time
}

// NewThrottle returns a Throttle with the given minimum interval.
func NewThrottle(interval time.Duration) *Throttle {
	return &Throttle{interval: interval}
}

// Allow reports whether an action may run at now. The first call always succeeds.
func (t *Throttle) Allow(now time.Time) bool {
	if !t.last.IsZero() && now.Sub(t.last) < t.interval {
		return false
	}
	t.last = now
	return true
}
