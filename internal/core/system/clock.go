package system

import "time"

// DefaultMaxDelta caps a frame's delta time at 1/20 s so a hitch cannot produce
// one oversized integration step.
const DefaultMaxDelta = time.Second / 20

// Clock turns a monotonically advancing timestamp into frame time and a clamped
// delta, both in seconds.
type Clock struct {
	maxDelta float64
	then     float64
}

func NewClock(maxDelta time.Duration) *Clock {
	if maxDelta <= 0 {
		maxDelta = DefaultMaxDelta
	}
	return &Clock{maxDelta: maxDelta.Seconds()}
}

// Advance records now (time since the loop started) and returns the frame time
// and the delta since the previous call. The first call measures from zero.
func (c *Clock) Advance(now time.Duration) (t, dt float64) {
	t = now.Seconds()
	dt = t - c.then
	if dt < 0 {
		dt = 0
	}
	if dt > c.maxDelta {
		dt = c.maxDelta
	}
	c.then = t
	return t, dt
}
