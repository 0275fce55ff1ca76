package spawn

// Timer is the shared spawn countdown, in seconds. It lives in the simulation context and is
// advanced by exactly one pass per tick.
//
// Rollover policy: when the countdown reaches zero it is reset to exactly Interval and any
// overshoot below zero is discarded. With Interval 5 and dt 1 a batch fires on ticks
// 5, 10, 15 and so on.
type Timer struct {
	Remaining float64
	Interval  float64
}

// NewTimer creates a timer that first fires after initial seconds.
func NewTimer(initial, interval float64) *Timer {
	return &Timer{Remaining: initial, Interval: interval}
}

// Advance counts dt down and reports whether the timer fired.
func (t *Timer) Advance(dt float64) bool {
	t.Remaining -= dt
	if t.Remaining > 0 {
		return false
	}
	t.Remaining = t.Interval
	return true
}
