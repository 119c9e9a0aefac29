package utils

import "time"

// Timer measures wall-clock time from NewTimer (or the last Start) to Stop.
type Timer struct {
	startTime time.Time
	duration  time.Duration
}

// NewTimer returns a running Timer.
func NewTimer() *Timer {
	return &Timer{startTime: time.Now()}
}

// Start restarts the measurement.
func (t *Timer) Start() {
	t.startTime = time.Now()
	t.duration = 0
}

// Stop captures and returns the elapsed time.
func (t *Timer) Stop() time.Duration {
	t.duration = time.Since(t.startTime)
	return t.duration
}

// Duration returns the value captured by the last Stop, zero before that.
func (t *Timer) Duration() time.Duration {
	return t.duration
}
