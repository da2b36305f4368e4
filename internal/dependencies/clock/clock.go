package clock

import "time"

// Clock tells the time for game timers, session expiry and stats.
// Tests swap in mocks.MockClock to control elapsed play time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

// New creates a SystemClock
func New() *SystemClock {
	return &SystemClock{}
}

// Now returns the current time in UTC, truncated to milliseconds to match
// the precision game durations are reported in
func (c *SystemClock) Now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
