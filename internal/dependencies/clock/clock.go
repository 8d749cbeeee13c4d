package clock

import "time"

// Clock provides the current time so date defaults can be pinned in tests
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock in the local time zone
type RealClock struct{}

// New creates a new RealClock
func New() *RealClock {
	return &RealClock{}
}

// Now returns the current local time
func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Today returns midnight of the clock's current day
func Today(c Clock) time.Time {
	now := c.Now()
	y, m, d := now.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, now.Location())
}
