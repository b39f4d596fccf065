package core

import "time"

// Clock provides the current wall-clock time. The scheduling sweep and the
// recurrence engine take their reference time from a Clock so tests can
// pin "now" to a fixed instant.
type Clock interface {
	Now() time.Time
}

// systemClock implements Clock using the system wall clock.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// NewSystemClock returns a Clock backed by time.Now.
func NewSystemClock() Clock { return systemClock{} }
