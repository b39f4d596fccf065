package core

import "errors"

// ErrInvalidDuration is returned when a countdown or phase duration is not
// a positive number of seconds.
var ErrInvalidDuration = errors.New("duration must be a positive number of seconds")

// ErrSweepInProgress is returned when a scheduling sweep is triggered while
// a previous run has not finished. The sweep performs non-atomic
// read-then-insert against the task store, so runs must not overlap.
var ErrSweepInProgress = errors.New("scheduling sweep already in progress")
