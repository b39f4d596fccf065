package core

// Countdown is a one-second-resolution countdown timer. It advances only
// through explicit Tick calls delivered by the host's tick source, so all
// transitions are serialized by construction: Tick is never invoked
// concurrently with Start, Stop, or Reset.
//
// Invariants: remaining only decreases while running, never goes negative,
// and each run to zero produces exactly one completion.
type Countdown struct {
	total     int
	remaining int
	running   bool
}

// NewCountdown creates a stopped countdown loaded with the given duration.
// Seconds must be positive; otherwise ErrInvalidDuration is returned.
func NewCountdown(seconds int) (*Countdown, error) {
	if seconds <= 0 {
		return nil, ErrInvalidDuration
	}
	return &Countdown{total: seconds, remaining: seconds}, nil
}

// Start loads a new duration and begins counting down. Seconds must be
// positive. Both total and remaining are reset, so Start discards any
// in-flight countdown.
func (c *Countdown) Start(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDuration
	}
	c.total = seconds
	c.remaining = seconds
	c.running = true
	return nil
}

// Resume continues counting from the current remaining time. Resuming a
// countdown that has already reached zero has no effect beyond setting the
// running flag; subsequent ticks are no-ops until the next Start or Reset.
func (c *Countdown) Resume() {
	c.running = true
}

// Stop pauses the countdown, leaving remaining unchanged.
func (c *Countdown) Stop() {
	c.running = false
}

// Reset stops the countdown and restores remaining to the full duration.
func (c *Countdown) Reset() {
	c.running = false
	c.remaining = c.total
}

// Load stops the countdown and replaces both total and remaining with a
// new duration, leaving the timer paused. This is the phase-flip form of
// reset: the new phase is armed but not started.
func (c *Countdown) Load(seconds int) error {
	if seconds <= 0 {
		return ErrInvalidDuration
	}
	c.total = seconds
	c.remaining = seconds
	c.running = false
	return nil
}

// Tick advances the countdown by one second. It returns true exactly once
// per run to zero: on the tick where remaining hits 0, running is cleared
// and true is returned. Ticks while stopped, or after zero has been
// reached, do nothing and return false.
func (c *Countdown) Tick() bool {
	if !c.running || c.remaining <= 0 {
		return false
	}
	c.remaining--
	if c.remaining == 0 {
		c.running = false
		return true
	}
	return false
}

// Running reports whether the countdown is currently advancing.
func (c *Countdown) Running() bool { return c.running }

// Remaining returns the seconds left on the countdown.
func (c *Countdown) Remaining() int { return c.remaining }

// Total returns the duration the countdown was last started or loaded with.
func (c *Countdown) Total() int { return c.total }
