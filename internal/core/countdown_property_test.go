package core

import (
	"testing"

	"pgregory.net/rapid"
)

// Property: a countdown started with d seconds completes exactly once,
// after exactly d ticks, and remaining never increases or goes negative
// along the way.
func TestProperty_CountdownSingleCompletion(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(1, 600).Draw(rt, "duration")
		extra := rapid.IntRange(0, 50).Draw(rt, "extraTicks")

		c, err := NewCountdown(d)
		if err != nil {
			t.Fatalf("NewCountdown(%d) failed: %v", d, err)
		}
		if err := c.Start(d); err != nil {
			t.Fatalf("Start(%d) failed: %v", d, err)
		}

		completions := 0
		prev := c.Remaining()
		for i := 0; i < d+extra; i++ {
			if c.Tick() {
				completions++
			}
			cur := c.Remaining()
			if cur < 0 {
				t.Fatalf("remaining went negative: %d", cur)
			}
			if cur > prev {
				t.Fatalf("remaining increased from %d to %d", prev, cur)
			}
			prev = cur
		}

		if completions != 1 {
			t.Fatalf("expected exactly 1 completion after %d ticks of a %d-second countdown, got %d",
				d+extra, d, completions)
		}
		if c.Remaining() != 0 {
			t.Fatalf("expected remaining 0, got %d", c.Remaining())
		}
		if c.Running() {
			t.Fatal("countdown still running after completion")
		}
	})
}

// Property: stop/resume pairs never change how many running ticks a
// countdown needs; d effective ticks always reach zero.
func TestProperty_CountdownPauseResumePreservesBudget(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		d := rapid.IntRange(1, 200).Draw(rt, "duration")

		c, err := NewCountdown(d)
		if err != nil {
			t.Fatalf("NewCountdown(%d) failed: %v", d, err)
		}
		if err := c.Start(d); err != nil {
			t.Fatalf("Start(%d) failed: %v", d, err)
		}

		completions := 0
		runningTicks := 0
		for runningTicks < d {
			if rapid.Bool().Draw(rt, "pause") {
				c.Stop()
				// Ticks while paused must not consume budget.
				pausedTicks := rapid.IntRange(0, 5).Draw(rt, "pausedTicks")
				before := c.Remaining()
				for i := 0; i < pausedTicks; i++ {
					if c.Tick() {
						t.Fatal("completion while paused")
					}
				}
				if c.Remaining() != before {
					t.Fatalf("paused ticks changed remaining from %d to %d", before, c.Remaining())
				}
				c.Resume()
			}
			if c.Tick() {
				completions++
			}
			runningTicks++
		}

		if completions != 1 {
			t.Fatalf("expected exactly 1 completion after %d running ticks, got %d", d, completions)
		}
	})
}
