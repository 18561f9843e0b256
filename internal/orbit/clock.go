package orbit

import "time"

// ClockConfig configures the fixed-step simulation clock.
type ClockConfig struct {
	StepHz     float64 // Simulation steps per second
	MaxCatchUp int     // Most steps returned by a single Advance
}

// DefaultClockConfig returns the 60 Hz reference rate.
func DefaultClockConfig() ClockConfig {
	return ClockConfig{
		StepHz:     60,
		MaxCatchUp: 5,
	}
}

// Clock converts elapsed wall time into whole simulation steps so the orbit
// speeds stay tied to the reference step rate whatever the redraw rate.
type Clock struct {
	step     time.Duration
	maxSteps int
	acc      time.Duration
	last     time.Time
}

// NewClock creates a clock. Non-positive fields fall back to the defaults.
func NewClock(cfg ClockConfig) *Clock {
	def := DefaultClockConfig()
	if cfg.StepHz <= 0 {
		cfg.StepHz = def.StepHz
	}
	if cfg.MaxCatchUp <= 0 {
		cfg.MaxCatchUp = def.MaxCatchUp
	}
	return &Clock{
		step:     time.Duration(float64(time.Second) / cfg.StepHz),
		maxSteps: cfg.MaxCatchUp,
	}
}

// Step returns the duration of one simulation step.
func (c *Clock) Step() time.Duration { return c.step }

// Advance adds elapsed time and returns the number of steps now due.
// When more than MaxCatchUp steps are pending the backlog is dropped.
func (c *Clock) Advance(elapsed time.Duration) int {
	if elapsed <= 0 {
		return 0
	}
	c.acc += elapsed
	n := int(c.acc / c.step)
	if n > c.maxSteps {
		c.acc = 0
		return c.maxSteps
	}
	c.acc -= time.Duration(n) * c.step
	return n
}

// Tick advances the clock to now. The first call only records the time.
func (c *Clock) Tick(now time.Time) int {
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	elapsed := now.Sub(c.last)
	c.last = now
	return c.Advance(elapsed)
}

// Reset discards accumulated time and the last tick.
func (c *Clock) Reset() {
	c.acc = 0
	c.last = time.Time{}
}
