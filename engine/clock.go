package engine

// clock implements the render time model. Elapsed time runs from an epoch;
// pausing freezes the elapsed value, and resuming moves the epoch so elapsed
// time continues from the frozen value without a jump in either direction.
type clock struct {
	now    func() float64
	epoch  float64
	paused bool
	frozen float64
}

func newClock(now func() float64) *clock {
	return &clock{now: now, epoch: now()}
}

func (c *clock) Elapsed() float64 {
	if c.paused {
		return c.frozen
	}
	return c.now() - c.epoch
}

func (c *clock) Paused() bool {
	return c.paused
}

func (c *clock) TogglePause() {
	if c.paused {
		c.epoch = c.now() - c.frozen
		c.paused = false
		return
	}
	c.frozen = c.now() - c.epoch
	c.paused = true
}

// Reset restarts elapsed time from zero, preserving the paused state.
func (c *clock) Reset() {
	c.epoch = c.now()
	c.frozen = 0
}
