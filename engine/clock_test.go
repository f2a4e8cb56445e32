package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeTime is an advanceable wall clock for driving the time model.
type fakeTime struct {
	t float64
}

func (f *fakeTime) now() float64 {
	return f.t
}

func TestClockElapsed(t *testing.T) {
	ft := &fakeTime{t: 100}
	c := newClock(ft.now)

	assert.Equal(t, 0.0, c.Elapsed())
	ft.t = 103.5
	assert.InDelta(t, 3.5, c.Elapsed(), 1e-9)
}

func TestClockPauseFreezesElapsed(t *testing.T) {
	ft := &fakeTime{t: 10}
	c := newClock(ft.now)

	ft.t = 12
	c.TogglePause()
	assert.True(t, c.Paused())

	ft.t = 50
	assert.InDelta(t, 2.0, c.Elapsed(), 1e-9, "elapsed frozen at the pause point")
}

func TestClockResumeIsContinuous(t *testing.T) {
	ft := &fakeTime{t: 0}
	c := newClock(ft.now)

	ft.t = 5
	c.TogglePause()
	ft.t = 42
	c.TogglePause()
	assert.False(t, c.Paused())

	// no time passed between pause and resume from the shader's view
	assert.InDelta(t, 5.0, c.Elapsed(), 1e-9)

	ft.t = 44
	assert.InDelta(t, 7.0, c.Elapsed(), 1e-9, "time continues monotonically after resume")
}

func TestClockPauseResumeWithNoTimePassing(t *testing.T) {
	ft := &fakeTime{t: 20}
	c := newClock(ft.now)

	ft.t = 23
	before := c.Elapsed()
	c.TogglePause()
	c.TogglePause()
	assert.InDelta(t, before, c.Elapsed(), 1e-9)
}

func TestClockReset(t *testing.T) {
	ft := &fakeTime{t: 0}
	c := newClock(ft.now)

	ft.t = 9
	c.Reset()
	assert.Equal(t, 0.0, c.Elapsed())
}
