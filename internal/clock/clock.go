// Package clock measures animation time for the render loop.
package clock

import "time"

// Clock reports monotonic seconds since it was started, excluding time spent
// paused. Consumers read Elapsed every frame instead of summing deltas, so a
// dropped or slow frame never skews the animation.
type Clock struct {
	now    func() time.Time
	start  time.Time
	paused bool
	since  time.Time     // pause start
	frozen time.Duration // total paused time
}

// New starts a clock at zero.
func New() *Clock {
	return newWithSource(time.Now)
}

func newWithSource(now func() time.Time) *Clock {
	return &Clock{now: now, start: now()}
}

// Elapsed returns seconds since start minus paused time.
func (c *Clock) Elapsed() float64 {
	end := c.now()
	if c.paused {
		end = c.since
	}
	return (end.Sub(c.start) - c.frozen).Seconds()
}

// Pause freezes Elapsed. Pausing a paused clock does nothing.
func (c *Clock) Pause() {
	if c.paused {
		return
	}
	c.paused = true
	c.since = c.now()
}

// Resume continues from the value Elapsed had when paused.
func (c *Clock) Resume() {
	if !c.paused {
		return
	}
	c.frozen += c.now().Sub(c.since)
	c.paused = false
}

// Toggle flips between paused and running and reports the new paused state.
func (c *Clock) Toggle() bool {
	if c.paused {
		c.Resume()
	} else {
		c.Pause()
	}
	return c.paused
}

// Paused reports whether the clock is paused.
func (c *Clock) Paused() bool {
	return c.paused
}
