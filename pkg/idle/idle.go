// Package idle implements the kiosk's inactivity state machine.
package idle

import "time"

// State is either Active or Screensaving.
type State int

const (
	StateActive State = iota
	StateScreensaving
)

// String returns the state name.
func (s State) String() string {
	if s == StateScreensaving {
		return "screensaving"
	}
	return "active"
}

// FrameCount is the size of the fixed screensaver background set.
const FrameCount = 3

// Controller drives the Active <-> Screensaving transitions from a countdown
// that resets on every observed input event. While screensaving, a separate
// rotation cycles the background frame index.
type Controller struct {
	state    State
	timeout  time.Duration
	deadline time.Time
	frame    int
}

// NewController starts an Active controller with a full countdown.
func NewController(timeout time.Duration, now time.Time) *Controller {
	return &Controller{
		state:    StateActive,
		timeout:  timeout,
		deadline: now.Add(timeout),
	}
}

// State returns the current state.
func (c *Controller) State() State {
	return c.state
}

// Touch records an input event. The countdown restarts from its full value;
// if the kiosk was screensaving it wakes immediately and woke is true. The
// caller uses woke to swallow the waking event rather than act on it.
func (c *Controller) Touch(now time.Time) (woke bool) {
	c.deadline = now.Add(c.timeout)
	if c.state == StateScreensaving {
		c.state = StateActive
		return true
	}
	return false
}

// Tick checks the countdown. When it reaches zero the controller moves to
// Screensaving and slept is true; the owner then resets filters, clears the
// cart and closes any open overlay.
func (c *Controller) Tick(now time.Time) (slept bool) {
	if c.state != StateActive || now.Before(c.deadline) {
		return false
	}
	c.state = StateScreensaving
	c.frame = 0
	return true
}

// Remaining returns the countdown time left while Active, zero otherwise.
func (c *Controller) Remaining(now time.Time) time.Duration {
	if c.state != StateActive {
		return 0
	}
	if d := c.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Frame returns the current screensaver background index.
func (c *Controller) Frame() int {
	return c.frame
}

// AdvanceFrame cycles to the next background image. Driven by the rotation
// timer, independent of the idle countdown.
func (c *Controller) AdvanceFrame() int {
	c.frame = (c.frame + 1) % FrameCount
	return c.frame
}
