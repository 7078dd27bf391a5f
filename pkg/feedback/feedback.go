// Package feedback collects the customer's 1-5 satisfaction rating for an
// order.
package feedback

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrMissingOrderID is returned when the flow is created without the order
	// identifier handed off by checkout. Submission cannot proceed.
	ErrMissingOrderID = errors.New("feedback requires an order id")

	// ErrSubmitInFlight is returned when a rating is chosen while an earlier
	// submission is still outstanding.
	ErrSubmitInFlight = errors.New("feedback submission already in progress")

	// ErrAlreadySubmitted is returned once feedback has been recorded.
	// Feedback is write-once per order.
	ErrAlreadySubmitted = errors.New("feedback already submitted")
)

// State is the feedback flow's current state.
type State int

const (
	StateAwaitingRating State = iota
	StateSubmitting
	StateSubmitted
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateAwaitingRating:
		return "awaiting-rating"
	case StateSubmitting:
		return "submitting"
	case StateSubmitted:
		return "submitted"
	default:
		return "unknown"
	}
}

// Flow is the feedback state machine: AwaitingRating -> Submitting ->
// Submitted. If no rating is chosen before the deadline, the default rating
// is auto-submitted exactly once.
type Flow struct {
	state         State
	orderID       string
	rating        int
	defaultRating int
	deadline      time.Time
	deadlineFired bool
}

// NewFlow creates a flow for the given order. The deadline starts counting
// from now.
func NewFlow(orderID string, defaultRating int, deadline time.Duration, now time.Time) (*Flow, error) {
	if orderID == "" {
		return nil, ErrMissingOrderID
	}
	if defaultRating < 1 || defaultRating > 5 {
		return nil, fmt.Errorf("default rating %d out of range 1-5", defaultRating)
	}
	return &Flow{
		state:         StateAwaitingRating,
		orderID:       orderID,
		defaultRating: defaultRating,
		deadline:      now.Add(deadline),
	}, nil
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state
}

// OrderID returns the order this feedback is tied to.
func (f *Flow) OrderID() string {
	return f.orderID
}

// Rating returns the rating being (or already) submitted, zero before any
// choice.
func (f *Flow) Rating() int {
	return f.rating
}

// Remaining returns the time left until auto-submission.
func (f *Flow) Remaining(now time.Time) time.Duration {
	if d := f.deadline.Sub(now); d > 0 {
		return d
	}
	return 0
}

// Choose records a manual rating and moves the flow to Submitting. Only the
// first concurrent submission proceeds.
func (f *Flow) Choose(rating int) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("rating %d out of range 1-5", rating)
	}
	switch f.state {
	case StateSubmitting:
		return ErrSubmitInFlight
	case StateSubmitted:
		return ErrAlreadySubmitted
	}
	f.state = StateSubmitting
	f.rating = rating
	return nil
}

// DeadlineExpired checks the auto-submit deadline. When it fires, the default
// rating is returned with fire=true and the flow moves to Submitting; the
// deadline never fires more than once.
func (f *Flow) DeadlineExpired(now time.Time) (rating int, fire bool) {
	if f.state != StateAwaitingRating || f.deadlineFired || now.Before(f.deadline) {
		return 0, false
	}
	f.deadlineFired = true
	f.state = StateSubmitting
	f.rating = f.defaultRating
	return f.defaultRating, true
}

// Succeed marks the submission as recorded.
func (f *Flow) Succeed() {
	if f.state != StateSubmitting {
		return
	}
	f.state = StateSubmitted
}

// Fail returns the flow to AwaitingRating so the customer can retry.
func (f *Flow) Fail() {
	if f.state != StateSubmitting {
		return
	}
	f.state = StateAwaitingRating
	f.rating = 0
}

// Satisfaction maps a rating to its label. The mapping is fixed and
// non-overlapping.
func Satisfaction(rating int) string {
	switch rating {
	case 1:
		return "Very Dissatisfied"
	case 2:
		return "Dissatisfied"
	case 3:
		return "Neutral"
	case 4:
		return "Satisfied"
	case 5:
		return "Very Satisfied"
	default:
		return "Unrated"
	}
}
