// Package checkout drives the cart-to-order submission state machine.
package checkout

import (
	"errors"

	"github.com/google/uuid"

	"github.com/marshallshelly/storekiosk/pkg/api"
	"github.com/marshallshelly/storekiosk/pkg/cart"
)

var (
	// ErrEmptyCart is returned when checkout is attempted with no lines.
	// No backend call is made.
	ErrEmptyCart = errors.New("cart is empty")

	// ErrSubmitInFlight is returned when a submit is attempted while another
	// one is outstanding. At most one checkout request is in flight at a time.
	ErrSubmitInFlight = errors.New("checkout already in progress")
)

// State is the checkout flow's current state.
type State int

const (
	StateIdle State = iota
	StateSubmitting
	StateSuccess
	StateFailed
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateSubmitting:
		return "submitting"
	case StateSuccess:
		return "success"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Flow is the checkout state machine: Idle -> Submitting -> Success | Failed.
// Failed returns to Idle so the customer can retry with the cart intact.
type Flow struct {
	state   State
	orderID string
}

// NewFlow returns a flow in the Idle state.
func NewFlow() *Flow {
	return &Flow{state: StateIdle}
}

// State returns the current state.
func (f *Flow) State() State {
	return f.state
}

// OrderID returns the backend order identifier after a successful submit.
func (f *Flow) OrderID() string {
	return f.orderID
}

// Begin validates the entry guards and serializes the ledger into an order
// payload. On success the flow is Submitting; the caller performs the backend
// call and reports back via Succeed or Fail.
func (f *Flow) Begin(ledger *cart.Ledger) (api.Order, error) {
	if f.state == StateSubmitting {
		return api.Order{}, ErrSubmitInFlight
	}
	if ledger.Empty() {
		return api.Order{}, ErrEmptyCart
	}

	lines := ledger.Lines()
	items := make([]api.OrderItem, len(lines))
	for i, l := range lines {
		items[i] = api.OrderItem{
			Product: api.OrderProduct{
				ID:    l.Product.ID,
				Name:  l.Product.Name,
				Price: l.Product.Price,
			},
			Quantity: l.Quantity,
			Price:    l.Product.Price,
		}
	}

	f.state = StateSubmitting
	f.orderID = ""
	return api.Order{
		Reference: uuid.NewString(),
		Items:     items,
		Total:     ledger.Total(),
	}, nil
}

// Succeed records the backend order id and clears the ledger.
func (f *Flow) Succeed(ledger *cart.Ledger, orderID string) {
	if f.state != StateSubmitting {
		return
	}
	f.state = StateSuccess
	f.orderID = orderID
	ledger.Clear()
}

// Fail returns the flow to Idle, leaving the ledger untouched for a retry.
func (f *Flow) Fail() {
	if f.state != StateSubmitting {
		return
	}
	f.state = StateFailed
}

// Reset returns the flow to Idle from any terminal state.
func (f *Flow) Reset() {
	if f.state == StateSubmitting {
		return
	}
	f.state = StateIdle
	f.orderID = ""
}
