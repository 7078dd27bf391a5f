package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallshelly/storekiosk/pkg/cart"
	"github.com/marshallshelly/storekiosk/pkg/catalog"
	"github.com/marshallshelly/storekiosk/pkg/money"
)

func filledLedger(t *testing.T) *cart.Ledger {
	t.Helper()
	c := cart.NewLedger()
	require.NoError(t, c.AddOrIncrement(catalog.Product{ID: 1, Name: "Hex Bolt", Price: 10000, Quantity: 5}, 2))
	require.NoError(t, c.AddOrIncrement(catalog.Product{ID: 2, Name: "Wing Nut", Price: 5000, Quantity: 5}, 1))
	return c
}

func TestFlow_Begin(t *testing.T) {
	t.Run("empty cart is refused", func(t *testing.T) {
		flow := NewFlow()

		_, err := flow.Begin(cart.NewLedger())

		assert.ErrorIs(t, err, ErrEmptyCart)
		assert.Equal(t, StateIdle, flow.State())
	})

	t.Run("serializes ledger into order payload", func(t *testing.T) {
		flow := NewFlow()
		ledger := filledLedger(t)

		order, err := flow.Begin(ledger)

		require.NoError(t, err)
		assert.Equal(t, StateSubmitting, flow.State())
		assert.NotEmpty(t, order.Reference)
		require.Len(t, order.Items, 2)
		assert.Equal(t, money.Centavos(25000), order.Total)
		assert.Equal(t, ledger.Total(), order.Total, "payload total must match the ledger exactly")
	})

	t.Run("re-entrant submit is refused", func(t *testing.T) {
		flow := NewFlow()
		ledger := filledLedger(t)

		_, err := flow.Begin(ledger)
		require.NoError(t, err)

		_, err = flow.Begin(ledger)
		assert.ErrorIs(t, err, ErrSubmitInFlight)
	})
}

func TestFlow_Succeed(t *testing.T) {
	flow := NewFlow()
	ledger := filledLedger(t)

	_, err := flow.Begin(ledger)
	require.NoError(t, err)

	flow.Succeed(ledger, "ORD-42")

	assert.Equal(t, StateSuccess, flow.State())
	assert.Equal(t, "ORD-42", flow.OrderID())
	assert.True(t, ledger.Empty(), "ledger must be cleared on success")
}

func TestFlow_Fail(t *testing.T) {
	flow := NewFlow()
	ledger := filledLedger(t)

	_, err := flow.Begin(ledger)
	require.NoError(t, err)

	flow.Fail()

	assert.Equal(t, StateFailed, flow.State())
	assert.Equal(t, 2, ledger.Len(), "ledger must be preserved on failure")

	// Failed returns to Idle for a retry.
	flow.Reset()
	assert.Equal(t, StateIdle, flow.State())

	_, err = flow.Begin(ledger)
	assert.NoError(t, err)
}

func TestFlow_TerminalTransitionsIgnoredOutsideSubmitting(t *testing.T) {
	flow := NewFlow()
	ledger := filledLedger(t)

	flow.Succeed(ledger, "ORD-1")
	assert.Equal(t, StateIdle, flow.State())
	assert.Equal(t, 2, ledger.Len())

	flow.Fail()
	assert.Equal(t, StateIdle, flow.State())
}
