// Package cart implements the kiosk's in-memory cart ledger.
package cart

import (
	"errors"
	"fmt"

	"github.com/marshallshelly/storekiosk/pkg/catalog"
	"github.com/marshallshelly/storekiosk/pkg/money"
)

var (
	// ErrInsufficientStock is returned when a requested quantity would exceed
	// the product's available quantity. The ledger is left unchanged.
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")

	// ErrNotInCart is returned when an operation references a product that has
	// no line in the ledger.
	ErrNotInCart = errors.New("product not in cart")
)

// Line is one cart entry. The product snapshot is kept so totals and the
// checkout payload use the price the customer saw.
type Line struct {
	Product  catalog.Product
	Quantity int
}

// Subtotal returns price x quantity for this line.
func (l Line) Subtotal() money.Centavos {
	return l.Product.Price.Mul(l.Quantity)
}

// Ledger maps products to requested quantities, preserving insertion order.
// Invariant: every line satisfies Quantity <= Product.Quantity. Violating
// operations are rejected, never clamped.
type Ledger struct {
	lines []Line
	index map[int64]int
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{index: make(map[int64]int)}
}

// AddOrIncrement inserts a new line with the given quantity or increments an
// existing one. It fails with ErrInsufficientStock when the resulting
// quantity would exceed availability.
func (c *Ledger) AddOrIncrement(p catalog.Product, qty int) error {
	if qty <= 0 {
		return fmt.Errorf("quantity must be positive, got %d", qty)
	}

	if i, ok := c.index[p.ID]; ok {
		next := c.lines[i].Quantity + qty
		if next > p.Quantity {
			return ErrInsufficientStock
		}
		c.lines[i].Quantity = next
		c.lines[i].Product = p
		return nil
	}

	if qty > p.Quantity {
		return ErrInsufficientStock
	}
	c.index[p.ID] = len(c.lines)
	c.lines = append(c.lines, Line{Product: p, Quantity: qty})
	return nil
}

// SetQuantity overwrites a line's quantity. A quantity of zero or less
// removes the line. An over-stock quantity is rejected and the prior
// quantity kept.
func (c *Ledger) SetQuantity(p catalog.Product, qty int) error {
	if qty <= 0 {
		c.Remove(p.ID)
		return nil
	}
	if qty > p.Quantity {
		return ErrInsufficientStock
	}

	i, ok := c.index[p.ID]
	if !ok {
		return ErrNotInCart
	}
	c.lines[i].Quantity = qty
	c.lines[i].Product = p
	return nil
}

// Remove deletes the line for the given product id unconditionally.
func (c *Ledger) Remove(productID int64) {
	i, ok := c.index[productID]
	if !ok {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
	delete(c.index, productID)
	for id, pos := range c.index {
		if pos > i {
			c.index[id] = pos - 1
		}
	}
}

// Total sums price x quantity over all lines. Computed in minor units, so it
// matches the checkout payload exactly.
func (c *Ledger) Total() money.Centavos {
	var total money.Centavos
	for _, l := range c.lines {
		total += l.Subtotal()
	}
	return total
}

// Clear empties the ledger. Called after a successful checkout and on idle
// timeout.
func (c *Ledger) Clear() {
	c.lines = nil
	c.index = make(map[int64]int)
}

// Len returns the number of lines.
func (c *Ledger) Len() int {
	return len(c.lines)
}

// Empty reports whether the ledger has no lines.
func (c *Ledger) Empty() bool {
	return len(c.lines) == 0
}

// Lines returns a copy of the lines in insertion order.
func (c *Ledger) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Quantity returns the requested quantity for a product, zero if absent.
func (c *Ledger) Quantity(productID int64) int {
	if i, ok := c.index[productID]; ok {
		return c.lines[i].Quantity
	}
	return 0
}
