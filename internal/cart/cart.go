// Package cart implements the per-session cart accumulator. A cart lives in
// gateway memory only; it is never written to durable storage and does not
// survive a restart, matching the ephemeral navigation-state semantics of
// the checkout flow.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/supplyline-web/server/internal/catalog"
)

// Line is one product in the cart with its chosen quantity. Quantity is
// always >= 1; a decrement to zero removes the line.
type Line struct {
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price x quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart accumulates order lines keyed by product id. At most one line ever
// references the same product id; the Add/Remove contract enforces it.
// Cart is not safe for concurrent use; the Store serialises access.
type Cart struct {
	lines []Line
}

// Add increments the quantity for the product's line, inserting a new line
// with quantity 1 when none exists.
func (c *Cart) Add(p catalog.Product) {
	for i := range c.lines {
		if c.lines[i].Product.ID == p.ID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: 1})
}

// Remove decrements the quantity for productID, deleting the line entirely
// when it reaches zero. Removing an absent product is a no-op.
func (c *Cart) Remove(productID string) {
	for i := range c.lines {
		if c.lines[i].Product.ID != productID {
			continue
		}
		c.lines[i].Quantity--
		if c.lines[i].Quantity <= 0 {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
		}
		return
	}
}

// Total recomputes the cart total from its lines on every call. Nothing is
// cached, so the total can never go stale.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// Lines returns a copy of the cart's lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct product lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Empty reports whether the cart has no lines.
func (c *Cart) Empty() bool {
	return len(c.lines) == 0
}
