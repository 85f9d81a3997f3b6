// Package cart holds the in-memory shopping cart: ordered product/quantity
// lines with at most one line per product id. Carts are never persisted;
// each enclosing view (or HTTP request) builds and discards its own.
package cart

import (
	"github.com/shopspring/decimal"

	"github.com/midnightsystems/linkbio-api/internal/domain/product"
)

// Line is one cart entry: a product and how many of it.
type Line struct {
	Product  product.Product
	Quantity int
}

// LineTotal returns price multiplied by quantity.
func (l Line) LineTotal() decimal.Decimal {
	return l.Product.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart aggregates lines in insertion order. The zero value is an empty,
// usable cart. Cart is not safe for concurrent use: all mutations happen
// on a single event loop (or within a single request).
type Cart struct {
	lines []Line
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{}
}

// Add puts one unit of p into the cart. Adding a product that is already
// present increments its line quantity instead of appending a second line.
func (c *Cart) Add(p product.Product) {
	c.AddQuantity(p, 1)
}

// AddQuantity puts n units of p into the cart, aggregating with an existing
// line for the same product id. Calls with n < 1 are ignored.
func (c *Cart) AddQuantity(p product.Product, n int) {
	if n < 1 {
		return
	}
	if i := c.find(p.ID); i >= 0 {
		c.lines[i].Quantity += n
		return
	}
	c.lines = append(c.lines, Line{Product: p, Quantity: n})
}

// UpdateQuantity adjusts the quantity of the line for id by delta, clamped
// to a minimum of 1. It never removes the line; use Remove for that.
// Unknown ids are a no-op.
func (c *Cart) UpdateQuantity(id string, delta int) {
	i := c.find(id)
	if i < 0 {
		return
	}
	q := c.lines[i].Quantity + delta
	if q < 1 {
		q = 1
	}
	c.lines[i].Quantity = q
}

// Remove deletes the line for id entirely. Unknown ids are a no-op.
func (c *Cart) Remove(id string) {
	i := c.find(id)
	if i < 0 {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Lines returns a copy of the cart lines in insertion order.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len returns the number of distinct lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// Total sums price times quantity across all lines. It is recomputed on
// every call; the cart caches nothing.
func (c *Cart) Total() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.LineTotal())
	}
	return sum
}

func (c *Cart) find(id string) int {
	for i, l := range c.lines {
		if l.Product.ID == id {
			return i
		}
	}
	return -1
}
