package entity

import "github.com/shopspring/decimal"

// CartLine is a single product selection in a cart. Quantity is always >= 1;
// the subtotal is recomputed from the product's current price on every
// mutation, so it never goes stale while the cart is open.
type CartLine struct {
	Product  Product         `json:"product"`
	Quantity int             `json:"quantity"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// Cart holds the in-progress selection for a terminal session. It is pure
// in-memory state, never persisted, and is NOT safe for concurrent use:
// each cart has a single writer (the session that owns it).
type Cart struct {
	lines []*CartLine
	index map[uint]*CartLine // by product ID; one line per product
}

// NewCart creates an empty cart.
func NewCart() *Cart {
	return &Cart{index: make(map[uint]*CartLine)}
}

// AddLine adds quantity units of a product. If the product is already in the
// cart the existing line's quantity is incremented and its subtotal
// recomputed from the given (current) price; no duplicate line is created.
// Non-positive quantities are ignored.
func (c *Cart) AddLine(product Product, quantity int) {
	if quantity <= 0 {
		return
	}
	if line, ok := c.index[product.ID]; ok {
		line.Product = product
		line.Quantity += quantity
		line.Subtotal = product.Price.Mul(decimal.NewFromInt(int64(line.Quantity)))
		return
	}
	line := &CartLine{
		Product:  product,
		Quantity: quantity,
		Subtotal: product.Price.Mul(decimal.NewFromInt(int64(quantity))),
	}
	c.lines = append(c.lines, line)
	c.index[product.ID] = line
}

// UpdateQuantity sets the quantity of an existing line. A quantity <= 0
// removes the line instead of keeping a zero or negative entry.
func (c *Cart) UpdateQuantity(productID uint, quantity int) {
	if quantity <= 0 {
		c.RemoveLine(productID)
		return
	}
	line, ok := c.index[productID]
	if !ok {
		return
	}
	line.Quantity = quantity
	line.Subtotal = line.Product.Price.Mul(decimal.NewFromInt(int64(quantity)))
}

// RemoveLine removes the line for a product; no-op when absent.
func (c *Cart) RemoveLine(productID uint) {
	if _, ok := c.index[productID]; !ok {
		return
	}
	delete(c.index, productID)
	for i, line := range c.lines {
		if line.Product.ID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			break
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
	c.index = make(map[uint]*CartLine)
}

// Total is the sum of all line subtotals.
func (c *Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range c.lines {
		total = total.Add(line.Subtotal)
	}
	return total
}

// LineCount is the number of distinct lines.
func (c *Cart) LineCount() int {
	return len(c.lines)
}

// ItemCount is the sum of quantities across all lines. The UI badge shows
// this, not LineCount.
func (c *Cart) ItemCount() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Lines returns the cart lines in insertion order.
func (c *Cart) Lines() []CartLine {
	out := make([]CartLine, len(c.lines))
	for i, line := range c.lines {
		out[i] = *line
	}
	return out
}

// Line returns the line for a product, if present.
func (c *Cart) Line(productID uint) (CartLine, bool) {
	line, ok := c.index[productID]
	if !ok {
		return CartLine{}, false
	}
	return *line, true
}
