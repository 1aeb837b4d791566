package domain

import "time"

// CartLine is one (product, quantity) pair in a cart. Subtotal always equals
// quantity times the unit price seen at the last write.
type CartLine struct {
	ID        int64
	ProductID int64
	Quantity  int
	Subtotal  int64
}

// Cart belongs to exactly one user and is created lazily on the first write.
type Cart struct {
	ID        int64
	UserID    int64
	Lines     []CartLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewCart(userID int64) *Cart {
	now := time.Now()
	return &Cart{
		UserID:    userID,
		Lines:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetLineQuantity replaces the line's quantity outright (never increments) and
// recomputes the subtotal from the current unit price. A quantity at or below
// zero removes the line instead of storing it.
func (c *Cart) SetLineQuantity(productID int64, quantity int, unitPrice int64) {
	if quantity <= 0 {
		c.RemoveLine(productID)
		return
	}
	subtotal := int64(quantity) * unitPrice
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			c.Lines[i].Subtotal = subtotal
			c.UpdatedAt = time.Now()
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: productID,
		Quantity:  quantity,
		Subtotal:  subtotal,
	})
	c.UpdatedAt = time.Now()
}

// RemoveLine drops the matching line. Removing a line that is not in the cart
// is a no-op, not an error.
func (c *Cart) RemoveLine(productID int64) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

func (c *Cart) Line(productID int64) (CartLine, bool) {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line, true
		}
	}
	return CartLine{}, false
}
