package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// ErrInvalidProduct is returned when a product without an ID or with a
// negative price is added to a cart.
var ErrInvalidProduct = errors.New("product must have an id and a non-negative price")

// CartItem pairs a product with a positive quantity.
type CartItem struct {
	Product  Product `json:"product"`
	Quantity int     `json:"quantity"`
}

// LineTotal returns price × quantity.
func (i CartItem) LineTotal() decimal.Decimal {
	return i.Product.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered set of line items, at most one per product ID, plus the
// open/closed flag of the cart panel. The zero value is an empty, closed cart.
type Cart struct {
	Items []CartItem `json:"items"`
	Open  bool       `json:"open"`
}

func (c *Cart) indexOf(productID string) int {
	for i := range c.Items {
		if c.Items[i].Product.ID == productID {
			return i
		}
	}
	return -1
}

// Add puts quantity units of p in the cart. Quantities below one fall back to
// one. An existing line for the same product ID is incremented in place;
// otherwise a new line is appended. Add never opens the cart panel.
func (c *Cart) Add(p Product, quantity int) error {
	if !p.Valid() {
		return ErrInvalidProduct
	}
	if quantity < 1 {
		quantity = 1
	}
	if i := c.indexOf(p.ID); i >= 0 {
		c.Items[i].Quantity += quantity
		return nil
	}
	c.Items = append(c.Items, CartItem{Product: p, Quantity: quantity})
	return nil
}

// UpdateQuantity sets the quantity of productID. A quantity of zero or less
// removes the line. It reports whether a line for productID existed.
func (c *Cart) UpdateQuantity(productID string, quantity int) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	if quantity <= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
		return true
	}
	c.Items[i].Quantity = quantity
	return true
}

// Remove drops the line for productID and reports whether it was present.
func (c *Cart) Remove(productID string) bool {
	i := c.indexOf(productID)
	if i < 0 {
		return false
	}
	c.Items = append(c.Items[:i], c.Items[i+1:]...)
	return true
}

// Clear empties the cart. The open flag is left as is.
func (c *Cart) Clear() {
	c.Items = nil
}

// Toggle flips the open flag and returns the new value.
func (c *Cart) Toggle() bool {
	c.Open = !c.Open
	return c.Open
}

// SetOpen shows or hides the cart panel.
func (c *Cart) SetOpen(open bool) {
	c.Open = open
}

// Item returns the line for productID.
func (c *Cart) Item(productID string) (CartItem, bool) {
	if i := c.indexOf(productID); i >= 0 {
		return c.Items[i], true
	}
	return CartItem{}, false
}

// TotalItems returns the sum of all quantities.
func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// TotalPrice returns the sum of price × quantity, rounded to cents.
func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.LineTotal())
	}
	return total.Round(2)
}

// Clone returns a copy whose item slice is not shared with c. Products are
// immutable and are shared.
func (c *Cart) Clone() Cart {
	out := Cart{Open: c.Open}
	if len(c.Items) > 0 {
		out.Items = make([]CartItem, len(c.Items))
		copy(out.Items, c.Items)
	}
	return out
}
