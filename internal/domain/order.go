package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	freeShippingOver = decimal.NewFromInt(100)
	flatShipping     = decimal.RequireFromString("9.99")
	salesTaxRate     = decimal.RequireFromString("0.08")
)

// OrderSummary is the price breakdown shown at checkout.
type OrderSummary struct {
	TotalItems int             `json:"totalItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	Shipping   decimal.Decimal `json:"shipping"`
	Tax        decimal.Decimal `json:"tax"`
	Total      decimal.Decimal `json:"total"`
	FreeShip   bool            `json:"freeShipping"`
}

// Summarize prices a cart. Shipping is free above $100, otherwise a flat
// $9.99. Tax is 8% of the subtotal, rounded to cents.
func Summarize(c *Cart) OrderSummary {
	sub := c.TotalPrice()
	ship := flatShipping
	if sub.GreaterThan(freeShippingOver) {
		ship = decimal.Zero
	}
	tax := sub.Mul(salesTaxRate).Round(2)
	return OrderSummary{
		TotalItems: c.TotalItems(),
		Subtotal:   sub,
		Shipping:   ship,
		Tax:        tax,
		Total:      sub.Add(ship).Add(tax),
		FreeShip:   ship.IsZero(),
	}
}

// Order is a placed checkout. No payment is taken.
type Order struct {
	ID       string       `json:"id"`
	Customer string       `json:"customer"`
	Items    []CartItem   `json:"items"`
	Summary  OrderSummary `json:"summary"`
	PlacedAt time.Time    `json:"placedAt"`
}
