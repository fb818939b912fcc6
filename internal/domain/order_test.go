package domain_test

import (
	"testing"

	"emberguard/internal/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name                       string
		price                      string
		qty                        int
		subtotal, ship, tax, total string
		free                       bool
	}{
		{"under threshold pays shipping", "45.99", 1, "45.99", "9.99", "3.68", "59.66", false},
		{"exactly 100 still pays shipping", "25.00", 4, "100.00", "9.99", "8.00", "117.99", false},
		{"over threshold ships free", "45.99", 3, "137.97", "0.00", "11.04", "149.01", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var c domain.Cart
			if err := c.Add(product("1", tc.price), tc.qty); err != nil {
				t.Fatal(err)
			}
			s := domain.Summarize(&c)
			if got := s.Subtotal.StringFixed(2); got != tc.subtotal {
				t.Errorf("subtotal = %s; want %s", got, tc.subtotal)
			}
			if got := s.Shipping.StringFixed(2); got != tc.ship {
				t.Errorf("shipping = %s; want %s", got, tc.ship)
			}
			if got := s.Tax.StringFixed(2); got != tc.tax {
				t.Errorf("tax = %s; want %s", got, tc.tax)
			}
			if got := s.Total.StringFixed(2); got != tc.total {
				t.Errorf("total = %s; want %s", got, tc.total)
			}
			if s.FreeShip != tc.free {
				t.Errorf("freeShipping = %v; want %v", s.FreeShip, tc.free)
			}
		})
	}
}
