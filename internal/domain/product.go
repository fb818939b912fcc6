// Package domain contains the core business entities and interfaces.
package domain

import (
	"slices"

	"github.com/shopspring/decimal"
)

// Product is an immutable catalog entry.
type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageUrl"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Rating       float64         `json:"rating"`
	ReviewCount  int             `json:"reviewCount"`
	InStock      bool            `json:"inStock"`
	Features     []string        `json:"features"`
	RelatedTasks []string        `json:"relatedTasks"`
}

// Valid reports whether p can be placed in a cart.
func (p Product) Valid() bool {
	return p.ID != "" && !p.Price.IsNegative()
}

// RelatedTo reports whether the product is recommended for taskID.
func (p Product) RelatedTo(taskID string) bool {
	return slices.Contains(p.RelatedTasks, taskID)
}

// Bundle groups products under a single discounted price.
type Bundle struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Category      string          `json:"category"`
	Products      []Product       `json:"products"`
	OriginalPrice decimal.Decimal `json:"originalPrice"`
	BundlePrice   decimal.Decimal `json:"bundlePrice"`
	Savings       decimal.Decimal `json:"savings"`
}

// Consistent reports whether BundlePrice equals OriginalPrice minus Savings.
// The catalog does not enforce this.
func (b Bundle) Consistent() bool {
	return b.OriginalPrice.Sub(b.Savings).Equal(b.BundlePrice)
}
