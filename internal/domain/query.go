package domain

import (
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort orders accepted by ProductQuery.
const (
	SortName      = "name"
	SortPriceLow  = "price-low"
	SortPriceHigh = "price-high"
	SortRating    = "rating"
)

// ProductQuery filters and orders marketplace products. Zero values match
// everything and sort by name.
type ProductQuery struct {
	Category string
	Search   string
	TaskID   string
	Sort     string
}

func (q ProductQuery) matches(p Product) bool {
	if q.Category != "" && q.Category != "all" && p.Category != q.Category {
		return false
	}
	if q.Search != "" {
		term := strings.ToLower(q.Search)
		if !strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			return false
		}
	}
	if q.TaskID != "" && !p.RelatedTo(q.TaskID) {
		return false
	}
	return true
}

// Apply returns the matching products in the requested order. The input is
// not modified.
func (q ProductQuery) Apply(products []Product) []Product {
	out := make([]Product, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			out = append(out, p)
		}
	}

	switch q.Sort {
	case SortPriceLow:
		slices.SortStableFunc(out, func(a, b Product) int { return a.Price.Cmp(b.Price) })
	case SortPriceHigh:
		slices.SortStableFunc(out, func(a, b Product) int { return b.Price.Cmp(a.Price) })
	case SortRating:
		slices.SortStableFunc(out, func(a, b Product) int {
			switch {
			case a.Rating > b.Rating:
				return -1
			case a.Rating < b.Rating:
				return 1
			}
			return 0
		})
	default:
		col := collate.New(language.English, collate.IgnoreCase)
		slices.SortStableFunc(out, func(a, b Product) int { return col.CompareString(a.Name, b.Name) })
	}
	return out
}
