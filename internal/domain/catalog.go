package domain

import (
	"context"
	"errors"
	"fmt"
)

// Catalog is the read-only set of products, bundles and tasks loaded at
// startup.
type Catalog struct {
	Products []Product
	Bundles  []Bundle
	Tasks    []HardeningTask
}

// CatalogSource is the port for loading the catalog.
type CatalogSource interface {
	LoadCatalog(ctx context.Context) (*Catalog, error)
}

// Product looks up a product by ID.
func (c *Catalog) Product(id string) (Product, bool) {
	for _, p := range c.Products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

// Bundle looks up a bundle by ID.
func (c *Catalog) Bundle(id string) (Bundle, bool) {
	for _, b := range c.Bundles {
		if b.ID == id {
			return b, true
		}
	}
	return Bundle{}, false
}

// ProductsForTask returns the products whose RelatedTasks include taskID, in
// catalog order.
func (c *Catalog) ProductsForTask(taskID string) []Product {
	out := []Product{}
	for _, p := range c.Products {
		if p.RelatedTo(taskID) {
			out = append(out, p)
		}
	}
	return out
}

// Categories returns "all" followed by each distinct product category in
// first-seen order.
func (c *Catalog) Categories() []string {
	seen := map[string]bool{}
	out := []string{"all"}
	for _, p := range c.Products {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Validate returns problems found in the catalog. Duplicate IDs, invalid
// products and invalid tasks are hard errors for the caller to act on;
// dangling task references and inconsistent bundle prices are reported but
// tolerated.
func (c *Catalog) Validate() (warnings []string, err error) {
	products := map[string]bool{}
	for _, p := range c.Products {
		if !p.Valid() {
			return nil, fmt.Errorf("catalog: invalid product %q", p.ID)
		}
		if products[p.ID] {
			return nil, fmt.Errorf("catalog: duplicate product id %q", p.ID)
		}
		products[p.ID] = true
	}
	tasks := map[string]bool{}
	for _, t := range c.Tasks {
		if t.ID == "" {
			return nil, errors.New("catalog: task with empty id")
		}
		if t.ResiliencyGain < 0 {
			return nil, fmt.Errorf("catalog: task %q has negative resiliency gain %d", t.ID, t.ResiliencyGain)
		}
		if tasks[t.ID] {
			return nil, fmt.Errorf("catalog: duplicate task id %q", t.ID)
		}
		tasks[t.ID] = true
	}
	for _, p := range c.Products {
		for _, id := range p.RelatedTasks {
			if !tasks[id] {
				warnings = append(warnings, fmt.Sprintf("product %q references unknown task %q", p.ID, id))
			}
		}
	}
	for _, b := range c.Bundles {
		if !b.Consistent() {
			warnings = append(warnings, fmt.Sprintf("bundle %q price %s != %s - %s", b.ID, b.BundlePrice, b.OriginalPrice, b.Savings))
		}
	}
	return warnings, nil
}
