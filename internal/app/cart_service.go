package app

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"emberguard/internal/domain"
)

var (
	// ErrProductNotFound indicates that no catalog product has the given ID.
	ErrProductNotFound = errors.New("product not found")
	// ErrBundleNotFound indicates that no catalog bundle has the given ID.
	ErrBundleNotFound = errors.New("bundle not found")
	// ErrCartItemNotFound indicates that the cart has no line for the product.
	ErrCartItemNotFound = errors.New("cart item not found")
)

// CartView is a snapshot of a cart with its derived totals.
type CartView struct {
	Items      []domain.CartItem `json:"items"`
	TotalItems int               `json:"totalItems"`
	TotalPrice decimal.Decimal   `json:"totalPrice"`
	Open       bool              `json:"open"`
}

func viewOf(c *domain.Cart) CartView {
	cp := c.Clone()
	if cp.Items == nil {
		cp.Items = []domain.CartItem{}
	}
	return CartView{
		Items:      cp.Items,
		TotalItems: cp.TotalItems(),
		TotalPrice: cp.TotalPrice(),
		Open:       cp.Open,
	}
}

// CartService applies cart operations to a session's workspace.
type CartService struct {
	catalog    *domain.Catalog
	workspaces domain.WorkspaceRepository
}

// NewCartService creates a new cart service.
func NewCartService(catalog *domain.Catalog, workspaces domain.WorkspaceRepository) *CartService {
	return &CartService{catalog: catalog, workspaces: workspaces}
}

// mutate runs fn on the session's cart and returns the resulting view.
func (s *CartService) mutate(ctx context.Context, sid string, fn func(*domain.Cart) error) (CartView, error) {
	var view CartView
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		if err := fn(&ws.Cart); err != nil {
			return err
		}
		view = viewOf(&ws.Cart)
		return nil
	})
	return view, err
}

// Get returns the session's cart.
func (s *CartService) Get(ctx context.Context, sid string) (CartView, error) {
	return s.mutate(ctx, sid, func(*domain.Cart) error { return nil })
}

// Add puts quantity units of a catalog product in the cart, merging with an
// existing line. Quantities below 1 add a single unit.
func (s *CartService) Add(ctx context.Context, sid, productID string, quantity int) (CartView, error) {
	p, ok := s.catalog.Product(productID)
	if !ok {
		return CartView{}, ErrProductNotFound
	}
	return s.mutate(ctx, sid, func(c *domain.Cart) error { return c.Add(p, quantity) })
}

// AddBundle adds one unit of every product in the bundle. The cart is left
// untouched if any bundle product is invalid.
func (s *CartService) AddBundle(ctx context.Context, sid, bundleID string) (CartView, error) {
	b, ok := s.catalog.Bundle(bundleID)
	if !ok {
		return CartView{}, ErrBundleNotFound
	}
	for _, p := range b.Products {
		if !p.Valid() {
			return CartView{}, domain.ErrInvalidProduct
		}
	}
	return s.mutate(ctx, sid, func(c *domain.Cart) error {
		for _, p := range b.Products {
			if err := c.Add(p, 1); err != nil {
				return err
			}
		}
		return nil
	})
}

// UpdateQuantity sets a line's quantity; zero or less removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, sid, productID string, quantity int) (CartView, error) {
	return s.mutate(ctx, sid, func(c *domain.Cart) error {
		if !c.UpdateQuantity(productID, quantity) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// Remove deletes a line from the cart.
func (s *CartService) Remove(ctx context.Context, sid, productID string) (CartView, error) {
	return s.mutate(ctx, sid, func(c *domain.Cart) error {
		if !c.Remove(productID) {
			return ErrCartItemNotFound
		}
		return nil
	})
}

// Clear empties the cart without changing its visibility.
func (s *CartService) Clear(ctx context.Context, sid string) (CartView, error) {
	return s.mutate(ctx, sid, func(c *domain.Cart) error {
		c.Clear()
		return nil
	})
}

// Toggle flips the cart panel's visibility.
func (s *CartService) Toggle(ctx context.Context, sid string) (CartView, error) {
	return s.mutate(ctx, sid, func(c *domain.Cart) error {
		c.Toggle()
		return nil
	})
}

// SetOpen shows or hides the cart panel.
func (s *CartService) SetOpen(ctx context.Context, sid string, open bool) (CartView, error) {
	return s.mutate(ctx, sid, func(c *domain.Cart) error {
		c.SetOpen(open)
		return nil
	})
}
