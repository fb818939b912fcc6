package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"emberguard/internal/domain"
)

// ErrEmptyCart indicates an order was placed with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// GuestCustomer labels orders placed without a login.
const GuestCustomer = "guest"

// CheckoutService prices carts and records orders.
type CheckoutService struct {
	workspaces domain.WorkspaceRepository
	now        func() time.Time
	newID      func() string
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(workspaces domain.WorkspaceRepository) *CheckoutService {
	return &CheckoutService{
		workspaces: workspaces,
		now:        time.Now,
		newID:      func() string { return uuid.NewString() },
	}
}

// Summary prices the session's cart.
func (s *CheckoutService) Summary(ctx context.Context, sid string) (domain.OrderSummary, error) {
	var sum domain.OrderSummary
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		sum = domain.Summarize(&ws.Cart)
		return nil
	})
	return sum, err
}

// PlaceOrder records the cart as an order, then empties and closes the cart.
// An empty customer is recorded as GuestCustomer.
func (s *CheckoutService) PlaceOrder(ctx context.Context, sid, customer string) (domain.Order, error) {
	if customer == "" {
		customer = GuestCustomer
	}
	var order domain.Order
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		if len(ws.Cart.Items) == 0 {
			return ErrEmptyCart
		}
		snapshot := ws.Cart.Clone()
		order = domain.Order{
			ID:       s.newID(),
			Customer: customer,
			Items:    snapshot.Items,
			Summary:  domain.Summarize(&snapshot),
			PlacedAt: s.now().UTC(),
		}
		ws.Orders = append(ws.Orders, order)
		ws.Cart.Clear()
		ws.Cart.SetOpen(false)
		return nil
	})
	return order, err
}

// Orders returns the session's order history, oldest first.
func (s *CheckoutService) Orders(ctx context.Context, sid string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		out = append(out, ws.Orders...)
		return nil
	})
	return out, err
}
