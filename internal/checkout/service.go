// Package checkout hands the cart's contents to the external order platform
// and clears the cart once the platform accepts it. The platform itself —
// payments, order records, inventory — is not this service's concern.
package checkout

import (
	"context"
	"fmt"

	"github.com/maisonvela/storefront-backend/internal/cart"
	pkgerrors "github.com/maisonvela/storefront-backend/pkg/errors"
	"github.com/maisonvela/storefront-backend/pkg/logger"
)

// Order is the snapshot handed to the platform at checkout.
type Order struct {
	SessionID  string
	Items      []cart.Item
	TotalItems int
	TotalPrice float64
}

// Receipt is returned once the platform accepts the order.
type Receipt struct {
	OrderRef   string
	TotalItems int
	TotalPrice float64
}

// OrderPlacer is the boundary to the backend platform's order creation.
type OrderPlacer interface {
	PlaceOrder(ctx context.Context, order Order) (string, error)
}

// Service executes checkout for a session's cart.
type Service interface {
	Execute(ctx context.Context, sessionID string) (*Receipt, error)
}

type cartSource interface {
	ForSession(sessionID string) *cart.Store
}

type service struct {
	carts  cartSource
	placer OrderPlacer
	logg   *logger.Logger
}

// NewService builds a checkout service over the session cart registry and the
// platform boundary.
func NewService(carts cartSource, placer OrderPlacer, logg *logger.Logger) (Service, error) {
	if carts == nil {
		return nil, fmt.Errorf("cart source required")
	}
	if placer == nil {
		return nil, fmt.Errorf("order placer required")
	}
	return &service{carts: carts, placer: placer, logg: logg}, nil
}

// Execute submits the session's cart to the platform. The cart is cleared
// only after the platform accepts; a rejected order leaves it intact so the
// shopper can retry.
func (s *service) Execute(ctx context.Context, sessionID string) (*Receipt, error) {
	store := s.carts.ForSession(sessionID)

	items := store.Items()
	if len(items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := Order{
		SessionID:  sessionID,
		Items:      items,
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}

	ref, err := s.placer.PlaceOrder(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
	}

	store.Clear()

	if s.logg != nil {
		ctx = s.logg.WithFields(ctx, map[string]any{
			"order_ref":   ref,
			"total_items": order.TotalItems,
		})
		s.logg.Info(ctx, "checkout.completed")
	}

	return &Receipt{
		OrderRef:   ref,
		TotalItems: order.TotalItems,
		TotalPrice: order.TotalPrice,
	}, nil
}
