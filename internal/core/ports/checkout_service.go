package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// CheckoutItemInput is one purchasable row as submitted by the client.
// Price is the unit price in dollars.
type CheckoutItemInput struct {
	ID       string
	Name     string
	Image    string
	Price    float64
	Quantity int
}

// CheckoutSessionResult is returned after opening a hosted session.
// TotalAmount is the post-discount total in dollars.
type CheckoutSessionResult struct {
	SessionID   string
	TotalAmount float64
}

// CheckoutService bridges local cart state and the payment processor.
type CheckoutService interface {
	// CreateSession validates the cart, applies an optional coupon, opens a
	// hosted payment session, and may mint a reward coupon as a side effect.
	CreateSession(ctx context.Context, userID string, items []CheckoutItemInput, couponCode string) (*CheckoutSessionResult, error)
	// ReconcileSession converts a completed payment session into a local
	// order, exactly once per session id.
	ReconcileSession(ctx context.Context, sessionID string) (*domain.Order, error)
}
