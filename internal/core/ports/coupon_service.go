package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// CouponService defines coupon use cases for the authenticated user.
type CouponService interface {
	// ActiveFor returns the user's active coupon, or nil when none exists.
	ActiveFor(ctx context.Context, userID string) (*domain.Coupon, error)
	// Validate checks a code scoped to the user. An unknown or foreign code
	// fails with domain.ErrCouponNotFound; a past expiration date fails with
	// domain.ErrCouponExpired and deactivates the coupon.
	Validate(ctx context.Context, code, userID string) (*domain.Coupon, error)
}
