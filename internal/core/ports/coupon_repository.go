package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// CouponRepository defines persistence operations for per-user coupons.
type CouponRepository interface {
	Create(ctx context.Context, c *domain.Coupon) (*domain.Coupon, error)
	// FindActiveByUser returns the user's currently active coupon.
	FindActiveByUser(ctx context.Context, userID string) (*domain.Coupon, error)
	// FindActiveByCode looks up an active coupon scoped to (code, owning user).
	FindActiveByCode(ctx context.Context, code, userID string) (*domain.Coupon, error)
	// ExistsForUser reports whether the user owns any coupon, active or not.
	ExistsForUser(ctx context.Context, userID string) (bool, error)
	// Deactivate marks the coupon inactive. Missing coupons are not an error;
	// deactivation is best effort in both places it is used.
	Deactivate(ctx context.Context, code, userID string) error
}
