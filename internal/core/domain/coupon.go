package domain

import (
	"errors"
	"time"
)

var ErrCouponNotFound = errors.New("coupon not found")
var ErrCouponExpired = errors.New("coupon expired")

// Coupon is a per-user percentage discount. At most one active coupon per
// user is intended; the checkout service only mints a reward coupon when the
// user has none.
type Coupon struct {
	ID                 string    `json:"id"`
	Code               string    `json:"code"`
	DiscountPercentage int       `json:"discount_percentage"`
	ExpirationDate     time.Time `json:"expiration_date"`
	IsActive           bool      `json:"is_active"`
	UserID             string    `json:"user_id"`
}

// Expired reports whether the coupon's validity window has passed.
// A coupon is valid while now < ExpirationDate.
func (c *Coupon) Expired(now time.Time) bool {
	return !now.Before(c.ExpirationDate)
}
