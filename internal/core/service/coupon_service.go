package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

// CouponService implements coupon lookup and validation.
type CouponService struct {
	repo ports.CouponRepository
	log  zerolog.Logger
	// now is swappable in tests.
	now func() time.Time
}

func NewCouponService(repo ports.CouponRepository, log zerolog.Logger) *CouponService {
	return &CouponService{repo: repo, log: log, now: time.Now}
}

// ActiveFor returns the user's active coupon, or nil when none exists.
func (s *CouponService) ActiveFor(ctx context.Context, userID string) (*domain.Coupon, error) {
	coupon, err := s.repo.FindActiveByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrCouponNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return coupon, nil
}

// Validate checks that the code names an active coupon owned by the user and
// that it has not expired. A coupon is valid while now < ExpirationDate; an
// expired one is deactivated and reported as expired.
func (s *CouponService) Validate(ctx context.Context, code, userID string) (*domain.Coupon, error) {
	coupon, err := s.repo.FindActiveByCode(ctx, code, userID)
	if err != nil {
		return nil, err
	}

	if coupon.Expired(s.now().UTC()) {
		if err := s.repo.Deactivate(ctx, coupon.Code, userID); err != nil {
			s.log.Warn().Err(err).Str("code", coupon.Code).Msg("failed to deactivate expired coupon")
		}
		return nil, domain.ErrCouponExpired
	}
	return coupon, nil
}
