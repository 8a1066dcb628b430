package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/domain"
)

type stubCouponRepo struct {
	coupons []*domain.Coupon
	nextID  int
}

func (r *stubCouponRepo) Create(_ context.Context, c *domain.Coupon) (*domain.Coupon, error) {
	copy := *c
	r.nextID++
	copy.ID = fmt.Sprintf("coupon_%d", r.nextID)
	r.coupons = append(r.coupons, &copy)
	out := copy
	return &out, nil
}

func (r *stubCouponRepo) FindActiveByUser(_ context.Context, userID string) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.UserID == userID && c.IsActive {
			copy := *c
			return &copy, nil
		}
	}
	return nil, domain.ErrCouponNotFound
}

func (r *stubCouponRepo) FindActiveByCode(_ context.Context, code, userID string) (*domain.Coupon, error) {
	for _, c := range r.coupons {
		if c.Code == code && c.UserID == userID && c.IsActive {
			copy := *c
			return &copy, nil
		}
	}
	return nil, domain.ErrCouponNotFound
}

func (r *stubCouponRepo) ExistsForUser(_ context.Context, userID string) (bool, error) {
	for _, c := range r.coupons {
		if c.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubCouponRepo) Deactivate(_ context.Context, code, userID string) error {
	for _, c := range r.coupons {
		if c.Code == code && c.UserID == userID {
			c.IsActive = false
		}
	}
	return nil
}

func TestCouponService_ActiveFor(t *testing.T) {
	repo := &stubCouponRepo{}
	_, _ = repo.Create(context.Background(), &domain.Coupon{
		Code:               "GIFT123",
		DiscountPercentage: 10,
		ExpirationDate:     time.Now().Add(24 * time.Hour),
		IsActive:           true,
		UserID:             "user_1",
	})
	svc := NewCouponService(repo, zerolog.Nop())

	coupon, err := svc.ActiveFor(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("ActiveFor returned error: %v", err)
	}
	if coupon == nil || coupon.Code != "GIFT123" {
		t.Fatalf("unexpected coupon: %+v", coupon)
	}
}

func TestCouponService_ActiveFor_None(t *testing.T) {
	svc := NewCouponService(&stubCouponRepo{}, zerolog.Nop())

	coupon, err := svc.ActiveFor(context.Background(), "user_1")
	if err != nil {
		t.Fatalf("absence of a coupon is not an error: %v", err)
	}
	if coupon != nil {
		t.Fatalf("expected nil coupon, got %+v", coupon)
	}
}

func TestCouponService_Validate_Success(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubCouponRepo{}
	_, _ = repo.Create(context.Background(), &domain.Coupon{
		Code:               "GIFTABC",
		DiscountPercentage: 10,
		ExpirationDate:     now.Add(time.Hour),
		IsActive:           true,
		UserID:             "user_1",
	})
	svc := NewCouponService(repo, zerolog.Nop())
	svc.now = func() time.Time { return now }

	coupon, err := svc.Validate(context.Background(), "GIFTABC", "user_1")
	if err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if coupon.DiscountPercentage != 10 {
		t.Fatalf("unexpected discount: %d", coupon.DiscountPercentage)
	}
}

func TestCouponService_Validate_ExpiredDeactivates(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubCouponRepo{}
	_, _ = repo.Create(context.Background(), &domain.Coupon{
		Code:           "GIFTOLD",
		ExpirationDate: now.Add(-time.Minute),
		IsActive:       true,
		UserID:         "user_1",
	})
	svc := NewCouponService(repo, zerolog.Nop())
	svc.now = func() time.Time { return now }

	if _, err := svc.Validate(context.Background(), "GIFTOLD", "user_1"); err != domain.ErrCouponExpired {
		t.Fatalf("expected ErrCouponExpired, got %v", err)
	}
	if repo.coupons[0].IsActive {
		t.Fatalf("expired coupon should have been deactivated")
	}
}

func TestCouponService_Validate_ExactExpiryInstant(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	repo := &stubCouponRepo{}
	_, _ = repo.Create(context.Background(), &domain.Coupon{
		Code:           "GIFTNOW",
		ExpirationDate: now,
		IsActive:       true,
		UserID:         "user_1",
	})
	svc := NewCouponService(repo, zerolog.Nop())
	svc.now = func() time.Time { return now }

	// A coupon is valid strictly before its expiration instant.
	if _, err := svc.Validate(context.Background(), "GIFTNOW", "user_1"); err != domain.ErrCouponExpired {
		t.Fatalf("expected ErrCouponExpired at the expiry instant, got %v", err)
	}
}

func TestCouponService_Validate_ForeignCoupon(t *testing.T) {
	repo := &stubCouponRepo{}
	_, _ = repo.Create(context.Background(), &domain.Coupon{
		Code:           "GIFTXYZ",
		ExpirationDate: time.Now().Add(time.Hour),
		IsActive:       true,
		UserID:         "user_1",
	})
	svc := NewCouponService(repo, zerolog.Nop())

	// Another user's coupon is indistinguishable from a missing one.
	if _, err := svc.Validate(context.Background(), "GIFTXYZ", "user_2"); err != domain.ErrCouponNotFound {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}

func TestCouponService_Validate_UnknownCode(t *testing.T) {
	svc := NewCouponService(&stubCouponRepo{}, zerolog.Nop())

	if _, err := svc.Validate(context.Background(), "NOPE", "user_1"); err != domain.ErrCouponNotFound {
		t.Fatalf("expected ErrCouponNotFound, got %v", err)
	}
}
