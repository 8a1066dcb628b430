package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

const (
	// rewardThresholdCents is the post-discount total at or above which a
	// loyalty coupon is minted for users who have none.
	rewardThresholdCents = 20000
	rewardDiscount       = 10
	rewardValidityDays   = 30
)

// metadataItem is the compact line-item encoding embedded in the payment
// session metadata and decoded again during reconciliation.
type metadataItem struct {
	ID       string  `json:"id"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// CheckoutService bridges local cart state and the payment processor.
type CheckoutService struct {
	coupons   ports.CouponRepository
	orders    ports.OrderRepository
	gateway   ports.PaymentGateway
	clientURL string
	log       zerolog.Logger
	now       func() time.Time
}

func NewCheckoutService(coupons ports.CouponRepository, orders ports.OrderRepository, gateway ports.PaymentGateway, clientURL string, log zerolog.Logger) *CheckoutService {
	return &CheckoutService{
		coupons:   coupons,
		orders:    orders,
		gateway:   gateway,
		clientURL: strings.TrimRight(clientURL, "/"),
		log:       log,
		now:       time.Now,
	}
}

// CreateSession computes the cart total in integer cents, applies an
// optional coupon, and opens a hosted payment session whose metadata is
// sufficient to reconstruct the order later.
func (s *CheckoutService) CreateSession(ctx context.Context, userID string, items []ports.CheckoutItemInput, couponCode string) (*ports.CheckoutSessionResult, error) {
	if len(items) == 0 {
		return nil, domain.ErrEmptyCart
	}

	var totalCents int64
	lineItems := make([]ports.GatewayLineItem, 0, len(items))
	meta := make([]metadataItem, 0, len(items))
	for _, item := range items {
		qty := item.Quantity
		if qty <= 0 {
			qty = 1
		}
		unitCents := toCents(item.Price)
		totalCents += unitCents * int64(qty)
		lineItems = append(lineItems, ports.GatewayLineItem{
			Name:       item.Name,
			Image:      item.Image,
			UnitAmount: unitCents,
			Quantity:   int64(qty),
		})
		meta = append(meta, metadataItem{ID: item.ID, Quantity: qty, Price: item.Price})
	}

	discountPercent := 0
	if couponCode != "" {
		coupon, err := s.coupons.FindActiveByCode(ctx, couponCode, userID)
		switch {
		case err == nil:
			discountPercent = coupon.DiscountPercentage
			totalCents -= int64(math.Round(float64(totalCents) * float64(discountPercent) / 100))
		case errors.Is(err, domain.ErrCouponNotFound):
			// Unknown or foreign code: charge full price.
		default:
			return nil, err
		}
	}

	encoded, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}

	session, err := s.gateway.CreateSession(ctx, ports.CreateGatewaySessionInput{
		LineItems:       lineItems,
		SuccessURL:      s.clientURL + "/purchase-success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:       s.clientURL + "/purchase-cancel",
		DiscountPercent: discountPercent,
		Metadata: map[string]string{
			"user_id":  userID,
			"coupon":   couponCode,
			"products": string(encoded),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %w", err)
	}

	// Loyalty side effect, not part of the payment path's correctness.
	if totalCents >= rewardThresholdCents {
		s.mintRewardCoupon(ctx, userID)
	}

	s.log.Info().Str("session_id", session.ID).Str("user_id", userID).Int64("total_cents", totalCents).Msg("checkout session created")

	return &ports.CheckoutSessionResult{
		SessionID:   session.ID,
		TotalAmount: float64(totalCents) / 100,
	}, nil
}

// ReconcileSession converts a completed payment session into a local order.
// A session that was already reconciled returns the existing order together
// with domain.ErrOrderExists; the unique index on the session id is the
// actual exactly-once guard, the lookup here is an optimization.
func (s *CheckoutService) ReconcileSession(ctx context.Context, sessionID string) (*domain.Order, error) {
	session, err := s.gateway.GetSession(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %w", err)
	}

	userID := session.Metadata["user_id"]

	if session.PaymentPaid {
		if code := session.Metadata["coupon"]; code != "" {
			if err := s.coupons.Deactivate(ctx, code, userID); err != nil {
				s.log.Warn().Err(err).Str("code", code).Msg("failed to deactivate used coupon")
			}
		}
	}

	var meta []metadataItem
	if err := json.Unmarshal([]byte(session.Metadata["products"]), &meta); err != nil {
		return nil, fmt.Errorf("decode session line items: %w", err)
	}

	if existing, err := s.orders.FindBySessionID(ctx, sessionID); err == nil {
		return existing, domain.ErrOrderExists
	}

	items := make([]domain.OrderItem, 0, len(meta))
	for _, m := range meta {
		if !domain.IsValidProductID(m.ID) {
			return nil, fmt.Errorf("%w: %s", domain.ErrInvalidProductID, m.ID)
		}
		items = append(items, domain.OrderItem{ProductID: m.ID, Quantity: m.Quantity, Price: m.Price})
	}

	order, err := s.orders.Create(ctx, &domain.Order{
		UserID: userID,
		Items:  items,
		// The processor is the source of truth for what was actually charged.
		TotalAmount:     float64(session.AmountTotal) / 100,
		StripeSessionID: sessionID,
		CreatedAt:       s.now().UTC(),
	})
	if err != nil {
		if errors.Is(err, domain.ErrOrderExists) {
			// Lost the race to a concurrent reconciliation.
			if existing, ferr := s.orders.FindBySessionID(ctx, sessionID); ferr == nil {
				return existing, domain.ErrOrderExists
			}
			return nil, domain.ErrOrderExists
		}
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("session_id", sessionID).Msg("order reconciled")
	return order, nil
}

// mintRewardCoupon creates a 10% loyalty coupon for users who have none.
// Failures are logged, never surfaced to the checkout caller.
func (s *CheckoutService) mintRewardCoupon(ctx context.Context, userID string) {
	exists, err := s.coupons.ExistsForUser(ctx, userID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("reward coupon existence check failed")
		return
	}
	if exists {
		return
	}

	code := "GIFT" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	_, err = s.coupons.Create(ctx, &domain.Coupon{
		Code:               code,
		DiscountPercentage: rewardDiscount,
		ExpirationDate:     s.now().UTC().AddDate(0, 0, rewardValidityDays),
		IsActive:           true,
		UserID:             userID,
	})
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", userID).Msg("failed to mint reward coupon")
		return
	}
	s.log.Info().Str("user_id", userID).Str("code", code).Msg("reward coupon minted")
}

// toCents converts a dollar price to integer cents, rounding to the nearest
// minor unit to avoid floating-point drift in totals.
func toCents(dollars float64) int64 {
	return int64(math.Round(dollars * 100))
}
