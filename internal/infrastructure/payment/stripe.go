// Package payment adapts the Stripe hosted checkout API to the
// ports.PaymentGateway interface.
package payment

import (
	"context"
	"fmt"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/checkout/session"
	"github.com/stripe/stripe-go/v81/coupon"

	"github.com/modacart/commerce-api/internal/core/ports"
)

// StripeGateway opens and retrieves hosted checkout sessions.
type StripeGateway struct {
	currency string
}

// NewStripeGateway configures the package-level Stripe key and returns the
// adapter. Call once at startup.
func NewStripeGateway(apiKey string) *StripeGateway {
	stripe.Key = apiKey
	return &StripeGateway{currency: string(stripe.CurrencyUSD)}
}

func (g *StripeGateway) CreateSession(ctx context.Context, in ports.CreateGatewaySessionInput) (*ports.GatewaySession, error) {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(in.LineItems))
	for _, item := range in.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Name),
		}
		if item.Image != "" {
			productData.Images = stripe.StringSlice([]string{item.Image})
		}
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(g.currency),
				ProductData: productData,
				UnitAmount:  stripe.Int64(item.UnitAmount),
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems:          lineItems,
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:         stripe.String(in.SuccessURL),
		CancelURL:          stripe.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	if in.DiscountPercent > 0 {
		// Mirror the local discount as a one-time Stripe coupon on the session.
		couponID, err := g.createOnceCoupon(ctx, in.DiscountPercent)
		if err != nil {
			return nil, err
		}
		params.Discounts = []*stripe.CheckoutSessionDiscountParams{
			{Coupon: stripe.String(couponID)},
		}
	}

	sess, err := session.New(params)
	if err != nil {
		return nil, fmt.Errorf("stripe session create: %w", err)
	}
	return toGatewaySession(sess), nil
}

func (g *StripeGateway) GetSession(ctx context.Context, sessionID string) (*ports.GatewaySession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	sess, err := session.Get(sessionID, params)
	if err != nil {
		return nil, fmt.Errorf("stripe session retrieve: %w", err)
	}
	return toGatewaySession(sess), nil
}

func (g *StripeGateway) createOnceCoupon(ctx context.Context, percent int) (string, error) {
	params := &stripe.CouponParams{
		PercentOff: stripe.Float64(float64(percent)),
		Duration:   stripe.String(string(stripe.CouponDurationOnce)),
	}
	params.Context = ctx

	c, err := coupon.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe coupon create: %w", err)
	}
	return c.ID, nil
}

func toGatewaySession(sess *stripe.CheckoutSession) *ports.GatewaySession {
	return &ports.GatewaySession{
		ID:          sess.ID,
		PaymentPaid: sess.PaymentStatus == stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal: sess.AmountTotal,
		Metadata:    sess.Metadata,
	}
}
