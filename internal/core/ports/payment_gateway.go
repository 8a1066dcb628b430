package ports

import "context"

// GatewayLineItem is one purchasable row sent to the payment processor.
// UnitAmount is in integer cents.
type GatewayLineItem struct {
	Name       string
	Image      string
	UnitAmount int64
	Quantity   int64
}

// CreateGatewaySessionInput carries everything needed to open a hosted
// checkout session. Metadata must be sufficient to reconstruct the order
// during reconciliation.
type CreateGatewaySessionInput struct {
	LineItems       []GatewayLineItem
	SuccessURL      string
	CancelURL       string
	DiscountPercent int // 0 = no discount
	Metadata        map[string]string
}

// GatewaySession is the processor's view of a checkout session.
// AmountTotal is the authoritative charged total in integer cents.
type GatewaySession struct {
	ID          string
	PaymentPaid bool
	AmountTotal int64
	Metadata    map[string]string
}

// PaymentGateway abstracts the hosted-checkout processor so the checkout
// service is testable without network calls.
type PaymentGateway interface {
	CreateSession(ctx context.Context, in CreateGatewaySessionInput) (*GatewaySession, error)
	GetSession(ctx context.Context, sessionID string) (*GatewaySession, error)
}
