package domain

import (
	"errors"
	"time"
)

var ErrOrderExists = errors.New("order already exists")
var ErrOrderNotFound = errors.New("order not found")
var ErrEmptyCart = errors.New("cart is empty")

// OrderItem is a line-item snapshot frozen at purchase time. Price is the
// unit price in dollars as it was when the checkout session was opened.
type OrderItem struct {
	ProductID string  `json:"product_id" bson:"product"`
	Quantity  int     `json:"quantity" bson:"quantity"`
	Price     float64 `json:"price" bson:"price"`
}

// Order is the immutable record of a completed purchase. StripeSessionID is
// unique per order; the unique index on it is the idempotency guarantee for
// checkout reconciliation.
type Order struct {
	ID              string      `json:"id"`
	UserID          string      `json:"user_id"`
	Items           []OrderItem `json:"items"`
	TotalAmount     float64     `json:"total_amount"`
	StripeSessionID string      `json:"stripe_session_id"`
	CreatedAt       time.Time   `json:"created_at"`
}
