package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// CartProduct is a catalog entry joined with the quantity held in the cart.
type CartProduct struct {
	domain.Product
	Quantity int `json:"quantity"`
}

// CartService defines cart use cases. The user aggregate passed in is the
// one attached by the session middleware; mutations return the new cart.
type CartService interface {
	Items(ctx context.Context, user *domain.User) ([]CartProduct, error)
	Add(ctx context.Context, user *domain.User, productID string) ([]domain.CartItem, error)
	// Remove deletes one product from the cart, or empties it when productID
	// is blank.
	Remove(ctx context.Context, user *domain.User, productID string) ([]domain.CartItem, error)
	// UpdateQuantity sets the quantity of an existing entry; zero removes it.
	UpdateQuantity(ctx context.Context, user *domain.User, productID string, quantity int) ([]domain.CartItem, error)
}
