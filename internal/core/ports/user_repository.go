package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// UserRepository defines persistence operations over the user aggregate,
// including the embedded cart.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// UpdateCart replaces the user's embedded cart items wholesale.
	// Read-modify-write without optimistic locking; concurrent edits for the
	// same user may lose an update (accepted non-goal).
	UpdateCart(ctx context.Context, userID string, items []domain.CartItem) error
	Count(ctx context.Context) (int64, error)
}
