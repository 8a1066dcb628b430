package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// ProductRepository defines persistence operations for catalog entries.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	// FindByIDs returns the products matching the given ids; missing ids are
	// silently skipped (cart entries may reference deleted products).
	FindByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	FindByCategory(ctx context.Context, category string) ([]domain.Product, error)
	FindFeatured(ctx context.Context) ([]domain.Product, error)
	// Sample returns up to n random products for the recommendation endpoint.
	Sample(ctx context.Context, n int) ([]domain.Product, error)
	SetFeatured(ctx context.Context, id string, featured bool) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
