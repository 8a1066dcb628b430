package ports

import (
	"context"

	"github.com/modacart/commerce-api/internal/core/domain"
)

// CreateProductInput carries the fields needed to create a catalog entry.
type CreateProductInput struct {
	Name        string
	Description string
	Price       float64
	Image       string
	Category    string
}

// FeaturedCache is the cache-aside capability for the featured products
// read path. Get returns (nil, false, nil) on a cache miss.
type FeaturedCache interface {
	Get(ctx context.Context) ([]domain.Product, bool, error)
	Set(ctx context.Context, products []domain.Product) error
}

// ProductService defines catalog use cases.
type ProductService interface {
	List(ctx context.Context) ([]domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
	// Featured serves from the cache when possible and repopulates it from
	// the database on a miss.
	Featured(ctx context.Context) ([]domain.Product, error)
	Recommended(ctx context.Context) ([]domain.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	// ToggleFeatured flips the featured flag and rewrites the cache snapshot.
	ToggleFeatured(ctx context.Context, id string) (*domain.Product, error)
}
