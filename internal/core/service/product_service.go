package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/modacart/commerce-api/internal/core/domain"
	"github.com/modacart/commerce-api/internal/core/ports"
)

const recommendedSampleSize = 4

// ProductService implements catalog use cases with a cache-aside featured
// products read path.
type ProductService struct {
	repo  ports.ProductRepository
	cache ports.FeaturedCache
	log   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ports.FeaturedCache, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, log: log}
}

func (s *ProductService) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProductService) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return s.repo.FindByCategory(ctx, category)
}

// Featured serves the cached snapshot when present; on a miss it reads from
// the database and repopulates the cache. Cache failures degrade to a plain
// database read.
func (s *ProductService) Featured(ctx context.Context) ([]domain.Product, error) {
	cached, hit, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("featured cache read failed, falling back to db")
	} else if hit {
		return cached, nil
	}

	products, err := s.repo.FindFeatured(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, products); err != nil {
		s.log.Warn().Err(err).Msg("failed to populate featured cache")
	}
	return products, nil
}

func (s *ProductService) Recommended(ctx context.Context) ([]domain.Product, error) {
	return s.repo.Sample(ctx, recommendedSampleSize)
}

func (s *ProductService) Create(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	created, err := s.repo.Create(ctx, &domain.Product{
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		Category:    in.Category,
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("product_id", created.ID).Str("category", created.Category).Msg("product created")
	return created, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("product_id", id).Msg("product deleted")
	return nil
}

// ToggleFeatured flips the flag and rewrites the full cache snapshot so the
// featured read path never serves a stale toggle.
func (s *ProductService) ToggleFeatured(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	updated, err := s.repo.SetFeatured(ctx, id, !product.IsFeatured)
	if err != nil {
		return nil, err
	}

	featured, err := s.repo.FindFeatured(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("failed to reload featured products for cache")
		return updated, nil
	}
	if err := s.cache.Set(ctx, featured); err != nil {
		s.log.Warn().Err(err).Msg("failed to rewrite featured cache")
	}
	return updated, nil
}
