package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/modacart/commerce-api/internal/core/domain"
)

const featuredProductsKey = "featured_products"

// ProductCache holds a serialized snapshot of all featured products under a
// single key. No TTL; the snapshot is overwritten whenever a featured flag
// toggles.
type ProductCache struct {
	client *redis.Client
}

func NewProductCache(client *redis.Client) *ProductCache {
	return &ProductCache{client: client}
}

// Get returns the cached snapshot, with hit=false on a miss.
func (c *ProductCache) Get(ctx context.Context) ([]domain.Product, bool, error) {
	raw, err := c.client.Get(ctx, featuredProductsKey).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read featured cache: %w", err)
	}

	var products []domain.Product
	if err := json.Unmarshal([]byte(raw), &products); err != nil {
		return nil, false, fmt.Errorf("decode featured cache: %w", err)
	}
	return products, true, nil
}

func (c *ProductCache) Set(ctx context.Context, products []domain.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode featured cache: %w", err)
	}
	if err := c.client.Set(ctx, featuredProductsKey, raw, 0).Err(); err != nil {
		return fmt.Errorf("write featured cache: %w", err)
	}
	return nil
}
