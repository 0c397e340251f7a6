package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

const (
	stockCacheKey = "stock:levels"
	stockCacheTTL = 30 * time.Second
)

// StockCache holds the remote product_sizes rows for a short window so page
// loads do not hit the remote backend on every request.
type StockCache struct {
	client *redis.Client
}

func NewStockCache(client *redis.Client) *StockCache {
	return &StockCache{client: client}
}

// Get returns the cached levels and whether a live entry was found.
func (c *StockCache) Get(ctx context.Context) ([]domain.StockLevel, bool, error) {
	raw, err := c.client.Get(ctx, stockCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("stock cache get: %w", err)
	}

	var levels []domain.StockLevel
	if err := json.Unmarshal(raw, &levels); err != nil {
		// A stale or mangled entry is dropped, not surfaced.
		_ = c.client.Del(ctx, stockCacheKey).Err()
		return nil, false, nil
	}
	return levels, true, nil
}

func (c *StockCache) Set(ctx context.Context, levels []domain.StockLevel) error {
	raw, err := json.Marshal(levels)
	if err != nil {
		return fmt.Errorf("stock cache encode: %w", err)
	}
	return c.client.Set(ctx, stockCacheKey, raw, stockCacheTTL).Err()
}
