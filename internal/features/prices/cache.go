package prices

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"

	"qfs-ledger-gateway/internal/common/errors"
)

const cacheKey = "prices:usd"

// Cache persists the latest quote set in Redis with no expiry. Stale prices
// beat no prices; the poller decides freshness.
type Cache struct {
	rdb redis.UniversalClient
}

func NewCache(rdb redis.UniversalClient) *Cache {
	return &Cache{rdb: rdb}
}

func (c *Cache) Put(ctx context.Context, quotes map[string]float64) error {
	encoded, err := json.Marshal(quotes)
	if err != nil {
		return errors.Wrap(err, errors.ErrCodeInternal, "encode price cache")
	}
	if err := c.rdb.Set(ctx, cacheKey, encoded, 0).Err(); err != nil {
		return errors.Wrap(err, errors.ErrCodeCacheError, "store price cache")
	}
	return nil
}

// Get returns the cached quotes, or an empty map when none have been stored
// yet.
func (c *Cache) Get(ctx context.Context) (map[string]float64, error) {
	encoded, err := c.rdb.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		return map[string]float64{}, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "read price cache")
	}

	var quotes map[string]float64
	if err := json.Unmarshal(encoded, &quotes); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "decode price cache")
	}
	return quotes, nil
}
