// README: Redis-backed cache for generated place descriptions.
package places

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// DescriptionTTL is how long a generated description is reused.
const DescriptionTTL = 24 * time.Hour

type DescriptionCache interface {
	Get(ctx context.Context, p Place) (string, bool, error)
	Set(ctx context.Context, p Place, description string) error
}

type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache returns nil when rdb is nil so callers can skip caching.
func NewRedisCache(rdb *redis.Client, ttl time.Duration) *RedisCache {
	if rdb == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DescriptionTTL
	}
	return &RedisCache{rdb: rdb, ttl: ttl}
}

func cacheKey(p Place) string {
	return "voyabot:place:desc:" + p.Name + "|" + p.Location
}

func (c *RedisCache) Get(ctx context.Context, p Place) (string, bool, error) {
	v, err := c.rdb.Get(ctx, cacheKey(p)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (c *RedisCache) Set(ctx context.Context, p Place, description string) error {
	return c.rdb.Set(ctx, cacheKey(p), description, c.ttl).Err()
}
