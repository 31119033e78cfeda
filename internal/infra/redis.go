// README: Redis client initialization for the place-description cache.
package infra

import "github.com/redis/go-redis/v9"

// NewRedis returns nil when addr is empty; callers treat a nil client as "cache disabled".
func NewRedis(addr string) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{Addr: addr})
}
