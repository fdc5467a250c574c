package domain

import "context"

// Cache keys live in one place so they never drift apart between
// population and invalidation sites.
const CacheKeyProducts = "products"

func CacheKeyProduct(id ProductID) string { return "product:" + id.String() }

// Simple k/v interface. The implementation is Redis.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, ttlSeconds int) error
	Del(ctx context.Context, keys ...string) error
	Ping(context.Context) error
	Close()
}
