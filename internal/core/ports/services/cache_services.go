package services

import (
	"context"
	"time"
)

// Cache is a read-side cache for reporting projections. Implementations must
// treat misses and backend failures alike: callers always fall through to the
// database.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}
