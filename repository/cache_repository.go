package repository

import (
	"context"
	"time"
)

// CacheRepository caches resolved address-to-county lookups. Implementations
// must be safe for concurrent use; a failed Get is indistinguishable from a
// miss and callers fall through to the reference tables.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
