package cache

import (
	"context"
	"time"
)

// Cache defines the interface for caching services. Get returns the empty
// string without error when the key does not exist or has expired.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
}
