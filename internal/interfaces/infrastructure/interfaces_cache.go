package interfaces

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired
var ErrCacheMiss = errors.New("cache miss")

type CacheService interface {
	// Lookup values are stored as opaque strings, usually JSON
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error

	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context, pattern string) error

	// Health and connection management
	Health(ctx context.Context) error
	Close() error
}
