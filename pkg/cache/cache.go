package cache

import (
	"context"
	"time"
)

// Cache is the contract for the optional read-side cache.
// Implementations: Redis (internal/infrastructure/cache) and Noop below.
type Cache interface {
	// Get reads a key and unmarshals it into dest.
	// found=false means a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores a value with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection.
	Ping(ctx context.Context) error
}

// Noop satisfies Cache without storing anything. Used when caching is
// disabled so callers never need a nil check.
type Noop struct{}

func NewNoop() *Noop { return &Noop{} }

func (n *Noop) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (n *Noop) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (n *Noop) Delete(ctx context.Context, keys ...string) error { return nil }

func (n *Noop) Ping(ctx context.Context) error { return nil }
