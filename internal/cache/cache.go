// Package cache is the explicit read cache for transfer projections.
// Every mutating operation on a transfer invalidates the key prefixes it
// can affect, so a cached entry is never served past a write for that key.
package cache

import (
	"context"
	"time"
)

type Store interface {
	// Get returns the cached value and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool)
	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	// InvalidatePrefix drops every key starting with any of the prefixes.
	InvalidatePrefix(ctx context.Context, prefixes ...string)
}
