// Package cache memoizes aggregate results with per-entry expiry.
//
// Keys are derived from the owning application, the aggregate kind and the
// canonicalized query parameters. Stores are injected into the services that
// use them; there is no process-wide cache.
package cache

import (
	"context"
	"time"
)

// Store is a key-value store with per-entry time-to-live
type Store interface {
	// Get returns the value stored under key; an expired entry is reported as absent
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put stores value under key for ttl, replacing any previous value
	Put(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes keys regardless of their remaining time-to-live
	Invalidate(ctx context.Context, keys ...string) error

	// Ping checks if the store is reachable
	Ping(ctx context.Context) error

	// Close releases resources held by the store
	Close() error
}
