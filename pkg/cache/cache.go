// Package cache stores rendered artifacts for the HTTP server.
//
// Keys are derived from everything that affects the output bytes, so a
// cached artifact is byte-identical to a fresh render. Entries live in
// memory only and vanish with the process.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry time-to-live.
type Cache interface {
	// Get returns the value for key and whether it was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources.
	Close() error
}
