package cache

import (
	"context"
	"time"
)

// DefaultTTL is applied to cached payloads unless a caller overrides it.
const DefaultTTL = time.Hour

// Store abstracts the key-value cache. Reads are fail-open: a nil, nil
// return is a miss and callers fall through to the database. The cache is
// never authoritative; dropping it entirely only costs extra reads.
type Store interface {
	// Get returns the cached payload, or nil, nil on a miss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a payload under key with the given expiry.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Expire refreshes the expiry of an existing key (sliding expiration).
	Expire(ctx context.Context, key string, ttl time.Duration) error

	// Delete removes keys in one batch and returns how many existed.
	Delete(ctx context.Context, keys ...string) (int64, error)

	// Scan walks keys matching a glob pattern, one page per call. A returned
	// cursor of 0 signals exhaustion.
	Scan(ctx context.Context, cursor uint64, pattern string, count int64) ([]string, uint64, error)

	// Ping checks connectivity.
	Ping(ctx context.Context) error

	// Close releases the underlying connection.
	Close() error
}
