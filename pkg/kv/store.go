package kv

import (
	"context"
	"errors"
	"time"
)

// ErrStoreUnavailable is returned by stores that were never connected.
var ErrStoreUnavailable = errors.New("kv store unavailable")

// Store is the contract for one key-value namespace (guides, metadata, admin).
// Values are JSON documents; TTLs are applied at write time.
type Store interface {
	// Get loads key and unmarshals it into dest.
	// Returns: (found bool, error)
	// - found = true: dest populated
	// - found = false: key missing, dest untouched
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key. ttl <= 0 means no expiry.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// SetKeepTTL overwrites the value but keeps whatever expiry the key already has.
	SetKeepTTL(ctx context.Context, key string, value interface{}) error

	// Delete removes keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error

	// TTL returns the remaining lifetime, or a negative duration when the key has none.
	TTL(ctx context.Context, key string) (time.Duration, error)

	Ping(ctx context.Context) error
}
