package shared

import (
	"context"
	"time"
)

// IdempotencyStore tracks processed operation keys so that replays of the
// same request or event do not re-run side effects.
type IdempotencyStore interface {
	// MarkProcessed atomically records a key with a TTL. It returns true
	// when the key was newly recorded, false when it was already present.
	MarkProcessed(ctx context.Context, key string, ttl time.Duration) (bool, error)
	// IsProcessed reports whether a key has already been recorded.
	IsProcessed(ctx context.Context, key string) (bool, error)
	// Close releases any resources held by the store
	Close() error
}

// IdempotencyConfig controls replay protection for event handlers
type IdempotencyConfig struct {
	// Enabled toggles the idempotency check. When false, events are
	// handed straight to the wrapped handler.
	Enabled bool
	// TTL is how long a processed key is remembered. After expiry the
	// same key is treated as new again.
	TTL time.Duration
}

// DefaultIdempotencyConfig returns the default replay protection settings
func DefaultIdempotencyConfig() IdempotencyConfig {
	return IdempotencyConfig{
		Enabled: true,
		TTL:     24 * time.Hour,
	}
}
