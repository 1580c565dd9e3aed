package cache

import (
	"context"
	"time"
)

// Store is a key-value cache over JSON-serializable payloads with per-key
// TTL. Implementations must swallow every underlying fault: a failed Get is
// a miss, a failed Set or Delete is a no-op. The cache is a performance
// optimization, never a correctness dependency.
type Store interface {
	// Get decodes the cached value into dest and reports whether the key was
	// present and decodable.
	Get(ctx context.Context, key string, dest any) bool

	// Set serializes value and stores it under key with the given TTL.
	Set(ctx context.Context, key string, value any, ttl time.Duration) bool

	// Delete removes the key.
	Delete(ctx context.Context, key string) bool

	// Clear flushes the whole cache.
	Clear(ctx context.Context) bool
}

// GetOrSet returns the cached value for key, or invokes compute, stores the
// result and returns it. A compute failure is propagated without caching.
// Concurrent callers observing the same miss each invoke compute
// independently; there is no single-flight de-duplication.
func GetOrSet[T any](
	ctx context.Context,
	store Store,
	key string,
	ttl time.Duration,
	compute func(ctx context.Context) (T, error),
) (T, error) {
	var cached T
	if store.Get(ctx, key, &cached) {
		return cached, nil
	}

	value, err := compute(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	store.Set(ctx, key, value, ttl)

	return value, nil
}
