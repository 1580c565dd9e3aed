package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Memory is an in-process Store used in tests and as a Redis stand-in for
// local development. It round-trips values through JSON so entries behave
// exactly like their Redis counterparts.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (c *Memory) Get(_ context.Context, key string, dest any) bool {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return false
	}

	if !entry.expiresAt.IsZero() && time.Now().After(entry.expiresAt) {
		c.Delete(context.Background(), key)

		return false
	}

	return json.Unmarshal(entry.payload, dest) == nil
}

func (c *Memory) Set(_ context.Context, key string, value any, ttl time.Duration) bool {
	payload, err := json.Marshal(value)
	if err != nil {
		return false
	}

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{payload: payload, expiresAt: expiresAt}
	c.mu.Unlock()

	return true
}

func (c *Memory) Delete(_ context.Context, key string) bool {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()

	return true
}

func (c *Memory) Clear(_ context.Context) bool {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()

	return true
}

// Contains reports whether the key currently holds a live entry.
func (c *Memory) Contains(key string) bool {
	var raw json.RawMessage

	return c.Get(context.Background(), key, &raw)
}
