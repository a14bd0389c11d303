package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// keyPrefix namespaces layoutberg entries in the shared Valkey instance.
	keyPrefix = "lberg:"

	// DefaultTTL is how long a generation result stays cached.
	DefaultTTL = time.Hour
)

// Manager is the multi-tier cache facade. Get checks tiers in order
// (memory → Valkey → file) and promotes hits to faster tiers; Set writes
// through to every configured tier. There is no eviction policy beyond
// per-entry TTLs and no cross-request locking: two concurrent misses for
// the same key will both build the value.
type Manager struct {
	memory *memoryTier
	valkey *redis.Client // may be nil
	file   *fileTier     // may be nil
	ttl    time.Duration
}

// Option configures a Manager.
type Option func(*Manager)

// WithValkey adds a shared Valkey tier.
func WithValkey(client *redis.Client) Option {
	return func(m *Manager) { m.valkey = client }
}

// WithFileDir adds a durable file-backed tier rooted at dir.
func WithFileDir(dir string) Option {
	return func(m *Manager) {
		ft, err := newFileTier(dir)
		if err != nil {
			slog.Warn("file cache disabled", "dir", dir, "error", err)
			return
		}
		m.file = ft
	}
}

// NewManager creates a cache manager. The in-process memory tier is always
// present; Valkey and file tiers are optional.
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	m := &Manager{
		memory: newMemoryTier(),
		ttl:    ttl,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Get retrieves a cached value, checking tiers fastest-first. A hit in a
// slower tier is promoted to the faster tiers so the next lookup is cheap.
func (m *Manager) Get(ctx context.Context, key string) ([]byte, bool) {
	if val, ok := m.memory.get(key); ok {
		return val, true
	}

	if m.valkey != nil {
		val, err := m.valkey.Get(ctx, keyPrefix+key).Bytes()
		if err == nil {
			m.memory.set(key, val, m.ttl)
			return val, true
		}
		if err != redis.Nil {
			slog.Warn("valkey cache get error", "key", key, "error", err)
		}
	}

	if m.file != nil {
		if val, ok := m.file.get(key); ok {
			m.memory.set(key, val, m.ttl)
			if m.valkey != nil {
				if err := m.valkey.Set(ctx, keyPrefix+key, val, m.ttl).Err(); err != nil {
					slog.Warn("valkey cache promote error", "key", key, "error", err)
				}
			}
			return val, true
		}
	}

	return nil, false
}

// Set writes a value through to every configured tier with the manager TTL.
func (m *Manager) Set(ctx context.Context, key string, value []byte) {
	m.memory.set(key, value, m.ttl)

	if m.valkey != nil {
		if err := m.valkey.Set(ctx, keyPrefix+key, value, m.ttl).Err(); err != nil {
			slog.Warn("valkey cache set error", "key", key, "error", err)
		}
	}

	if m.file != nil {
		m.file.set(key, value, m.ttl)
	}
}

// Delete removes a single key from all tiers.
func (m *Manager) Delete(ctx context.Context, key string) {
	m.memory.delete(key)

	if m.valkey != nil {
		if err := m.valkey.Del(ctx, keyPrefix+key).Err(); err != nil {
			slog.Warn("valkey cache delete error", "key", key, "error", err)
		}
	}

	if m.file != nil {
		m.file.delete(key)
	}
}

// Flush clears all tiers. The Valkey tier is cleared by scanning for the
// layoutberg prefix so unrelated keys in a shared instance survive.
func (m *Manager) Flush(ctx context.Context) {
	m.memory.flush()

	if m.valkey != nil {
		var cursor uint64
		var deleted int
		for {
			keys, nextCursor, err := m.valkey.Scan(ctx, cursor, keyPrefix+"*", 100).Result()
			if err != nil {
				slog.Warn("valkey cache scan error", "error", err)
				break
			}
			if len(keys) > 0 {
				if err := m.valkey.Del(ctx, keys...).Err(); err != nil {
					slog.Warn("valkey cache bulk delete error", "error", err)
				}
				deleted += len(keys)
			}
			cursor = nextCursor
			if cursor == 0 {
				break
			}
		}
		if deleted > 0 {
			slog.Info("valkey cache flushed", "deleted", deleted)
		}
	}

	if m.file != nil {
		m.file.flush()
	}
}

// TTL returns the manager's configured entry lifetime.
func (m *Manager) TTL() time.Duration { return m.ttl }

// String describes the configured tiers, for startup logging.
func (m *Manager) String() string {
	tiers := "memory"
	if m.valkey != nil {
		tiers += "+valkey"
	}
	if m.file != nil {
		tiers += "+file"
	}
	return fmt.Sprintf("cache[%s ttl=%s]", tiers, m.ttl)
}
