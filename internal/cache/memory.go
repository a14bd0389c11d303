package cache

import (
	"sync"
	"time"
)

// memoryEntry is a cached value with its expiry time.
type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// memoryTier is the L1 cache: a concurrency-safe in-process TTL map.
// Expired entries are dropped lazily on read.
type memoryTier struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

func newMemoryTier() *memoryTier {
	return &memoryTier{entries: make(map[string]memoryEntry)}
}

func (m *memoryTier) get(key string) ([]byte, bool) {
	m.mu.RLock()
	e, ok := m.entries[key]
	m.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		m.mu.Lock()
		delete(m.entries, key)
		m.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (m *memoryTier) set(key string, value []byte, ttl time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = memoryEntry{value: value, expiresAt: time.Now().Add(ttl)}
}

func (m *memoryTier) delete(key string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
}

func (m *memoryTier) flush() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]memoryEntry)
}
