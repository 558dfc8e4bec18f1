package cache

import (
	"context"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
)

// Stats counts cache outcomes since the store was created
type Stats struct {
	Hits          uint64
	Misses        uint64
	Invalidations uint64
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

// MemoryStore is an in-process Store whose expiry follows the given clock
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	clock   clockwork.Clock
	stats   Stats
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore(clock clockwork.Clock) *MemoryStore {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		clock:   clock,
	}
}

// Get returns a copy of the value stored under key, purging it if it has expired
func (m *MemoryStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		m.stats.Misses++
		return nil, false, nil
	}
	if !m.clock.Now().Before(entry.expiresAt) {
		delete(m.entries, key)
		m.stats.Misses++
		return nil, false, nil
	}

	m.stats.Hits++
	value := make([]byte, len(entry.value))
	copy(value, entry.value)
	return value, true, nil
}

// Put stores a copy of value; the last write for a key wins
func (m *MemoryStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	stored := make([]byte, len(value))
	copy(stored, value)

	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{
		value:     stored,
		expiresAt: m.clock.Now().Add(ttl),
	}
	return nil
}

// Invalidate removes keys immediately
func (m *MemoryStore) Invalidate(ctx context.Context, keys ...string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, key := range keys {
		if _, ok := m.entries[key]; ok {
			delete(m.entries, key)
			m.stats.Invalidations++
		}
	}
	return nil
}

// Ping always succeeds
func (m *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Close drops every entry
func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries = make(map[string]memoryEntry)
	return nil
}

// Stats returns a snapshot of the hit, miss and invalidation counters
func (m *MemoryStore) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.stats
}

// Len returns the number of stored entries, including expired ones not yet purged
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.entries)
}
