package cache

import (
	"context"
	"sync"
	"time"

	"github.com/loanpath/backend/internal/model"
)

type memoryEntry struct {
	offers    []model.ExternalOffer
	expiresAt time.Time
}

// MemoryCache is the single-instance fallback used when no Redis address
// is configured.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) ([]model.ExternalOffer, bool) {
	m.mu.RLock()
	entry, ok := m.entries[key]
	m.mu.RUnlock()

	if !ok || m.now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.offers, true
}

func (m *MemoryCache) Set(_ context.Context, key string, offers []model.ExternalOffer) error {
	m.mu.Lock()
	m.entries[key] = memoryEntry{offers: offers, expiresAt: m.now().Add(m.ttl)}
	m.mu.Unlock()
	return nil
}
