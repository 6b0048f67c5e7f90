package cache

import (
	"context"
	"sync"
	"time"

	"venturelens/domain/narrative"
)

type memoryEntry struct {
	report    *narrative.Report
	expiresAt time.Time
}

// MemoryNarrativeCache is an in-process fallback used when Redis is not
// configured. Expired entries are dropped lazily on read.
type MemoryNarrativeCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryNarrativeCache() *MemoryNarrativeCache {
	return &MemoryNarrativeCache{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (c *MemoryNarrativeCache) Get(ctx context.Context, key string) (*narrative.Report, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, key)
		c.mu.Unlock()
		return nil, false, nil
	}
	return entry.report, true, nil
}

func (c *MemoryNarrativeCache) Set(ctx context.Context, key string, rep *narrative.Report, ttl time.Duration) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{report: rep, expiresAt: c.now().Add(ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryNarrativeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}
