package store

import (
	"context"
	"sync"
	"time"

	"ownergraph/internal/company/models"
)

// MemoryCache is an in-process ProfileCache with per-entry TTL. Suitable for
// single-instance deployments and tests; use RedisCache when instances share
// state.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
}

type memoryEntry struct {
	profile   models.CompanyProfile
	expiresAt time.Time
}

// MemoryCacheOption configures a MemoryCache.
type MemoryCacheOption func(*MemoryCache)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) MemoryCacheOption {
	return func(c *MemoryCache) { c.now = now }
}

// NewMemoryCache constructs an empty cache with the given TTL.
func NewMemoryCache(ttl time.Duration, opts ...MemoryCacheOption) *MemoryCache {
	c := &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Find returns a cached profile, or (nil, nil) on miss or expiry.
func (c *MemoryCache) Find(_ context.Context, number string) (*models.CompanyProfile, error) {
	c.mu.RLock()
	entry, ok := c.entries[number]
	c.mu.RUnlock()

	if !ok {
		return nil, nil
	}
	if c.now().After(entry.expiresAt) {
		c.mu.Lock()
		delete(c.entries, number)
		c.mu.Unlock()
		return nil, nil
	}
	profile := entry.profile
	return &profile, nil
}

// Save stores a copy of the profile under its company number.
func (c *MemoryCache) Save(_ context.Context, profile *models.CompanyProfile) error {
	if profile == nil || profile.Number == "" {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[profile.Number] = memoryEntry{
		profile:   *profile,
		expiresAt: c.now().Add(c.ttl),
	}
	return nil
}
