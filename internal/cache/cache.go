// Package cache holds the most recent aggregation result for a fixed window
// so that successive requests do not refetch every source.
package cache

import (
	"sync"
	"time"

	"github.com/wiamouali-star/voice-acc-app/internal/feed"
)

// Cache is a single-slot snapshot cache. Put replaces the slot wholesale;
// Get misses once the TTL has elapsed. A lost write race costs one extra
// refetch, nothing more, so readers never block writers for long.
type Cache struct {
	mu        sync.RWMutex
	articles  []feed.Article
	fetchedAt time.Time
	ttl       time.Duration
}

func New(ttl time.Duration) *Cache {
	return &Cache{ttl: ttl}
}

// Get returns the cached articles if the slot is filled and fresh.
func (c *Cache) Get() ([]feed.Article, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.articles == nil || time.Since(c.fetchedAt) >= c.ttl {
		return nil, false
	}
	return c.articles, true
}

// Put replaces the slot with a new snapshot.
func (c *Cache) Put(articles []feed.Article) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.articles = articles
	c.fetchedAt = time.Now()
}
