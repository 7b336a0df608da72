package snippet_loader

import (
	"sync"
	"time"

	"github.com/snipd-dev/snipd/snippet_loader/models"
)

// SnippetCache holds already-parsed snippet files keyed by absolute path.
// Cache identity is purely by path with no per-category scoping, which is
// what allows one physical file shared by several categories to be parsed
// once and reused. Entries never expire proactively; only explicit
// invalidation removes one.
type SnippetCache struct {
	mutex   sync.RWMutex
	entries map[string]*models.PathCacheEntry
	stats   *CacheStats
}

// NewSnippetCache creates an empty cache.
func NewSnippetCache() *SnippetCache {
	return &SnippetCache{
		entries: make(map[string]*models.PathCacheEntry),
		stats: &CacheStats{
			LastResetTime: time.Now(),
		},
	}
}

// Get retrieves the entry for path if present, recording a hit or miss.
func (c *SnippetCache) Get(path string) (*models.PathCacheEntry, bool) {
	c.mutex.RLock()
	entry, found := c.entries[path]
	c.mutex.RUnlock()

	if found {
		c.recordCacheHit()
	} else {
		c.recordCacheMiss()
	}
	return entry, found
}

// Contains reports whether path has a live entry without touching the
// hit/miss counters.
func (c *SnippetCache) Contains(path string) bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	_, found := c.entries[path]
	return found
}

// Put stores the entry for path, replacing any previous one.
func (c *SnippetCache) Put(path string, entry *models.PathCacheEntry) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[path] = entry
}

// Invalidate removes the entry for path. Removing an absent path is a no-op.
func (c *SnippetCache) Invalidate(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.entries, path)
}

// Len returns the number of live entries.
func (c *SnippetCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}

// Paths returns the paths of all live entries.
func (c *SnippetCache) Paths() []string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	paths := make([]string, 0, len(c.entries))
	for path := range c.entries {
		paths = append(paths, path)
	}
	return paths
}
