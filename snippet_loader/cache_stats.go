package snippet_loader

import (
	"sync"
	"time"
)

// CacheStats tracks cache performance metrics
type CacheStats struct {
	TotalRequests int64
	CacheHits     int64
	CacheMisses   int64
	LastResetTime time.Time
	mutex         sync.RWMutex
}

// recordCacheHit increments cache hit counter
func (c *SnippetCache) recordCacheHit() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheHits++
}

// recordCacheMiss increments cache miss counter
func (c *SnippetCache) recordCacheMiss() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()
	c.stats.TotalRequests++
	c.stats.CacheMisses++
}

// GetPerformanceStats returns detailed cache performance statistics
func (c *SnippetCache) GetPerformanceStats() map[string]interface{} {
	if c.stats == nil {
		return map[string]interface{}{
			"total_requests":    int64(0),
			"cache_hits":        int64(0),
			"cache_misses":      int64(0),
			"hit_rate_percent":  0.0,
			"miss_rate_percent": 0.0,
			"uptime_seconds":    0.0,
		}
	}

	c.stats.mutex.RLock()
	defer c.stats.mutex.RUnlock()

	hitRate := 0.0
	if c.stats.TotalRequests > 0 {
		hitRate = float64(c.stats.CacheHits) / float64(c.stats.TotalRequests) * 100
	}

	missRate := 0.0
	if c.stats.TotalRequests > 0 {
		missRate = float64(c.stats.CacheMisses) / float64(c.stats.TotalRequests) * 100
	}

	uptime := time.Since(c.stats.LastResetTime)

	return map[string]interface{}{
		"total_requests":    c.stats.TotalRequests,
		"cache_hits":        c.stats.CacheHits,
		"cache_misses":      c.stats.CacheMisses,
		"hit_rate_percent":  hitRate,
		"miss_rate_percent": missRate,
		"uptime_seconds":    uptime.Seconds(),
		"last_reset":        c.stats.LastResetTime.Format(time.RFC3339),
	}
}

// ResetPerformanceStats resets all performance counters
func (c *SnippetCache) ResetPerformanceStats() {
	if c.stats == nil {
		return
	}
	c.stats.mutex.Lock()
	defer c.stats.mutex.Unlock()

	c.stats.TotalRequests = 0
	c.stats.CacheHits = 0
	c.stats.CacheMisses = 0
	c.stats.LastResetTime = time.Now()
}
