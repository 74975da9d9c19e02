package jsonpath

import (
	"time"

	"github.com/midbel/jsonpath/json"
)

const (
	maxCacheSize         = 512
	cacheCleanupInterval = time.Minute
)

// resultCache remembers terminal matches per (expression, path) key.
// Eviction is deliberately cheap: a random victim when full, and an
// interval gated sweep dropping about half the entries. No recency
// tracking.
type resultCache struct {
	entries map[string][]json.Value
	max     int

	last  time.Time
	every time.Duration
}

func newResultCache() *resultCache {
	return &resultCache{
		entries: make(map[string][]json.Value),
		max:     maxCacheSize,
		last:    time.Now(),
		every:   cacheCleanupInterval,
	}
}

func (c *resultCache) get(key string) ([]json.Value, bool) {
	values, ok := c.entries[key]
	return values, ok
}

func (c *resultCache) put(key string, values ...json.Value) {
	c.cleanup()
	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.max {
		for victim := range c.entries {
			delete(c.entries, victim)
			break
		}
	}
	c.entries[key] = values
}

func (c *resultCache) cleanup() {
	if time.Since(c.last) < c.every {
		return
	}
	c.last = time.Now()
	drop := len(c.entries) / 2
	for key := range c.entries {
		if drop == 0 {
			break
		}
		delete(c.entries, key)
		drop--
	}
}

func (c *resultCache) clear() {
	c.entries = make(map[string][]json.Value)
}

func (c *resultCache) size() int {
	return len(c.entries)
}
