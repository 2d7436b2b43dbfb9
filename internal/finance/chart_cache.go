package finance

import (
	"sync"
	"time"
)

// Chart image cache entry
type chartCacheEntry struct {
	createdAt time.Time
	image     []byte
}

// chartCache keeps rendered PNGs for a short while. The dataset never changes
// after loading, so the TTL only bounds memory.
type chartCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]chartCacheEntry
	now     func() time.Time
}

func newChartCache(ttl time.Duration) *chartCache {
	return &chartCache{ttl: ttl, entries: map[string]chartCacheEntry{}, now: time.Now}
}

func (c *chartCache) get(key string) ([]byte, bool) {
	if c.ttl <= 0 {
		return nil, false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if entry, ok := c.entries[key]; ok {
		if c.now().Before(entry.createdAt.Add(c.ttl)) {
			img := make([]byte, len(entry.image))
			copy(img, entry.image)
			return img, true
		}
		delete(c.entries, key)
	}
	return nil, false
}

func (c *chartCache) set(key string, img []byte) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	c.entries[key] = chartCacheEntry{createdAt: c.now(), image: img}
	c.mu.Unlock()
}
