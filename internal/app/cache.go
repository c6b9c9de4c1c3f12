package service

import (
	"time"

	"github.com/okian/fairwage/internal/adapters/cache"
	"github.com/okian/fairwage/internal/domain/worthgap"
	"github.com/okian/fairwage/pkg/metrics"
)

// marketCache instruments the market median cache for the analyzer.
type marketCache struct {
	mem *cache.Memory[worthgap.Market]
}

func newMarketCache(mem *cache.Memory[worthgap.Market]) *marketCache {
	return &marketCache{mem: mem}
}

func (c *marketCache) Get(key string) (worthgap.Market, bool) {
	m, ok := c.mem.Get(key)
	metrics.RecordCacheLookup(ok)
	return m, ok
}

func (c *marketCache) Set(key string, value worthgap.Market, ttl time.Duration) {
	c.mem.Set(key, value, ttl)
	metrics.UpdateCacheSize(c.mem.Size())
}

func (c *marketCache) purge() {
	c.mem.Purge()
	metrics.UpdateCacheSize(c.mem.Size())
}

func (c *marketCache) size() int64 { return c.mem.Size() }

func (c *marketCache) stats() (hits, misses int64) { return c.mem.Stats() }
