package searcher

import (
	"sync"

	"tetress/game"

	"github.com/pbnjay/memory"
)

const (
	cacheEntryBytes = 64 // Rough map cost of one uint64 -> float64 entry
	minCacheEntries = 1 << 10
	maxCacheEntries = 1 << 22
)

// evalCache memoises heuristic values by board and color. When full it is
// emptied rather than evicting entry by entry.
type evalCache struct {
	mu      sync.Mutex
	entries map[uint64]float64
	limit   int
}

// newEvalCache sizes the cache to a fraction of the machine's memory.
func newEvalCache(fraction float64) *evalCache {
	limit := int(float64(memory.TotalMemory()) * fraction / cacheEntryBytes)
	limit = min(max(limit, minCacheEntries), maxCacheEntries)
	return &evalCache{
		entries: make(map[uint64]float64),
		limit:   limit,
	}
}

func cacheKey(b game.Board, color game.Color) uint64 {
	return b.Hash() ^ (uint64(color) * 0x9e3779b97f4a7c15)
}

func (c *evalCache) value(b game.Board, color game.Color, evaluate game.Evaluate) float64 {
	key := cacheKey(b, color)
	c.mu.Lock()
	v, ok := c.entries[key]
	c.mu.Unlock()
	if ok {
		return v
	}

	v = evaluate(b, color)
	c.mu.Lock()
	if len(c.entries) >= c.limit {
		clear(c.entries)
	}
	c.entries[key] = v
	c.mu.Unlock()
	return v
}

func (c *evalCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
