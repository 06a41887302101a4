package api

import (
	"context"
	"os"
	"strconv"
	"sync"

	"github.com/nrrscope/nrrscope/pkg/scenario"
)

// ResultCache stores computed scenario results by request key. Keys carry
// the table version, so entries for a replaced table are never read again.
type ResultCache interface {
	Get(ctx context.Context, key string) (*scenario.Result, bool)
	Put(ctx context.Context, key string, res *scenario.Result)
}

// LRUResultCache is a thread-safe in-memory LRU ResultCache.
type LRUResultCache struct {
	mu      sync.Mutex
	maxSize int
	entries map[string]*scenario.Result
	order   []string // oldest first
}

// NewLRUResultCache creates a cache with the given maximum number of entries.
// If maxSize <= 0, it defaults to 256.
func NewLRUResultCache(maxSize int) *LRUResultCache {
	if maxSize <= 0 {
		maxSize = 256
	}
	return &LRUResultCache{
		maxSize: maxSize,
		entries: make(map[string]*scenario.Result),
	}
}

// NewLRUResultCacheFromEnv creates a cache with size from RESULT_CACHE_SIZE env var.
func NewLRUResultCacheFromEnv() *LRUResultCache {
	size := 256
	if v := os.Getenv("RESULT_CACHE_SIZE"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			size = parsed
		}
	}
	return NewLRUResultCache(size)
}

// Get retrieves a result from the cache.
func (c *LRUResultCache) Get(_ context.Context, key string) (*scenario.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	res, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	// Move to end (most recently used)
	c.moveToEnd(key)
	return res, true
}

// Put adds a result to the cache, evicting the oldest if full.
func (c *LRUResultCache) Put(_ context.Context, key string, res *scenario.Result) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.entries[key]; ok {
		c.entries[key] = res
		c.moveToEnd(key)
		return
	}

	for len(c.entries) >= c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}

	c.entries[key] = res
	c.order = append(c.order, key)
}

// Len returns the number of cached entries.
func (c *LRUResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *LRUResultCache) moveToEnd(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			c.order = append(c.order, key)
			return
		}
	}
}
