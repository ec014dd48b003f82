package sql

import (
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// Cache memoizes parsed commands by statement text. Commands handed out by
// the cache are shared and must be treated as read-only.
type Cache struct {
	mu    sync.Mutex
	cache *lru.Cache
}

// NewCache returns a cache holding at most maxEntries commands. A
// maxEntries of zero or less disables caching: every call parses.
func NewCache(maxEntries int) *Cache {
	if maxEntries <= 0 {
		return &Cache{}
	}
	return &Cache{cache: lru.New(maxEntries)}
}

// ParseCached behaves like Parse but returns a cached command when the same
// statement (ignoring surrounding whitespace) was parsed before. Failed
// parses are not cached.
func (c *Cache) ParseCached(query string) (Command, error) {
	key := strings.TrimSpace(query)
	if c.cache == nil {
		return Parse(key)
	}

	c.mu.Lock()
	if v, ok := c.cache.Get(key); ok {
		c.mu.Unlock()
		return v.(Command), nil
	}
	c.mu.Unlock()

	cmd, err := Parse(key)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(key, cmd)
	c.mu.Unlock()
	return cmd, nil
}

// Len reports the number of cached commands.
func (c *Cache) Len() int {
	if c.cache == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cache.Len()
}
