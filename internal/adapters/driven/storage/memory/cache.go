package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/sercha-jobs/internal/core/domain"
	"github.com/custodia-labs/sercha-jobs/internal/core/ports/driven"
)

// Ensure ResultCache implements the interface.
var _ driven.ResultCache = (*ResultCache)(nil)

// ResultCache is a size-bounded LRU of search responses with a TTL.
type ResultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	size    int
	order   *list.List
	entries map[string]*list.Element
	now     func() time.Time
}

type cacheEntry struct {
	key     string
	resp    domain.SearchResponse
	expires time.Time
}

// NewResultCache creates a cache holding at most size responses for ttl.
// A zero ttl keeps entries until evicted.
func NewResultCache(size int, ttl time.Duration) *ResultCache {
	return &ResultCache{
		ttl:     ttl,
		size:    size,
		order:   list.New(),
		entries: make(map[string]*list.Element),
		now:     time.Now,
	}
}

// Get returns a cached response. Expired entries are dropped on read.
func (c *ResultCache) Get(_ context.Context, key string) (*domain.SearchResponse, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false, nil
	}
	entry := el.Value.(*cacheEntry)
	if c.ttl > 0 && c.now().After(entry.expires) {
		c.order.Remove(el)
		delete(c.entries, key)
		return nil, false, nil
	}
	c.order.MoveToFront(el)
	resp := entry.resp
	return &resp, true, nil
}

// Set stores a response, evicting the least recently used entry when full.
func (c *ResultCache) Set(_ context.Context, key string, resp domain.SearchResponse) error {
	if c.size <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	expires := c.now().Add(c.ttl)
	if el, ok := c.entries[key]; ok {
		entry := el.Value.(*cacheEntry)
		entry.resp = resp
		entry.expires = expires
		c.order.MoveToFront(el)
		return nil
	}

	c.entries[key] = c.order.PushFront(&cacheEntry{key: key, resp: resp, expires: expires})
	for c.order.Len() > c.size {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
	return nil
}

// Len returns the number of cached entries, expired or not.
func (c *ResultCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
