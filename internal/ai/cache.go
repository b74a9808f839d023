package ai

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a bounded TTL cache for AI responses. It deduplicates calls for
// unchanged content within a session. Keys are derived from the request type
// and a bounded prefix of the input (see CacheKey).
//
// Eviction is LRU once maxEntries is reached; expired entries are dropped
// lazily on read. A zero-value maxEntries or ttl disables that bound.
type Cache struct {
	mu         sync.Mutex
	maxEntries int
	ttl        time.Duration
	ll         *list.List
	entries    map[string]*list.Element

	now func() time.Time // overridable for tests
}

type cacheEntry struct {
	key      string
	value    any
	storedAt time.Time
}

// NewCache creates a cache bounded to maxEntries with the given TTL.
func NewCache(maxEntries int, ttl time.Duration) *Cache {
	return &Cache{
		maxEntries: maxEntries,
		ttl:        ttl,
		ll:         list.New(),
		entries:    make(map[string]*list.Element),
		now:        time.Now,
	}
}

// CacheKey derives a cache key from the request type and the first
// keyPrefixChars characters of the input.
func CacheKey(requestType, input string) string {
	const keyPrefixChars = 100
	runes := []rune(input)
	if len(runes) > keyPrefixChars {
		input = string(runes[:keyPrefixChars])
	}
	return requestType + ":" + input
}

// Get returns the cached value for key, if present and unexpired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	entry := el.Value.(*cacheEntry)
	if c.ttl > 0 && c.now().Sub(entry.storedAt) > c.ttl {
		c.ll.Remove(el)
		delete(c.entries, key)
		return nil, false
	}
	c.ll.MoveToFront(el)
	return entry.value, true
}

// Set stores a value, evicting the least recently used entry when full.
func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[key]; ok {
		c.ll.MoveToFront(el)
		entry := el.Value.(*cacheEntry)
		entry.value = value
		entry.storedAt = c.now()
		return
	}

	el := c.ll.PushFront(&cacheEntry{key: key, value: value, storedAt: c.now()})
	c.entries[key] = el

	if c.maxEntries > 0 && c.ll.Len() > c.maxEntries {
		oldest := c.ll.Back()
		if oldest != nil {
			c.ll.Remove(oldest)
			delete(c.entries, oldest.Value.(*cacheEntry).key)
		}
	}
}

// Clear removes all entries.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ll.Init()
	c.entries = make(map[string]*list.Element)
}

// Len returns the number of live entries (including not-yet-expired ones).
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
