package cache

import (
	"container/list"
	"sync"
	"time"
)

// Cache is a small TTL-bounded LRU used for the topic taxonomy. Taxonomy
// reads are frequent and the discovery probe is expensive, so entries are
// reused until they expire or are explicitly purged.
type Cache interface {
	Get(key string) (any, bool)
	Set(key string, value any, ttl time.Duration)
	Len() int
	Purge()
}

type entry struct {
	key     string
	value   any
	expires time.Time
	element *list.Element
}

type lruCache struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	items    map[string]*entry
	order    *list.List
}

// NewLRU creates an LRU cache with the given capacity and default TTL.
func NewLRU(capacity int, ttl time.Duration) Cache {
	if capacity <= 0 {
		capacity = 64
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &lruCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*entry, capacity),
		order:    list.New(),
	}
}

func (c *lruCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	ent, ok := c.items[key]
	if !ok {
		return nil, false
	}
	if !ent.expires.IsZero() && !time.Now().Before(ent.expires) {
		c.removeEntry(ent)
		return nil, false
	}
	c.order.MoveToFront(ent.element)
	return ent.value, true
}

func (c *lruCache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ttl <= 0 {
		ttl = c.ttl
	}
	expires := time.Now().Add(ttl)

	if ent, ok := c.items[key]; ok {
		ent.value = value
		ent.expires = expires
		c.order.MoveToFront(ent.element)
		return
	}

	if len(c.items) >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			if ent, ok := c.items[oldest.Value.(string)]; ok {
				c.removeEntry(ent)
			}
		}
	}

	elem := c.order.PushFront(key)
	c.items[key] = &entry{key: key, value: value, expires: expires, element: elem}
}

func (c *lruCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

func (c *lruCache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]*entry, c.capacity)
	c.order.Init()
}

func (c *lruCache) removeEntry(ent *entry) {
	if ent.element != nil {
		c.order.Remove(ent.element)
	}
	delete(c.items, ent.key)
}
