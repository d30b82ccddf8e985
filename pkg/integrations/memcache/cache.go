package memcache

import (
	"sync"
	"time"

	"tallybook/pkg/types/cache"
)

var _ cache.Cache[string, any] = (*Cache[string, any])(nil)

type entry[V any] struct {
	value   V
	written time.Time
}

// Cache is an in-memory cache safe for concurrent use. A zero TTL means
// entries never expire.
type Cache[K comparable, V any] struct {
	data  map[K]entry[V]
	ttl   time.Duration
	mutex sync.RWMutex
}

func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]entry[V]),
	}
}

// NewTTL returns a cache whose entries expire d after they were written.
func NewTTL[K comparable, V any](d time.Duration) *Cache[K, V] {
	return &Cache[K, V]{
		data: make(map[K]entry[V]),
		ttl:  d,
	}
}

func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	e, ok := c.data[key]
	if !ok || c.expired(e) {
		var zero V
		return zero, false
	}
	return e.value, true
}

func (c *Cache[K, V]) Set(key K, value V) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data[key] = entry[V]{value: value, written: time.Now()}
}

func (c *Cache[K, V]) Delete(key K) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	delete(c.data, key)
}

func (c *Cache[K, V]) Keys() []K {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	keys := make([]K, 0, len(c.data))
	for k, e := range c.data {
		if c.expired(e) {
			continue
		}
		keys = append(keys, k)
	}
	return keys
}

func (c *Cache[K, V]) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[K]entry[V])
}

func (c *Cache[K, V]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	n := 0
	for _, e := range c.data {
		if !c.expired(e) {
			n++
		}
	}
	return n
}

func (c *Cache[K, V]) expired(e entry[V]) bool {
	return c.ttl > 0 && time.Since(e.written) > c.ttl
}
