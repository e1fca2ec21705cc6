package stream

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// cache wraps an lru cache with hit/miss metrics, keyed by a cache name
// label. Used for open segment and group readers.
type cache[K comparable, V any] struct {
	*lru.Cache[K, V]

	name string
}

func newCache[K comparable, V any](name string, size int) (*cache[K, V], error) {
	v, err := lru.New[K, V](size)
	if err != nil {
		return nil, err
	}
	return &cache[K, V]{Cache: v, name: name}, nil
}

func (c *cache[K, V]) Get(k K) (V, bool) {
	v, ok := c.Cache.Get(k)
	if ok {
		cacheHits.WithLabelValues(c.name).Inc()
	} else {
		cacheMisses.WithLabelValues(c.name).Inc()
	}
	return v, ok
}
