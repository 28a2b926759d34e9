// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache implements a fill-once cache to memoize values derived from
// static data, such as the constants of a calendar definition.
package cache

import (
	"sync"
)

// Cache memoizes values by key. Entries are never evicted: once a key is
// filled, every later Get for it returns the same value.
//
// Its zero value is safe to use. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	mu sync.RWMutex
	m  map[K]V
}

// Get the element associated with k from the cache, using fill to populate
// missing elements. If fill fails, nothing is stored and the error is
// returned, so a later Get calls fill again.
func (c *Cache[K, V]) Get(k K, fill func(K) (V, error)) (V, error) {
	c.mu.RLock()
	if v, ok := c.m[k]; ok {
		c.mu.RUnlock()
		return v, nil
	}
	c.mu.RUnlock()

	nv, err := fill(k)
	if err != nil {
		return nv, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if v, ok := c.m[k]; ok {
		// another goroutine filled the cache in the meantime
		return v, nil
	}
	if c.m == nil {
		c.m = make(map[K]V)
	}
	c.m[k] = nv
	return nv, nil
}

// Len returns the number of filled entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
