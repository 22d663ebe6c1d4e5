/*
Copyright 2025 The cachekit authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package lru

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-logr/logr"
)

// node is a node in the doubly linked list that maintains the recency order.
type node[T any] struct {
	key   string
	value T
	prev  *node[T]
	next  *node[T]
}

// LRU is a generic in-memory key/value store with a fixed capacity and
// least-recently-used eviction. All operations are O(1): the hash map gives
// O(1) key lookup and the doubly linked list gives O(1) reordering and
// eviction.
//
// The list runs from the most recently used entry right after head to the
// least recently used entry right before tail. Head and tail are sentinel
// nodes, never stored in the index and never exposed, so reordering needs no
// nil checks at the list ends. An access moves the entry to the front; when
// the cache is full, the entry at the back is evicted to make room.
//
// LRU is not safe for concurrent use, see the package documentation.
// Use the New function to create a cache that is ready to use.
type LRU[T any] struct {
	index    map[string]*node[T]
	capacity int
	head     *node[T]
	tail     *node[T]
	metrics  *cacheMetrics
	onEvict  EvictionFunc[T]
}

var _ Store[any] = &LRU[any]{}

// New creates a new LRU cache with the given capacity.
// The capacity must be positive, otherwise ErrInvalidCapacity is returned.
func New[T any](capacity int, opts ...Options[T]) (*LRU[T], error) {
	if capacity < 1 {
		return nil, &CacheError{
			Reason: ErrInvalidCapacity,
			Err:    fmt.Errorf("capacity must be at least 1, got %d", capacity),
		}
	}

	opt, err := makeOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to apply options: %w", err)
	}

	head := &node[T]{}
	tail := &node[T]{}
	head.next = tail
	tail.prev = head

	c := &LRU[T]{
		index:    make(map[string]*node[T], capacity),
		capacity: capacity,
		head:     head,
		tail:     tail,
		onEvict:  opt.onEvict,
	}

	if opt.registerer != nil {
		c.metrics = newCacheMetrics(opt.metricsPrefix, opt.registerer)
	}

	return c, nil
}

// Set stores the value for the given key. An existing value is overwritten
// and the entry becomes the most recently used, exactly as if it had been
// read. When the key is new and the cache is full, the least recently used
// entry is evicted first. The key must not be empty, otherwise ErrInvalidKey
// is returned and the cache is left untouched.
func (c *LRU[T]) Set(key string, value T) error {
	if key == "" {
		recordRequest(c.metrics, StatusFailure)
		return &CacheError{Reason: ErrInvalidKey, Err: errors.New("the empty string is not a valid key")}
	}

	if n, ok := c.index[key]; ok {
		n.value = value
		c.moveToFront(n)
		recordRequest(c.metrics, StatusSuccess)
		return nil
	}

	if len(c.index) == c.capacity {
		c.evict(c.tail.prev)
		c.insertFront(&node[T]{key: key, value: value})
		recordRequest(c.metrics, StatusSuccess)
		return nil
	}

	c.insertFront(&node[T]{key: key, value: value})
	recordRequest(c.metrics, StatusSuccess)
	recordItemIncrement(c.metrics)
	return nil
}

// Get returns the value stored for the given key and marks the entry as the
// most recently used. If the key is not in the cache, ErrNotFound is
// returned and the recency order is left unchanged.
func (c *LRU[T]) Get(key string) (T, error) {
	var zero T
	n, ok := c.index[key]
	if !ok {
		recordRequest(c.metrics, StatusSuccess)
		recordEvent(c.metrics, CacheEventTypeMiss)
		return zero, ErrNotFound
	}
	c.moveToFront(n)
	recordRequest(c.metrics, StatusSuccess)
	recordEvent(c.metrics, CacheEventTypeHit)
	return n.value, nil
}

// TryGet is Get with the miss reported as a boolean instead of an error:
// absence of the key yields the zero value, false and a nil error. Any other
// failure is returned in the error.
func (c *LRU[T]) TryGet(key string) (T, bool, error) {
	value, err := c.Get(key)
	if err != nil {
		var zero T
		if errors.Is(err, ErrNotFound) {
			return zero, false, nil
		}
		return zero, false, err
	}
	return value, true, nil
}

// GetIfOrSet returns the value stored for the given key if present and
// accepted by the condition function, marking it as the most recently used.
// Otherwise it calls fetch and stores the result, evicting the least
// recently used entry if the cache is full. A nil condition accepts any
// cached value. The boolean result reports whether the value came from the
// cache. The context is passed to fetch, which may block; it is also used to
// retrieve a logr.Logger for debug logging.
func (c *LRU[T]) GetIfOrSet(ctx context.Context,
	key string,
	condition func(T) bool,
	fetch func(context.Context) (T, error),
) (T, bool, error) {

	var zero T

	if key == "" {
		recordRequest(c.metrics, StatusFailure)
		return zero, false, &CacheError{Reason: ErrInvalidKey, Err: errors.New("the empty string is not a valid key")}
	}

	log := logr.FromContextOrDiscard(ctx).WithValues("key", key)

	if n, ok := c.index[key]; ok && (condition == nil || condition(n.value)) {
		c.moveToFront(n)
		recordRequest(c.metrics, StatusSuccess)
		recordEvent(c.metrics, CacheEventTypeHit)
		log.V(1).Info("returning cached value")
		return n.value, true, nil
	}

	value, err := fetch(ctx)
	if err != nil {
		recordRequest(c.metrics, StatusFailure)
		return zero, false, fmt.Errorf("failed to fetch value for key '%s': %w", key, err)
	}

	recordEvent(c.metrics, CacheEventTypeMiss)
	if err := c.Set(key, value); err != nil {
		return zero, false, err
	}
	log.V(1).Info("cached new value")
	return value, false, nil
}

// Has returns whether the key is in the cache, without updating the
// recency order.
func (c *LRU[T]) Has(key string) bool {
	recordRequest(c.metrics, StatusSuccess)
	_, ok := c.index[key]
	return ok
}

// Delete removes the entry for the given key. Deleting an absent key is
// a no-op.
func (c *LRU[T]) Delete(key string) error {
	n, ok := c.index[key]
	if !ok {
		recordRequest(c.metrics, StatusSuccess)
		return nil
	}
	c.unlink(n)
	delete(c.index, key)
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
	recordRequest(c.metrics, StatusSuccess)
	recordDecrement(c.metrics)
	return nil
}

// Clear removes all entries from the cache. The eviction callback is not
// invoked, Clear is a reset rather than an eviction.
func (c *LRU[T]) Clear() {
	c.index = make(map[string]*node[T], c.capacity)
	c.head.next = c.tail
	c.tail.prev = c.head
	recordRequest(c.metrics, StatusSuccess)
	recordItemsReset(c.metrics)
}

// Len returns the number of entries in the cache.
func (c *LRU[T]) Len() int {
	return len(c.index)
}

// Cap returns the capacity the cache was created with.
func (c *LRU[T]) Cap() int {
	return c.capacity
}

// Keys returns the keys in the cache ordered from most to least recently
// used. The result is a snapshot, it does not change with later accesses.
func (c *LRU[T]) Keys() []string {
	keys := make([]string, 0, len(c.index))
	for n := c.head.next; n != c.tail; n = n.next {
		keys = append(keys, n.key)
	}
	recordRequest(c.metrics, StatusSuccess)
	return keys
}

// insertFront links the node right after the head sentinel and indexes it.
func (c *LRU[T]) insertFront(n *node[T]) {
	front := c.head.next
	c.head.next = n
	n.prev = c.head
	n.next = front
	front.prev = n

	c.index[n.key] = n
}

// unlink removes the node from the recency order.
func (c *LRU[T]) unlink(n *node[T]) {
	n.prev.next, n.next.prev = n.next, n.prev
	n.next, n.prev = nil, nil // avoid memory leaks
}

func (c *LRU[T]) moveToFront(n *node[T]) {
	if c.head.next == n {
		return
	}
	n.prev.next, n.next.prev = n.next, n.prev
	front := c.head.next
	c.head.next = n
	n.prev = c.head
	n.next = front
	front.prev = n
}

// evict removes the node from both the index and the recency order and
// notifies the eviction callback.
func (c *LRU[T]) evict(n *node[T]) {
	c.unlink(n)
	delete(c.index, n.key)
	if c.onEvict != nil {
		c.onEvict(n.key, n.value)
	}
	recordEviction(c.metrics)
}

// validate audits the index/order bijection. It walks the recency order,
// checking link symmetry and that every list node is indexed under its own
// key, then compares the walk against the index size and the capacity.
// A correct cache can never fail this audit; the tests run it after every
// mutation sequence.
func (c *LRU[T]) validate() error {
	seen := 0
	for n := c.head.next; n != c.tail; n = n.next {
		if n.prev.next != n || n.next.prev != n {
			return &CacheError{
				Reason: ErrInternalInconsistency,
				Err:    fmt.Errorf("broken links around key '%s'", n.key),
			}
		}
		indexed, ok := c.index[n.key]
		if !ok || indexed != n {
			return &CacheError{
				Reason: ErrInternalInconsistency,
				Err:    fmt.Errorf("key '%s' is in the recency order but not in the index", n.key),
			}
		}
		seen++
	}
	if seen != len(c.index) {
		return &CacheError{
			Reason: ErrInternalInconsistency,
			Err:    fmt.Errorf("recency order has %d entries, index has %d", seen, len(c.index)),
		}
	}
	if len(c.index) > c.capacity {
		return &CacheError{
			Reason: ErrInternalInconsistency,
			Err:    fmt.Errorf("cache holds %d entries, capacity is %d", len(c.index), c.capacity),
		}
	}
	return nil
}
