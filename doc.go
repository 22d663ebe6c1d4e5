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

// Package lru provides a generic in-memory key/value cache with a fixed
// capacity and least-recently-used eviction. The cache is bounded: once it
// holds as many entries as its capacity, storing a new key evicts the entry
// that has gone unread and unwritten the longest. Reads, writes and evictions
// are all O(1).
//
// The data type of the cached values is fixed when the cache is created. For
// example, for caching string values:
//
//	cache, err := lru.New[string](10)
//
// Values are stored and retrieved by string key:
//
//	err := cache.Set("foo", "bar")
//
//	value, err := cache.Get("foo")
//	if errors.Is(err, lru.ErrNotFound) {
//		// miss
//	}
//
// TryGet reports a miss as a boolean instead of an error, for callers that
// treat absence as a normal outcome:
//
//	value, ok, err := cache.TryGet("foo")
//
// Operations fail with a reason from a small closed set (ErrInvalidCapacity,
// ErrInvalidKey, ErrNotFound) that callers can test with errors.Is; the
// message text carried alongside is presentation only.
//
// The cache is self-instrumenting and exports metrics about its internal
// operations when it is configured with a metrics registerer:
//
//	cache, err := lru.New[string](10, lru.WithMetricsRegisterer[string](reg))
//
// The cache performs no locking of its own and must not be used from
// multiple goroutines concurrently. Callers that share a cache across
// goroutines must either guard every operation with one mutex or route all
// calls through a single owning goroutine. Every operation completes
// synchronously without blocking, so the critical sections are short either
// way.
package lru
