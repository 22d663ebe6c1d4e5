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
	"github.com/prometheus/client_golang/prometheus"
)

// Store is an interface for a cache store.
type Store[T any] interface {
	// Set adds an item to the store for the given key.
	Set(key string, value T) error
	// Get returns an item stored in the store for the given key.
	Get(key string) (T, error)
	// Delete deletes an item in the store for the given key.
	Delete(key string) error
}

// EvictionFunc is called with the key and value of an entry when it leaves
// the cache through eviction or deletion.
type EvictionFunc[T any] func(key string, value T)

type storeOptions[T any] struct {
	registerer    prometheus.Registerer
	metricsPrefix string
	onEvict       EvictionFunc[T]
}

// Options is a function that sets the store options.
type Options[T any] func(*storeOptions[T]) error

// WithMetricsRegisterer sets the Prometheus registerer for the cache metrics.
func WithMetricsRegisterer[T any](r prometheus.Registerer) Options[T] {
	return func(o *storeOptions[T]) error {
		o.registerer = r
		return nil
	}
}

// WithMetricsPrefix sets the metrics prefix for the cache metrics.
func WithMetricsPrefix[T any](prefix string) Options[T] {
	return func(o *storeOptions[T]) error {
		o.metricsPrefix = prefix
		return nil
	}
}

// WithEvictionCallback sets the callback invoked when an entry is evicted or
// deleted. The callback runs synchronously inside the mutating operation and
// must not call back into the cache.
func WithEvictionCallback[T any](fn EvictionFunc[T]) Options[T] {
	return func(o *storeOptions[T]) error {
		o.onEvict = fn
		return nil
	}
}

func makeOptions[T any](opts ...Options[T]) (*storeOptions[T], error) {
	opt := storeOptions[T]{}
	for _, o := range opts {
		if err := o(&opt); err != nil {
			return nil, err
		}
	}
	return &opt, nil
}
