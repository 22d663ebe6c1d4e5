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
	"errors"
	"fmt"
)

// CacheErrorReason is a type that represents the reason for a cache error.
type CacheErrorReason struct {
	reason string
	msg    string
}

// Error gives a human-readable description of the error.
func (e CacheErrorReason) Error() string {
	return e.msg
}

// CacheError is the error type returned by cache operations. It carries one
// of the closed set of reasons below, optionally wrapping an underlying error.
type CacheError struct {
	Reason CacheErrorReason
	Err    error
}

// Error returns Err as a string, prefixed with the Reason to provide context.
func (e *CacheError) Error() string {
	if e.Err == nil {
		return e.Reason.Error()
	}
	if e.Reason.Error() == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Reason.Error(), e.Err.Error())
}

// Is returns true if the Reason or Err equals target.
// It can be used to programmatically place an arbitrary Err in the
// context of the cache:
//
//	err := &CacheError{Reason: ErrInvalidKey, Err: errors.New("arbitrary key error")}
//	errors.Is(err, ErrInvalidKey)
func (e *CacheError) Is(target error) bool {
	if e.Reason == target {
		return true
	}
	return errors.Is(e.Err, target)
}

// Unwrap returns the underlying Err.
func (e *CacheError) Unwrap() error {
	return e.Err
}

var (
	// ErrNotFound is returned by Get when the key is not in the cache.
	ErrNotFound = CacheErrorReason{"NotFound", "key not found"}
	// ErrInvalidKey is returned by Set when called with the empty key.
	ErrInvalidKey = CacheErrorReason{"InvalidKey", "invalid key"}
	// ErrInvalidCapacity is returned by New when the capacity is not positive.
	ErrInvalidCapacity = CacheErrorReason{"InvalidCapacity", "invalid capacity"}
	// ErrInternalInconsistency signals a violation of the index/order
	// bijection. A correct build never produces it; it is surfaced only by
	// the structural audit run from the tests.
	ErrInternalInconsistency = CacheErrorReason{"InternalInconsistency", "index and recency order out of sync"}
)
