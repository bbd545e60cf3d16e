// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

package util

import (
	"sort"
	"sync"
)

// Registry is a thread-safe registry keyed by any string-like type.
// Keys() and Values() are always returned in sorted key order.
type Registry[K ~string, V any] struct {
	mu    sync.RWMutex
	items map[K]V
}

// NewRegistry creates a new empty registry.
func NewRegistry[K ~string, V any]() *Registry[K, V] {
	return &Registry[K, V]{items: make(map[K]V)}
}

// Set stores a value by key if the key doesn't exist.
// Returns true if new key was added, false if key already existed (value not updated).
func (r *Registry[K, V]) Set(key K, value V) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.items[key]; exists {
		return false
	}
	r.items[key] = value
	return true
}

// Get retrieves a value by key.
func (r *Registry[K, V]) Get(key K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[key]
	return v, ok
}

// Has checks if a key exists.
func (r *Registry[K, V]) Has(key K) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.items[key]
	return ok
}

// Keys returns all keys, sorted.
func (r *Registry[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sortedKeysLocked()
}

// Values returns all values, sorted by key.
func (r *Registry[K, V]) Values() []V {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := r.sortedKeysLocked()
	values := make([]V, 0, len(keys))
	for _, k := range keys {
		values = append(values, r.items[k])
	}
	return values
}

func (r *Registry[K, V]) sortedKeysLocked() []K {
	keys := make([]K, 0, len(r.items))
	for k := range r.items {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
