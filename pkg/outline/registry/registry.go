// Package registry keeps track of elements created on behalf of an owner,
// such as the synchronizers opened for each document.
package registry

import (
	"sort"
	"sync"
)

// Registry maps owners to the element they registered. The owner that creates
// the registry controls its lifecycle; there is no process-wide instance.
type Registry[K comparable, V any] struct {
	mu    sync.RWMutex
	items map[K]V
	order []K
}

// New creates an empty registry.
func New[K comparable, V any]() *Registry[K, V] {
	return &Registry[K, V]{items: make(map[K]V)}
}

// Register stores v for owner, replacing any previous element. It returns the
// replaced element, if any.
func (r *Registry[K, V]) Register(owner K, v V) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items == nil {
		r.items = make(map[K]V)
	}
	prev, existed := r.items[owner]
	r.items[owner] = v
	if !existed {
		r.order = append(r.order, owner)
	}
	return prev, existed
}

// Unregister removes the element for owner and returns it.
func (r *Registry[K, V]) Unregister(owner K) (V, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.items[owner]
	if !ok {
		return v, false
	}
	delete(r.items, owner)
	for i, k := range r.order {
		if k == owner {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return v, true
}

// Get returns the element registered for owner.
func (r *Registry[K, V]) Get(owner K) (V, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.items[owner]
	return v, ok
}

// Len returns the number of registered owners.
func (r *Registry[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// Each calls fn for every element in registration order, on a copy taken
// before the first call.
func (r *Registry[K, V]) Each(fn func(owner K, v V)) {
	r.mu.RLock()
	owners := append([]K(nil), r.order...)
	items := make([]V, len(owners))
	for i, k := range owners {
		items[i] = r.items[k]
	}
	r.mu.RUnlock()
	for i, k := range owners {
		fn(k, items[i])
	}
}

// Keys returns the registered string owners sorted, for listings.
func Keys[V any](r *Registry[string, V]) []string {
	r.mu.RLock()
	keys := append([]string(nil), r.order...)
	r.mu.RUnlock()
	sort.Strings(keys)
	return keys
}
