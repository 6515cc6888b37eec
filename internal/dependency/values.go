// Package dependency is a registry of capabilities keyed by Key.
//
// Values holds overrides; anything not overridden resolves to the key's
// default. Overrides can be scoped with With or, for the process-wide
// ambient container, WithValues.
package dependency

import "sync"

// Values maps keys to their current values. The zero value is ready to use.
// A nil *Values resolves every key to its default, Reset on it does nothing,
// and Set on it starts a new container.
type Values struct {
	mu      sync.RWMutex
	storage map[any]any
}

// New returns an empty container.
func New() *Values {
	return &Values{storage: make(map[any]any)}
}

// Get returns the value installed for key, or its default.
func Get[T any](v *Values, key *Key[T]) T {
	if v != nil {
		v.mu.RLock()
		raw, ok := v.storage[key]
		v.mu.RUnlock()
		if ok {
			if value, ok := raw.(T); ok {
				return value
			}
		}
	}
	return key.Default()
}

// Set installs value for key and returns v for chaining. A nil v is replaced
// by a new container, which is returned.
func Set[T any](v *Values, key *Key[T], value T) *Values {
	if v == nil {
		v = New()
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.storage == nil {
		v.storage = make(map[any]any)
	}
	v.storage[key] = value
	return v
}

// Reset drops any value installed for key so it resolves to its default.
func Reset[T any](v *Values, key *Key[T]) *Values {
	if v == nil {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()

	delete(v.storage, key)
	return v
}

// IsSet reports whether key has an installed value.
func IsSet[T any](v *Values, key *Key[T]) bool {
	if v == nil {
		return false
	}
	v.mu.RLock()
	defer v.mu.RUnlock()

	_, ok := v.storage[key]
	return ok
}

// Clone returns an independent copy of v.
func (v *Values) Clone() *Values {
	clone := New()
	if v == nil {
		return clone
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	for key, value := range v.storage {
		clone.storage[key] = value
	}
	return clone
}

// Len returns the number of installed overrides.
func (v *Values) Len() int {
	if v == nil {
		return 0
	}
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.storage)
}

// With runs operation against a copy of v modified by mutate. v itself is
// never changed.
func (v *Values) With(mutate func(*Values), operation func(*Values)) {
	scoped := v.Clone()
	if mutate != nil {
		mutate(scoped)
	}
	operation(scoped)
}
