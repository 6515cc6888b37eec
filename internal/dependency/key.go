package dependency

import "sync"

// Key identifies a capability and declares its default value.
//
// Identity is the pointer: two keys never alias, even when they share a
// name and value type. Keys are meant to be package-level variables.
type Key[T any] struct {
	name     string
	once     sync.Once
	makeFunc func() T
	value    T
}

// NewKey declares a key whose default is produced by makeDefault the first
// time it is needed.
func NewKey[T any](name string, makeDefault func() T) *Key[T] {
	return &Key[T]{name: name, makeFunc: makeDefault}
}

// Name returns the diagnostic name of the key.
func (k *Key[T]) Name() string {
	return k.name
}

// Default returns the key's default value, computing it once.
func (k *Key[T]) Default() T {
	k.once.Do(func() {
		if k.makeFunc != nil {
			k.value = k.makeFunc()
		}
	})
	return k.value
}

func (k *Key[T]) String() string {
	return k.name
}
