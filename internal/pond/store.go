// Package pond is a typed key/value store with interchangeable backends.
//
// Every backend implements Store. The generic helpers Get, Set and
// SetOptional layer typed access over it:
//
//	s := pond.NewMemory()
//	pond.Set(s, "launch.count", 3)
//	n, ok := pond.Get[int](s, "launch.count")
//
// Scalars are persisted in their string form and coerced back on read.
// Byte slices, lists and maps are persisted verbatim. A read that finds no
// entry and a read whose entry cannot be coerced both report ok == false.
package pond

import (
	"fmt"

	"github.com/alexisbeaulieu97/pond/internal/buildmode"
	"github.com/alexisbeaulieu97/pond/internal/logger"
)

// Store is the contract every backend implements. Keys are independent and
// no ordering is guaranteed between them.
type Store interface {
	// ID names the backend for diagnostics.
	ID() string
	// Lookup returns the raw stored value.
	Lookup(key string) (Value, bool)
	// Put stores value under key. Putting None removes the key.
	Put(key string, value Value)
	Remove(key string)
	Contains(key string) bool
	// RemoveAll empties this store's namespace and nothing else.
	RemoveAll()
	// Keys returns the stored keys in sorted order.
	Keys() []string
}

// Get reads key from s and coerces it into T.
func Get[T Storable](s Store, key string) (T, bool) {
	v, ok := s.Lookup(key)
	if !ok {
		var zero T
		return zero, false
	}
	return As[T](v)
}

// GetOr is Get with a fallback for absent or uncoercible entries.
func GetOr[T Storable](s Store, key string, fallback T) T {
	if v, ok := Get[T](s, key); ok {
		return v
	}
	return fallback
}

// Set stores v under key.
func Set[T Storable](s Store, key string, v T) {
	s.Put(key, ValueOf(v).normalized())
}

// SetOptional stores *v under key, or removes key when v is nil.
func SetOptional[T Storable](s Store, key string, v *T) {
	if v == nil {
		s.Remove(key)
		return
	}
	Set(s, key, *v)
}

// SetValue stores an already constructed Value. None removes key.
func SetValue(s Store, key string, v Value) {
	if v.IsNone() {
		s.Remove(key)
		return
	}
	s.Put(key, v.normalized())
}

// SetAny stores a dynamically typed value using DefaultPolicy.
func SetAny(s Store, key string, v any) {
	DefaultPolicy().SetAny(s, key, v)
}

// Policy decides what happens to writes of values with no Value form.
type Policy struct {
	// Strict panics on such writes. Otherwise they are logged and dropped.
	Strict bool
	Logger *logger.Logger
}

// DefaultPolicy is strict in debug builds and permissive in release builds.
func DefaultPolicy() Policy {
	return Policy{Strict: buildmode.Debug}
}

// SetAny converts v with FromAny and stores it. nil removes key.
func (p Policy) SetAny(s Store, key string, v any) {
	value, err := FromAny(v)
	if err != nil {
		if p.Strict {
			panic(fmt.Sprintf("unable to save value for %s: %v", key, err))
		}
		p.Logger.WithFields(map[string]any{"store": s.ID(), "key": key}).
			Warn(fmt.Sprintf("dropped write: %v", err))
		return
	}
	SetValue(s, key, value)
}
