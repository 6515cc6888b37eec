package dependency

import "sync"

var (
	sharedMu sync.Mutex
	shared   *Values
)

// Shared returns the ambient container, creating it on first use.
func Shared() *Values {
	sharedMu.Lock()
	defer sharedMu.Unlock()

	if shared == nil {
		shared = New()
	}
	return shared
}

// SetShared installs value for key in the ambient container.
func SetShared[T any](key *Key[T], value T) *Values {
	return Set(Shared(), key, value)
}

// GetShared resolves key against the ambient container.
func GetShared[T any](key *Key[T]) T {
	return Get(Shared(), key)
}

// WithValues installs a copy of the ambient container modified by mutate for
// the duration of operation. The previous container is restored when
// operation returns or panics.
//
// Scopes may nest on one goroutine. Overlapping scopes from different
// goroutines are not supported; pass a *Values explicitly instead.
func WithValues(mutate func(*Values), operation func()) {
	prev := Shared()
	scoped := prev.Clone()
	if mutate != nil {
		mutate(scoped)
	}

	swap(scoped)
	defer swap(prev)

	operation()
}

func swap(v *Values) {
	sharedMu.Lock()
	shared = v
	sharedMu.Unlock()
}
