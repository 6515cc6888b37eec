package dependency

import "context"

// Dependency reads a capability from a container each time Value is called.
// It never caches the resolved value, so scoped overrides installed after
// construction are observed.
type Dependency[T any] struct {
	key    *Key[T]
	source func() *Values
}

// Inject resolves key against the ambient container.
func Inject[T any](key *Key[T]) Dependency[T] {
	return Dependency[T]{key: key, source: Shared}
}

// InjectFrom resolves key against v.
func InjectFrom[T any](v *Values, key *Key[T]) Dependency[T] {
	return Dependency[T]{key: key, source: func() *Values { return v }}
}

// InjectContext resolves key against the container carried by ctx.
func InjectContext[T any](ctx context.Context, key *Key[T]) Dependency[T] {
	return Dependency[T]{key: key, source: func() *Values { return FromContext(ctx) }}
}

// Value returns the current value of the dependency.
func (d Dependency[T]) Value() T {
	if d.source == nil {
		return Get(Shared(), d.key)
	}
	return Get(d.source(), d.key)
}
