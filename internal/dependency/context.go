package dependency

import "context"

type valuesKey struct{}

// NewContext returns a copy of ctx carrying v.
func NewContext(ctx context.Context, v *Values) context.Context {
	return context.WithValue(ctx, valuesKey{}, v)
}

// FromContext returns the container carried by ctx, or the ambient container.
func FromContext(ctx context.Context) *Values {
	if ctx != nil {
		if v, ok := ctx.Value(valuesKey{}).(*Values); ok && v != nil {
			return v
		}
	}
	return Shared()
}

// WithContext returns a context carrying a copy of the container from ctx
// modified by mutate.
func WithContext(ctx context.Context, mutate func(*Values)) context.Context {
	scoped := FromContext(ctx).Clone()
	if mutate != nil {
		mutate(scoped)
	}
	return NewContext(ctx, scoped)
}
