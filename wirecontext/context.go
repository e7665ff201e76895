// Package wirecontext carries a [wirebox.Resolver] on a [context.Context].
//
// This is useful for code that receives a context but not the composition
// root itself, such as HTTP handlers behind [wirehttp] middleware.
package wirecontext

import (
	"context"
	"reflect"

	"github.com/jmorgan/wirebox"
	"github.com/jmorgan/wirebox/internal/errors"
)

type resolverContextKey struct{}

// WithResolver returns a new [context.Context] that carries the provided
// [wirebox.Resolver].
func WithResolver(ctx context.Context, r wirebox.Resolver) context.Context {
	return context.WithValue(ctx, resolverContextKey{}, r)
}

// FromContext returns the [wirebox.Resolver] stored on the
// [context.Context], if present.
func FromContext(ctx context.Context) wirebox.Resolver {
	if r, ok := ctx.Value(resolverContextKey{}).(wirebox.Resolver); ok {
		return r
	}
	return nil
}

// Resolve a value of type T from the [wirebox.Resolver] stored on the
// [context.Context].
func Resolve[T any](ctx context.Context, opts ...wirebox.ResolveOption) (T, error) {
	var t = reflect.TypeOf((*(T))(nil)).Elem()
	var val T

	r := FromContext(ctx)
	if r == nil {
		return val, errors.Errorf("resolve %s from context: resolver not found on context", t)
	}

	anyVal, err := r.Resolve(ctx, t, opts...)
	if anyVal != nil {
		val = anyVal.(T)
	}

	return val, errors.Wrap(err, "resolve from context")
}

// MustResolve resolves a value of type T from the [wirebox.Resolver] stored
// on the [context.Context].
//
// It panics if the value cannot be resolved.
func MustResolve[T any](ctx context.Context, opts ...wirebox.ResolveOption) T {
	val, err := Resolve[T](ctx, opts...)
	if err != nil {
		panic(err)
	}
	return val
}
