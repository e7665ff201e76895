package wirebox

import (
	"context"
	"reflect"
	"sync/atomic"

	"github.com/jmorgan/wirebox/internal/errors"
)

// Resolver resolves values from a [Registry].
//
// A Resolver can be a dependency of a constructor function to allow deferred
// resolution. It cannot be used within the constructor itself; store it in a
// struct or use it in a closure after the constructor has returned.
//
// Resolver is implemented by *Registry.
type Resolver interface {
	// Contains returns true if a provider or value is registered for the
	// given type.
	//
	// Available options:
	//   - [WithTag] specifies the tag associated with the registration.
	Contains(t reflect.Type, opts ...ResolveOption) bool

	// Resolve returns the value registered for the given type.
	//
	// Available options:
	//   - [WithTag] specifies the tag associated with the registration.
	Resolve(ctx context.Context, t reflect.Type, opts ...ResolveOption) (any, error)
}

// ResolveOption can be used when calling [Resolve], [MustResolve],
// [Registry.Resolve], or [Registry.Contains].
//
// Available options:
//   - [WithTag]
type ResolveOption interface {
	applyKey(providerKey) providerKey
}

// Resolve a value of the given type from the [Resolver].
func Resolve[T any](ctx context.Context, r Resolver, opts ...ResolveOption) (T, error) {
	var val T
	anyVal, err := r.Resolve(ctx, reflect.TypeOf((*(T))(nil)).Elem(), opts...)
	if anyVal != nil {
		val = anyVal.(T)
	}

	return val, err
}

// MustResolve resolves a value of the given type from the [Resolver].
//
// It panics if the value cannot be resolved.
func MustResolve[T any](ctx context.Context, r Resolver, opts ...ResolveOption) T {
	val, err := Resolve[T](ctx, r, opts...)
	if err != nil {
		panic(err)
	}
	return val
}

func newInjectedResolver(r Resolver, key providerKey) (*injectedResolver, func()) {
	wrapper := &injectedResolver{
		key:      key,
		resolver: r,
	}

	return wrapper, wrapper.setReady
}

// injectedResolver wraps a Registry to be injected as a Resolver dependency.
type injectedResolver struct {
	// key is the provider the Resolver is getting injected into
	key      providerKey
	resolver Resolver
	ready    atomic.Bool
}

func (r *injectedResolver) setReady() {
	r.ready.Store(true)
}

func (r *injectedResolver) Contains(t reflect.Type, opts ...ResolveOption) bool {
	return r.resolver.Contains(t, opts...)
}

func (r *injectedResolver) Resolve(ctx context.Context, t reflect.Type, opts ...ResolveOption) (any, error) {
	if !r.ready.Load() {
		return nil, errors.Errorf(
			"resolve %v: "+
				"resolve not supported on wirebox.Resolver while resolving %s: "+
				"the resolver must be stored and used later",
			t, r.key,
		)
	}

	return r.resolver.Resolve(ctx, t, opts...)
}

var _ Resolver = (*injectedResolver)(nil)
