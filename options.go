package wirebox

import (
	"reflect"

	"github.com/jmorgan/wirebox/internal/errors"
)

// RegistryOption is used to configure a new [Registry] when calling
// [NewRegistry] or [Registry.NewScope].
type RegistryOption interface {
	order() optionOrder
	applyRegistry(*Registry) error
}

type optionOrder int8

const (
	orderProvide    optionOrder = iota
	orderValidation optionOrder = iota
)

func newRegistryOption(ord optionOrder, fn func(*Registry) error) RegistryOption {
	return registryOption{fn: fn, ord: ord}
}

type registryOption struct {
	fn  func(*Registry) error
	ord optionOrder
}

func (o registryOption) order() optionOrder {
	return o.ord
}

func (o registryOption) applyRegistry(r *Registry) error {
	return o.fn(r)
}

// WithProvider registers a constructor function with a new [Registry] when
// calling [NewRegistry] or [Registry.NewScope].
//
// The function can take any number of parameters, which are resolved from the
// Registry in declared order when the provider is first resolved. It may also
// accept a [context.Context] or a [Resolver]. It must return the provided
// value, or the value and an error. The provider is registered under the
// return type of the function unless [As] aliases are given.
//
// The constructor is invoked at most once ever. The result, including an
// error result, is memoized for every subsequent resolution.
//
// Available options:
//   - [As] registers the provider under an alias type.
//   - [WithTag] specifies a tag to differentiate between providers of the same type.
//   - [WithTagged] specifies a tag for a dependency.
//   - [WithOverride] replaces an existing registration for the same key.
func WithProvider(fn any, opts ...ProvideOption) RegistryOption {
	return newRegistryOption(orderProvide, func(r *Registry) error {
		if fn == nil {
			return errors.New("with provider: fn is nil")
		}

		if reflect.TypeOf(fn).Kind() != reflect.Func {
			return errors.Errorf("with provider %T: fn must be a function", fn)
		}

		p, err := newFuncProvider(fn, opts...)
		if err != nil {
			return errors.Wrapf(err, "with provider %T", fn)
		}

		return errors.Wrapf(r.register(p), "with provider %T", fn)
	})
}

// WithValue registers an eagerly provided leaf value with a new [Registry]
// when calling [NewRegistry] or [Registry.NewScope].
//
// The value is registered under its concrete type, even if the variable was
// declared as an interface, unless [As] aliases are given. It is immutable
// once stored and returned as-is on every resolution.
//
// Available options:
//   - [As] registers the value under an alias type.
//   - [WithTag] specifies a tag to differentiate between values of the same type.
//   - [WithOverride] replaces an existing registration for the same key.
func WithValue(val any, opts ...ProvideOption) RegistryOption {
	return newRegistryOption(orderProvide, func(r *Registry) error {
		if val == nil {
			return errors.New("with value: value is nil")
		}

		if _, ok := val.(ProvideOption); ok {
			return errors.Errorf("with value %T: unexpected ProvideOption as value", val)
		}

		if reflect.TypeOf(val).Kind() == reflect.Func {
			return errors.Errorf("with value %T: use WithProvider to register a constructor function", val)
		}

		p, err := newValueProvider(val, opts...)
		if err != nil {
			return errors.Wrapf(err, "with value %T", val)
		}

		return errors.Wrapf(r.register(p), "with value %T", val)
	})
}

// WithLazy registers a provided leaf value computed by a thunk with a new
// [Registry] when calling [NewRegistry] or [Registry.NewScope].
//
// The thunk takes no arguments and must return the provided value, or the
// value and an error. It is invoked at most once, on first demand; the result
// replaces the thunk, so any observable side effect in the thunk runs exactly
// once regardless of how many times the value is requested.
//
// Available options:
//   - [As] registers the value under an alias type.
//   - [WithTag] specifies a tag to differentiate between values of the same type.
//   - [WithOverride] replaces an existing registration for the same key.
func WithLazy(fn any, opts ...ProvideOption) RegistryOption {
	return newRegistryOption(orderProvide, func(r *Registry) error {
		if fn == nil {
			return errors.New("with lazy value: fn is nil")
		}

		if reflect.TypeOf(fn).Kind() != reflect.Func {
			return errors.Errorf("with lazy value %T: fn must be a function", fn)
		}

		p, err := newLazyProvider(fn, opts...)
		if err != nil {
			return errors.Wrapf(err, "with lazy value %T", fn)
		}

		return errors.Wrapf(r.register(p), "with lazy value %T", fn)
	})
}

// ProvideOption is used to configure a registration when calling
// [WithProvider], [WithValue], or [WithLazy].
type ProvideOption interface {
	applyProvider(provider) error
}

type provideOption func(provider) error

func (o provideOption) applyProvider(p provider) error {
	return o(p)
}

// As registers a provider or value under an alias type instead of the type
// it produces. The produced type must be assignable to T.
//
// This is commonly used to register a concrete constructor under the
// interface its consumers depend on.
func As[T any]() ProvideOption {
	return provideOption(func(p provider) error {
		return p.addAlias(reflect.TypeOf((*(T))(nil)).Elem())
	})
}

// WithOverride marks a registration as an explicit replacement for an
// existing registration of the same key in the same scope.
//
// Without this option a conflicting registration fails with an error
// matching [ErrDuplicateRegistration]. Defaults never change silently based
// on registration order.
func WithOverride() ProvideOption {
	return provideOption(func(p provider) error {
		p.setOverride()
		return nil
	})
}

// TagOption is used to specify the tag associated with a registration when
// calling [WithProvider], [WithValue], or [WithLazy], or with a lookup when
// calling [Resolve], [MustResolve], [Registry.Resolve], or [Registry.Contains].
type TagOption interface {
	ProvideOption
	ResolveOption
}

// WithTag specifies the tag associated with a provider or value.
//
// Tags keep the one-registration-per-key invariant while allowing multiple
// registrations of the same type.
//
// Example:
//
//	r, err := wirebox.NewRegistry(
//		wirebox.WithProvider(db.NewPrimary, wirebox.WithTag(db.Primary)),
//		wirebox.WithProvider(db.NewReplica, wirebox.WithTag(db.Replica)),
//		wirebox.WithProvider(storage.NewReadOnlyStore,
//			wirebox.WithTagged[*db.DB](db.Replica),
//		),
//	)
func WithTag(tag any) TagOption {
	return tagOption{tag: tag}
}

type tagOption struct {
	tag any
}

func (o tagOption) applyProvider(p provider) error {
	p.setTag(o.tag)
	return nil
}

func (o tagOption) applyKey(key providerKey) providerKey {
	return providerKey{
		Type: key.Type,
		Tag:  o.tag,
	}
}

var _ TagOption = tagOption{}

// DependencyTagOption is used to specify a tag for a dependency when calling
// [WithProvider] or [Invoke].
type DependencyTagOption interface {
	ProvideOption
	InvokeOption
}

// WithTagged specifies the tag for a dependency of type Dependency when
// calling [WithProvider] or [Invoke].
//
// This option can be used multiple times to tag multiple dependencies.
// It returns an error if the function does not have an untagged parameter of
// type Dependency.
func WithTagged[Dependency any](tag any) DependencyTagOption {
	return depTagOption{
		t:   reflect.TypeOf((*(Dependency))(nil)).Elem(),
		tag: tag,
	}
}

type depTagOption struct {
	t   reflect.Type
	tag any
}

func (o depTagOption) applyDeps(deps []providerKey) error {
	for i := 0; i < len(deps); i++ {
		// Find a dependency with the right type.
		// Skip past any that have already been assigned a tag.
		if deps[i].Type == o.t && deps[i].Tag == nil {
			deps[i].Tag = o.tag
			return nil
		}
	}
	return errors.Errorf("with tagged %s: argument not found", o.t)
}

func (o depTagOption) applyProvider(p provider) error {
	return o.applyDeps(p.Dependencies())
}

func (o depTagOption) applyInvoke(c *invokeConfig) error {
	return o.applyDeps(c.deps)
}

var _ DependencyTagOption = depTagOption{}
