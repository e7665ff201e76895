package wirebox

import (
	"reflect"

	"github.com/jmorgan/wirebox/internal/errors"
)

// provider describes a registered constructor or value and how to build it.
type provider interface {
	// Type returns the type the provider produces.
	Type() reflect.Type

	// Tag returns the tag the provider is registered with, or nil.
	Tag() any
	setTag(any)

	// Aliases returns additional types the provider is registered as.
	Aliases() []reflect.Type
	addAlias(reflect.Type) error

	// Dependencies returns the keys of the providers this provider depends on,
	// in declared order.
	Dependencies() []providerKey

	// New uses the resolved dependencies to construct the value.
	New(deps []reflect.Value) (any, error)

	overrides() bool
	setOverride()
}

// providerBase carries the registration attributes shared by all provider kinds.
type providerBase struct {
	t        reflect.Type
	tag      any
	aliases  []reflect.Type
	override bool
}

func (p *providerBase) Type() reflect.Type {
	return p.t
}

func (p *providerBase) Tag() any {
	return p.tag
}

func (p *providerBase) setTag(tag any) {
	p.tag = tag
}

func (p *providerBase) Aliases() []reflect.Type {
	return p.aliases
}

func (p *providerBase) addAlias(alias reflect.Type) error {
	if !p.t.AssignableTo(alias) {
		return errors.Errorf("as %s: type %s not assignable to %s", alias, p.t, alias)
	}

	p.aliases = append(p.aliases, alias)
	return nil
}

func (p *providerBase) overrides() bool {
	return p.override
}

func (p *providerBase) setOverride() {
	p.override = true
}

// funcProvider is a provider backed by a constructor function.
// Its dependency keys are taken from the function's parameter types,
// in order, and the produced type from its return type.
type funcProvider struct {
	providerBase
	fn   reflect.Value
	deps []providerKey
}

func newFuncProvider(fn any, opts ...ProvideOption) (*funcProvider, error) {
	fnType := reflect.TypeOf(fn)
	fnVal := reflect.ValueOf(fn)

	if fnType.IsVariadic() {
		return nil, errors.New("variadic constructor functions are not supported")
	}

	// The constructor must return T or (T, error)
	var t reflect.Type
	switch {
	case fnType.NumOut() == 1 && fnType.Out(0) != typeError:
		t = fnType.Out(0)
	case fnType.NumOut() == 2 && fnType.Out(1) == typeError:
		t = fnType.Out(0)
	default:
		return nil, errors.New("constructor function must return T or (T, error)")
	}

	if err := validateProvidedType(t); err != nil {
		return nil, err
	}

	var deps []providerKey
	if fnType.NumIn() > 0 {
		deps = make([]providerKey, fnType.NumIn())
		for i := 0; i < fnType.NumIn(); i++ {
			deps[i] = providerKey{
				Type: fnType.In(i),
			}
		}
	}

	p := &funcProvider{
		providerBase: providerBase{t: t},
		fn:           fnVal,
		deps:         deps,
	}

	err := applyOptions(opts, func(opt ProvideOption) error {
		return opt.applyProvider(p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (p *funcProvider) Dependencies() []providerKey {
	return p.deps
}

func (p *funcProvider) New(deps []reflect.Value) (any, error) {
	out := p.fn.Call(deps)

	val := out[0].Interface()

	var err error
	if len(out) == 2 && !out[1].IsNil() {
		err = out[1].Interface().(error)
	}

	return val, err
}

var _ provider = (*funcProvider)(nil)

func validateProvidedType(t reflect.Type) error {
	switch t {
	// These types have special meaning to the resolver and cannot be provided.
	case typeError,
		typeContext,
		typeResolver:
		return errors.Errorf("invalid provided type %s", t)
	}

	return nil
}
