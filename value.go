package wirebox

import (
	"reflect"

	"github.com/jmorgan/wirebox/internal/errors"
)

// valueProvider holds an eagerly provided leaf value.
// It has no dependencies and returns the same value on every resolution.
type valueProvider struct {
	providerBase
	val any
}

func newValueProvider(val any, opts ...ProvideOption) (*valueProvider, error) {
	t := reflect.TypeOf(val)

	if err := validateProvidedType(t); err != nil {
		return nil, err
	}

	p := &valueProvider{
		providerBase: providerBase{t: t},
		val:          val,
	}

	err := applyOptions(opts, func(opt ProvideOption) error {
		return opt.applyProvider(p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (*valueProvider) Dependencies() []providerKey {
	return nil
}

func (p *valueProvider) New([]reflect.Value) (any, error) {
	return p.val, nil
}

var _ provider = (*valueProvider)(nil)

// lazyProvider holds a provided value computed by a thunk.
// The thunk takes no dependencies and runs at most once, on first demand.
// The resolver's memo cell replaces the thunk after that, so any side effect
// in the thunk is observed exactly once.
type lazyProvider struct {
	providerBase
	fn reflect.Value
}

func newLazyProvider(fn any, opts ...ProvideOption) (*lazyProvider, error) {
	fnType := reflect.TypeOf(fn)
	fnVal := reflect.ValueOf(fn)

	if fnType.NumIn() != 0 {
		return nil, errors.New("lazy value function must not take arguments")
	}

	// The thunk must return T or (T, error)
	var t reflect.Type
	switch {
	case fnType.NumOut() == 1 && fnType.Out(0) != typeError:
		t = fnType.Out(0)
	case fnType.NumOut() == 2 && fnType.Out(1) == typeError:
		t = fnType.Out(0)
	default:
		return nil, errors.New("lazy value function must return T or (T, error)")
	}

	if err := validateProvidedType(t); err != nil {
		return nil, err
	}

	p := &lazyProvider{
		providerBase: providerBase{t: t},
		fn:           fnVal,
	}

	err := applyOptions(opts, func(opt ProvideOption) error {
		return opt.applyProvider(p)
	})
	if err != nil {
		return nil, err
	}

	return p, nil
}

func (*lazyProvider) Dependencies() []providerKey {
	return nil
}

func (p *lazyProvider) New([]reflect.Value) (any, error) {
	out := p.fn.Call(nil)

	val := out[0].Interface()

	var err error
	if len(out) == 2 && !out[1].IsNil() {
		err = out[1].Interface().(error)
	}

	return val, err
}

var _ provider = (*lazyProvider)(nil)
