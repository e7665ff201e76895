package wirebox

import (
	"context"
	"reflect"

	"github.com/jmorgan/wirebox/internal/errors"
)

// Invoke calls the given function with parameters resolved from the provided
// [Resolver]. This is how a composition root triggers resolution of the
// top-level types it needs and hands them to the application.
//
// The function may take any number of parameters, which are resolved from
// the Resolver, and may return any number of results. An [error] return
// value is passed along; any other return values are ignored.
//
// Available options:
//   - [WithTagged] specifies a tag for a parameter.
func Invoke(ctx context.Context, r Resolver, fn any, opts ...InvokeOption) error {
	fnType := reflect.TypeOf(fn)

	if fnType == nil || fnType.Kind() != reflect.Func {
		return errors.Errorf("wirebox.Invoke %T: fn must be a function", fn)
	}

	fnVal := reflect.ValueOf(fn)

	deps := make([]providerKey, fnType.NumIn())
	for i := 0; i < fnType.NumIn(); i++ {
		deps[i] = providerKey{
			Type: fnType.In(i),
		}
	}

	config := &invokeConfig{
		fn:   fnVal,
		deps: deps,
	}

	err := applyOptions(opts, func(opt InvokeOption) error {
		return opt.applyInvoke(config)
	})
	if err != nil {
		return errors.Wrapf(err, "wirebox.Invoke %T", fn)
	}

	in := make([]reflect.Value, fnType.NumIn())
	for i, dep := range config.deps {
		var depVal any
		var depErr error

		switch {
		case dep.Type == typeContext:
			depVal = ctx
		case dep.Type == typeResolver:
			depVal = r
		case dep.Tag != nil:
			depVal, depErr = r.Resolve(ctx, dep.Type, WithTag(dep.Tag))
		default:
			depVal, depErr = r.Resolve(ctx, dep.Type)
		}

		if depErr != nil {
			// Stop at the first error
			return errors.Wrapf(depErr, "wirebox.Invoke %T", fn)
		}
		in[i] = safeVal(dep.Type, depVal)
	}

	// Check for a context error before invoking the function
	if ctx.Err() != nil {
		return errors.Wrapf(ctx.Err(), "wirebox.Invoke %T", fn)
	}

	out := fnVal.Call(in)

	// Return the first error return value, if any.
	// Don't wrap the error, return it as-is.
	for i := 0; i < fnType.NumOut(); i++ {
		if fnType.Out(i) == typeError {
			err, _ := out[i].Interface().(error)
			return err
		}
	}

	return nil
}

// InvokeOption is used to configure the behavior of [Invoke].
//
// Available options:
//   - [WithTagged]
type InvokeOption interface {
	applyInvoke(*invokeConfig) error
}

type invokeConfig struct {
	fn   reflect.Value
	deps []providerKey
}
