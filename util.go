package wirebox

import (
	"context"
	"reflect"

	"github.com/jmorgan/wirebox/internal/errors"
)

// These are commonly used types.
var (
	typeError    = reflect.TypeOf((*(error))(nil)).Elem()
	typeContext  = reflect.TypeOf((*(context.Context))(nil)).Elem()
	typeResolver = reflect.TypeOf((*(Resolver))(nil)).Elem()
)

func safeVal(t reflect.Type, val any) reflect.Value {
	if val == nil {
		return reflect.Zero(t)
	}

	return reflect.ValueOf(val)
}

// Apply functional options and join any errors together.
func applyOptions[O any](opts []O, f func(O) error) error {
	var errs errors.MultiError

	for _, o := range opts {
		errs = errs.Append(f(o))
	}

	return errs.Join()
}
