package wirebox

import (
	"fmt"
	"reflect"
)

// providerKey identifies a registered provider or provided value:
// the type it produces plus an optional tag.
type providerKey struct {
	Type reflect.Type
	Tag  any
}

func (k providerKey) String() string {
	if k.Tag == nil {
		return k.Type.String()
	}
	return fmt.Sprintf("%s (tag %v)", k.Type, k.Tag)
}
