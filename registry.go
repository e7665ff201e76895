package wirebox

import (
	"cmp"
	"context"
	"reflect"
	"slices"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/jmorgan/wirebox/internal/errors"
)

// Registry holds registered providers and provided values, and resolves
// requested types by first resolving their dependencies.
//
// Providers and values are registered once, when the Registry is created,
// and live for the lifetime of the Registry. Each provider's constructor is
// invoked at most once ever; the result is memoized and returned for every
// subsequent resolution, from any dependency path.
type Registry struct {
	parent    *Registry
	providers map[providerKey]provider
	memo      *xsync.MapOf[provider, *memoCell]
}

var _ Resolver = (*Registry)(nil)

// NewRegistry creates a new [Registry] with the provided options.
//
// Available options:
//   - [WithProvider] registers a constructor function.
//   - [WithValue] registers an eager leaf value.
//   - [WithLazy] registers a leaf value computed at most once, on first demand.
//   - [WithModule] applies a reusable group of registrations.
//   - [WithValidation] validates the dependency graph before returning.
func NewRegistry(opts ...RegistryOption) (*Registry, error) {
	r := &Registry{
		providers: make(map[providerKey]provider),
		memo:      xsync.NewMapOf[provider, *memoCell](),
	}

	err := r.applyOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, "wirebox.NewRegistry")
	}

	return r, nil
}

func (r *Registry) applyOptions(opts []RegistryOption) error {
	// Flatten any modules before sorting and applying options
	opts = flattenModules(opts)

	// Sort options by precedence so validation runs after all registrations.
	// Use stable sort because the registration order of providers matters.
	slices.SortStableFunc(opts, func(a, b RegistryOption) int {
		return cmp.Compare(a.order(), b.order())
	})

	var errs errors.MultiError
	for _, o := range opts {
		errs = errs.Append(o.applyRegistry(r))
	}

	return errs.Join()
}

// register adds a provider under its type, or under its aliases if any.
//
// A key already registered in this scope is a configuration error unless the
// new registration carries [WithOverride]. Shadowing a parent scope's
// registration is always explicit and allowed.
func (r *Registry) register(p provider) error {
	keys := []providerKey{{Type: p.Type(), Tag: p.Tag()}}
	if aliases := p.Aliases(); len(aliases) > 0 {
		keys = make([]providerKey, len(aliases))
		for i, alias := range aliases {
			keys[i] = providerKey{Type: alias, Tag: p.Tag()}
		}
	}

	for _, key := range keys {
		if _, exists := r.providers[key]; exists && !p.overrides() {
			return &DuplicateRegistrationError{Key: key.String()}
		}
		r.providers[key] = p
	}

	return nil
}

// lookup finds the provider for a key, walking up the scope chain.
// It returns the provider and the Registry it was registered with.
func (r *Registry) lookup(key providerKey) (provider, *Registry) {
	for scope := r; scope != nil; scope = scope.parent {
		if p, ok := scope.providers[key]; ok {
			return p, scope
		}
	}

	return nil, nil
}

// NewScope creates a child [Registry].
//
// Providers registered with the parent are visible to the child. Registering
// a key that exists on the parent shadows it for this scope only; parent and
// sibling scopes are unaffected. This is the mechanism for overriding a
// default registration without touching the parent configuration.
//
// Memoized results are shared with the scope each provider was registered
// with, so a parent provider resolved through two sibling scopes still
// constructs its value once.
func (r *Registry) NewScope(opts ...RegistryOption) (*Registry, error) {
	scope := &Registry{
		parent:    r,
		providers: make(map[providerKey]provider),
		memo:      xsync.NewMapOf[provider, *memoCell](),
	}

	err := scope.applyOptions(opts)
	if err != nil {
		return nil, errors.Wrap(err, "wirebox.Registry.NewScope")
	}

	return scope, nil
}

// Contains returns true if the Registry, or a parent scope, has a provider
// or value registered for the given [reflect.Type].
//
// Available options:
//   - [WithTag] specifies the tag associated with the registration.
func (r *Registry) Contains(t reflect.Type, opts ...ResolveOption) bool {
	key := providerKey{Type: t}
	for _, opt := range opts {
		key = opt.applyKey(key)
	}

	p, _ := r.lookup(key)
	return p != nil
}

// Resolve returns the value registered for the given [reflect.Type],
// constructing it and its dependencies if this is the first resolution.
//
// It fails with an error matching [ErrUnresolvedDependency] if the type, or
// any dependency reachable from it, is not registered, and with an error
// matching [ErrDependencyCycle] if the dependency graph references itself.
//
// Available options:
//   - [WithTag] specifies the tag associated with the registration.
func (r *Registry) Resolve(ctx context.Context, t reflect.Type, opts ...ResolveOption) (any, error) {
	key := providerKey{Type: t}
	for _, opt := range opts {
		key = opt.applyKey(key)
	}

	val, err := resolveKey(ctx, r, key, nil, nil)
	if err != nil {
		return val, errors.Wrapf(err, "wirebox.Registry.Resolve %s", key)
	}

	return val, nil
}
