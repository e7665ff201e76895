// Package wirebox is a dependency injection registry for Go.
//
// Providers (constructor functions) and provided leaf values are registered
// once, at composition-root time, keyed by the type they produce plus an
// optional tag. Resolution recursively satisfies a requested type's
// dependencies depth-first, invokes each constructor exactly once ever, and
// memoizes the result in a write-once cell that is safe for concurrent
// first-resolutions.
//
// Misconfiguration is a hard error, never a silent fallback: a missing
// dependency fails with [ErrUnresolvedDependency], a cyclic graph with
// [ErrDependencyCycle], and conflicting registrations for the same key with
// [ErrDuplicateRegistration] unless the replacement is explicit via
// [WithOverride] or a child scope. [WithValidation] moves the first two
// checks to [NewRegistry] time, so a broken graph aborts before the
// application proceeds.
//
// Basic usage:
//
//	r, err := wirebox.NewRegistry(
//		wirebox.WithValue(cfg),
//		wirebox.WithProvider(NewStore),
//		wirebox.WithProvider(NewService),
//		wirebox.WithValidation(),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	err = wirebox.Invoke(ctx, r, func(svc *Service) error {
//		return svc.Run(ctx)
//	})
package wirebox
