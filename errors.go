package wirebox

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnresolvedDependency is returned when no provider or value is
	// registered for a required key.
	ErrUnresolvedDependency = errors.New("unresolved dependency")

	// ErrDependencyCycle is returned when a provider's dependency graph
	// references itself.
	ErrDependencyCycle = errors.New("dependency cycle detected")

	// ErrDuplicateRegistration is returned when two unscoped registrations
	// conflict for the same key.
	ErrDuplicateRegistration = errors.New("duplicate registration")
)

// UnresolvedDependencyError is returned when a requested key, or a
// dependency reachable from it, has no registered provider or value.
// It matches [ErrUnresolvedDependency] with [errors.Is].
type UnresolvedDependencyError struct {
	// Key names the missing provider or value.
	Key string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("unresolved dependency %s", e.Key)
}

func (e *UnresolvedDependencyError) Unwrap() error {
	return ErrUnresolvedDependency
}

// CycleError is returned when resolution re-enters a key that is already
// being resolved. It matches [ErrDependencyCycle] with [errors.Is].
type CycleError struct {
	// Chain is the in-progress resolution path, ending with the key that
	// closed the cycle.
	Chain []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected: %s", strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error {
	return ErrDependencyCycle
}

// DuplicateRegistrationError is returned by [NewRegistry] when the same key
// is registered more than once in the same scope without [WithOverride].
// It matches [ErrDuplicateRegistration] with [errors.Is].
type DuplicateRegistrationError struct {
	// Key names the conflicting registration.
	Key string
}

func (e *DuplicateRegistrationError) Error() string {
	return fmt.Sprintf("duplicate registration for %s", e.Key)
}

func (e *DuplicateRegistrationError) Unwrap() error {
	return ErrDuplicateRegistration
}
