package wirebox

import (
	"context"
	"reflect"
	"sync"

	"github.com/jmorgan/wirebox/internal/errors"
)

// resolveChain is the ordered list of keys currently being resolved,
// used to detect dependency cycles and report the cycle path.
type resolveChain []providerKey

func (ch resolveChain) contains(key providerKey) bool {
	for _, k := range ch {
		if k == key {
			return true
		}
	}
	return false
}

func (ch resolveChain) path(key providerKey) []string {
	path := make([]string, 0, len(ch)+1)
	for _, k := range ch {
		path = append(path, k.String())
	}
	return append(path, key.String())
}

// memoCell is a write-once slot holding a provider's construction result.
// The done channel distinguishes "not yet computed" from any stored result,
// including a legitimately nil value or a construction error.
type memoCell struct {
	key  providerKey
	val  any
	err  error
	done chan struct{}

	// next is the in-flight cell this cell's construction is blocked on,
	// guarded by waitMu. The edges form a wait-for graph used to detect
	// cross-goroutine cycles that no single resolve chain traverses.
	next *memoCell
}

func newMemoCell(key providerKey) *memoCell {
	return &memoCell{
		key:  key,
		done: make(chan struct{}),
	}
}

func (c *memoCell) set(val any, err error) {
	c.val = val
	c.err = err
	close(c.done)
}

// waitMu guards the next pointers of all in-flight memo cells.
var waitMu sync.Mutex

// await blocks until the cell's result is stored. from is the cell whose
// construction is doing the waiting, nil for a top-level resolution.
//
// Goroutines first-resolving different entry points of a cyclic
// configuration each pass their own chain check and then block on a cell
// the other is constructing. Recording the wait-for edge before blocking
// turns that deadlock into a [CycleError] on one side; the other side then
// observes the memoized error.
func (c *memoCell) await(from *memoCell) (any, error) {
	select {
	case <-c.done:
		return c.val, c.err
	default:
	}

	if from != nil {
		if err := link(from, c); err != nil {
			return nil, err
		}
		defer unlink(from)
	}

	<-c.done
	return c.val, c.err
}

// link records that from's construction is blocked on to. It fails with a
// [CycleError] if the resulting wait-for edges would close a loop.
func link(from, to *memoCell) error {
	waitMu.Lock()
	defer waitMu.Unlock()

	path := []string{from.key.String()}
	for c := to; c != nil; c = c.next {
		path = append(path, c.key.String())
		if c == from {
			return &CycleError{Chain: path}
		}
	}

	from.next = to
	return nil
}

func unlink(from *memoCell) {
	waitMu.Lock()
	from.next = nil
	waitMu.Unlock()
}

func resolveKey(ctx context.Context, scope *Registry, key providerKey, chain resolveChain, from *memoCell) (any, error) {
	p, owner := scope.lookup(key)
	if p == nil {
		return nil, &UnresolvedDependencyError{Key: key.String()}
	}

	return resolveProvider(ctx, owner, key, p, chain, from)
}

func resolveProvider(ctx context.Context, owner *Registry, key providerKey, p provider, chain resolveChain, from *memoCell) (any, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	// The cycle check must run before waiting on the memo cell, otherwise a
	// cyclic configuration would block on its own in-flight construction.
	if chain.contains(key) {
		return nil, &CycleError{Chain: chain.path(key)}
	}

	// The resolution that stores the cell runs the constructor. Everyone
	// else waits on the cell, so the constructor runs exactly once ever,
	// no matter how many paths or goroutines depend on this provider.
	cell, loaded := owner.memo.LoadOrStore(p, newMemoCell(key))
	if loaded {
		return cell.await(from)
	}

	val, err := construct(ctx, owner, p, key, append(chain, key), cell)
	cell.set(val, err)

	return val, err
}

func construct(ctx context.Context, owner *Registry, p provider, key providerKey, chain resolveChain, cell *memoCell) (any, error) {
	deps := p.Dependencies()

	var depVals []reflect.Value
	if len(deps) > 0 {
		depVals = make([]reflect.Value, len(deps))
		for i, depKey := range deps {
			var depVal any
			var depErr error

			switch depKey.Type {
			case typeContext:
				// Pass along the context
				depVal = ctx

			case typeResolver:
				var ready func()
				depVal, ready = newInjectedResolver(owner, key)
				defer ready()

			default:
				// Recursive call: depth-first, left-to-right.
				// Dependencies resolve against the scope the provider was
				// registered with, so the memoized value does not depend on
				// which child scope happened to resolve it first.
				depVal, depErr = resolveKey(ctx, owner, depKey, chain, cell)
			}

			if depErr != nil {
				// Stop at the first error
				return nil, errors.Wrapf(depErr, "dependency %s", depKey)
			}
			depVals[i] = safeVal(depKey.Type, depVal)
		}
	}

	return p.New(depVals)
}
