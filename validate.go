package wirebox

import (
	"fmt"
	"strings"

	"github.com/jmorgan/wirebox/internal/errors"
)

// WithValidation validates registered providers on [Registry] creation.
//
// This checks that every dependency reachable from a registered provider is
// itself registered, and that the dependency graph has no cycles. All
// problems found are reported together, so a misconfigured composition root
// fails fast with a complete picture instead of failing one resolution at a
// time.
func WithValidation() RegistryOption {
	return newRegistryOption(orderValidation, func(r *Registry) error {
		err := r.validateGraph()
		if err != nil {
			return errors.Wrap(err, "validation")
		}

		return nil
	})
}

func (r *Registry) validateGraph() error {
	var errs errors.MultiError
	problems := make(map[provider]string)
	checked := make(map[provider]struct{})

	for key, p := range r.providers {
		if _, ok := checked[p]; ok {
			// Registered under multiple aliases; already validated
			continue
		}
		checked[p] = struct{}{}

		prob := r.validateProvider(p, problems, make(map[provider]struct{}))
		if prob != "" {
			errs = errs.Append(errors.Errorf("provider %s: %s", key, prob))
		}
	}

	return errs.Join()
}

func (r *Registry) validateProvider(p provider, problems map[provider]string, visiting map[provider]struct{}) string {
	if prob, ok := problems[p]; ok {
		return prob
	}

	deps := p.Dependencies()
	if len(deps) == 0 {
		problems[p] = ""
		return ""
	}

	if _, ok := visiting[p]; ok {
		return ErrDependencyCycle.Error()
	}
	visiting[p] = struct{}{}
	defer delete(visiting, p)

	var probs []string
	for _, depKey := range deps {
		if depKey.Type == typeContext || depKey.Type == typeResolver {
			continue
		}

		depProvider, _ := r.lookup(depKey)
		if depProvider == nil {
			probs = append(probs, fmt.Sprintf("dependency %s: not registered", depKey))
			continue
		}

		prob := r.validateProvider(depProvider, problems, visiting)
		if prob != "" {
			probs = append(probs, fmt.Sprintf("dependency %s: %s", depKey, prob))
		}
	}

	if len(probs) > 0 {
		joined := strings.Join(probs, "; ")
		problems[p] = joined
		return joined
	}

	problems[p] = ""
	return ""
}
