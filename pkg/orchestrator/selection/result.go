package selection

import (
	"fmt"
	"strings"
)

// Result is the outcome of a selection. A result without a resource always
// carries a rationale. A result with a resource may carry one for audit.
type Result[R any] struct {
	selectorIdentity string
	resource         *R
	rationale        string
}

// Selected returns a result holding r. rationale may be blank.
func Selected[R any](selectorIdentity string, r R, rationale string) Result[R] {
	return Result[R]{
		selectorIdentity: selectorIdentity,
		resource:         &r,
		rationale:        rationale,
	}
}

// NoSelection returns a result without a resource. rationale must explain why
// nothing was chosen; Validate rejects a blank one.
func NoSelection[R any](selectorIdentity string, rationale string, args ...any) Result[R] {
	if len(args) > 0 {
		rationale = fmt.Sprintf(rationale, args...)
	}
	return Result[R]{
		selectorIdentity: selectorIdentity,
		rationale:        rationale,
	}
}

func (r Result[R]) SelectorIdentity() string { return r.selectorIdentity }
func (r Result[R]) Rationale() string        { return r.rationale }
func (r Result[R]) IsEmpty() bool            { return r.resource == nil }

// Resource returns the selected resource, if any.
func (r Result[R]) Resource() (R, bool) {
	if r.resource == nil {
		var zero R
		return zero, false
	}
	return *r.resource, true
}

// Validate checks the result invariants.
func (r Result[R]) Validate() error {
	if strings.TrimSpace(r.selectorIdentity) == "" {
		return fmt.Errorf("selection result has no selector identity")
	}
	if r.resource == nil && strings.TrimSpace(r.rationale) == "" {
		return fmt.Errorf("selector %s returned no resource and no rationale", r.selectorIdentity)
	}
	return nil
}

// ValidateCandidates checks that a selected resource is one of the
// candidates. Resources are compared by id, launchers by name. Results
// without a resource, or resources without either, pass.
func (r Result[R]) ValidateCandidates(candidates []R) error {
	if r.resource == nil {
		return nil
	}
	key, ok := resourceKey(*r.resource)
	if !ok {
		return nil
	}
	for _, c := range candidates {
		if k, ok := resourceKey(c); ok && k == key {
			return nil
		}
	}
	return fmt.Errorf("selector %s chose %s which is not one of the %d candidates",
		r.selectorIdentity, key, len(candidates))
}

func resourceKey(v any) (string, bool) {
	switch r := v.(type) {
	case interface{ GetID() string }:
		return r.GetID(), true
	case interface{ Name() string }:
		return r.Name(), true
	default:
		return "", false
	}
}

func (r Result[R]) String() string {
	if r.resource == nil {
		return fmt.Sprintf("%s: none (%s)", r.selectorIdentity, r.rationale)
	}
	if r.rationale == "" {
		return fmt.Sprintf("%s: selected", r.selectorIdentity)
	}
	return fmt.Sprintf("%s: selected (%s)", r.selectorIdentity, r.rationale)
}
