package strategy

import (
	"context"

	"github.com/genie-oss/genie/pkg/orchestrator/selection"
)

const FirstMatchType = "first-match"

// FirstMatch picks the first candidate. Candidates arrive in priority order,
// so this is the highest priority match.
type FirstMatch[R any] struct {
	identity string
}

func NewFirstMatch[R any](identity string) *FirstMatch[R] {
	if identity == "" {
		identity = FirstMatchType
	}
	return &FirstMatch[R]{identity: identity}
}

func (s *FirstMatch[R]) Identity() string {
	return s.identity
}

func (s *FirstMatch[R]) Select(_ context.Context, sc selection.Context[R]) (selection.Result[R], error) {
	candidates := sc.Candidates()
	return selection.Selected(s.identity, candidates[0], rationalef("first of %d candidates in priority order", len(candidates))), nil
}

// compile-time check that FirstMatch implements selection.Selector
var _ selection.Selector[any] = (*FirstMatch[any])(nil)
