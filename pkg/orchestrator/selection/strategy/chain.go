package strategy

import (
	"context"
	"fmt"
	"strings"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/orchestrator/selection"
)

const ChainType = "chain"

// Chain asks each selector in turn and returns the first result holding a
// resource. The returned result keeps the identity of the selector that
// chose. When every selector comes back empty the chain returns no selection
// with all their rationales.
type Chain[R any] struct {
	identity  string
	selectors []selection.Selector[R]
}

func NewChain[R any](identity string, selectors ...selection.Selector[R]) (*Chain[R], error) {
	if len(selectors) == 0 {
		return nil, fmt.Errorf("selector chain needs at least one selector")
	}
	if identity == "" {
		names := make([]string, len(selectors))
		for i, s := range selectors {
			names[i] = s.Identity()
		}
		identity = ChainType + "(" + strings.Join(names, ",") + ")"
	}
	return &Chain[R]{identity: identity, selectors: selectors}, nil
}

func (c *Chain[R]) Identity() string {
	return c.identity
}

func (c *Chain[R]) Select(ctx context.Context, sc selection.Context[R]) (selection.Result[R], error) {
	rationales := make([]string, 0, len(c.selectors))
	for _, s := range c.selectors {
		result, err := s.Select(ctx, sc)
		if err == nil {
			err = result.Validate()
		}
		if err == nil {
			err = result.ValidateCandidates(sc.Candidates())
		}
		if err != nil {
			if genieerrors.IsErrorWithCode(err, genieerrors.SelectionError) {
				return selection.Result[R]{}, err
			}
			return selection.Result[R]{}, selection.NewErrSelectorFailed(err, s.Identity(), sc.JobID())
		}
		if !result.IsEmpty() {
			return result, nil
		}
		rationales = append(rationales, result.String())
	}
	return selection.NoSelection[R](c.identity, "no selector chose a resource: %s", strings.Join(rationales, "; ")), nil
}

// compile-time check that Chain implements selection.Selector
var _ selection.Selector[any] = (*Chain[any])(nil)
