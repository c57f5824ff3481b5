package selection

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

// Run invokes the selector and enforces the result contract. A selector
// error, a result without both resource and rationale, or a resource that is
// not one of the candidates comes back as a SelectionError naming the
// selector. Every outcome is counted.
func Run[R any](ctx context.Context, selector Selector[R], sc Context[R]) (Result[R], error) {
	identity := selector.Identity()
	logger := log.Ctx(ctx).With().Str("Selector", identity).Str("JobID", sc.JobID()).Logger()

	result, err := selector.Select(ctx, sc)
	if err == nil {
		err = result.Validate()
	}
	if err == nil {
		err = result.ValidateCandidates(sc.Candidates())
	}
	if err != nil {
		selectionsCounter.Inc(ctx, outcomeAttrs(identity, outcomeError)...)
		logger.Error().Err(err).Msg("selector failed")
		if genieerrors.IsErrorWithCode(err, genieerrors.SelectionError) {
			return Result[R]{}, err
		}
		return Result[R]{}, NewErrSelectorFailed(err, identity, sc.JobID())
	}

	if result.IsEmpty() {
		selectionsCounter.Inc(ctx, outcomeAttrs(identity, outcomeNone)...)
		logger.Debug().Str("Rationale", result.Rationale()).Msg("selector chose nothing")
	} else {
		selectionsCounter.Inc(ctx, outcomeAttrs(identity, outcomeSelected)...)
		logger.Debug().Str("Rationale", result.Rationale()).Msg("selector chose a resource")
	}
	return result, nil
}
