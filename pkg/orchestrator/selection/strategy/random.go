package strategy

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/genie-oss/genie/pkg/orchestrator/selection"
)

const RandomType = "random"

// Random picks uniformly among the candidates.
type Random[R any] struct {
	identity string
	mu       sync.Mutex
	rng      *rand.Rand
}

type RandomParams struct {
	// Identity defaults to RandomType.
	Identity string
	// Seed makes the sequence reproducible. Zero seeds from the clock.
	Seed int64
}

func NewRandom[R any](params RandomParams) *Random[R] {
	if params.Identity == "" {
		params.Identity = RandomType
	}
	if params.Seed == 0 {
		params.Seed = time.Now().UnixNano()
	}
	return &Random[R]{
		identity: params.Identity,
		//nolint:gosec
		rng: rand.New(rand.NewSource(params.Seed)),
	}
}

func (s *Random[R]) Identity() string {
	return s.identity
}

func (s *Random[R]) Select(_ context.Context, sc selection.Context[R]) (selection.Result[R], error) {
	candidates := sc.Candidates()
	s.mu.Lock()
	i := s.rng.Intn(len(candidates))
	s.mu.Unlock()
	return selection.Selected(s.identity, candidates[i], rationalef("selected randomly from %d candidates", len(candidates))), nil
}

// compile-time check that Random implements selection.Selector
var _ selection.Selector[any] = (*Random[any])(nil)
