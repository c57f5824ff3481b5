package backoff

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// Noop retries immediately, up to MaxRetries times.
type Noop struct {
	MaxRetries uint64
}

func NewNoop(maxRetries uint64) *Noop {
	return &Noop{MaxRetries: maxRetries}
}

func (b *Noop) New() retry.Backoff {
	return retry.WithMaxRetries(b.MaxRetries, retry.BackoffFunc(func() (time.Duration, bool) {
		return 0, false
	}))
}

func (b *Noop) BackoffDuration(int) time.Duration {
	return 0
}

// compile time check whether the Noop implements the Backoff interface.
var _ Backoff = (*Noop)(nil)
