package backoff

import (
	"math"
	"time"

	"github.com/sethvargo/go-retry"
)

// Exponential implements a backoff strategy that increases the backoff duration exponentially,
// up to a maximum backoff duration and a maximum number of retries.
type Exponential struct {
	BaseBackoff time.Duration // Base backoff duration
	MaxBackoff  time.Duration // Maximum backoff duration
	MaxRetries  uint64        // Retries after the first attempt
}

func NewExponential(baseBackoff, maxBackoff time.Duration, maxRetries uint64) *Exponential {
	return &Exponential{
		BaseBackoff: baseBackoff,
		MaxBackoff:  maxBackoff,
		MaxRetries:  maxRetries,
	}
}

// New returns a fresh stateful backoff for one retried operation.
func (eb *Exponential) New() retry.Backoff {
	b := retry.NewExponential(eb.BaseBackoff)
	if eb.MaxBackoff > 0 {
		b = retry.WithCappedDuration(eb.MaxBackoff, b)
	}
	return retry.WithMaxRetries(eb.MaxRetries, b)
}

// BackoffDuration returns the delay before the given retry attempt (1-based).
func (eb *Exponential) BackoffDuration(attempts int) time.Duration {
	if attempts <= 0 {
		return 0
	}
	backoff := float64(eb.BaseBackoff) * math.Pow(2, float64(attempts-1))
	if eb.MaxBackoff > 0 && backoff > float64(eb.MaxBackoff) {
		backoff = float64(eb.MaxBackoff)
	}
	return time.Duration(backoff)
}

// compile time check whether the Exponential implements the Backoff interface.
var _ Backoff = (*Exponential)(nil)
