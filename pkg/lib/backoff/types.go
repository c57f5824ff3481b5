package backoff

import (
	"time"

	"github.com/sethvargo/go-retry"
)

// Backoff builds the delay sequence for a retried operation.
type Backoff interface {
	// New returns a new stateful sequence. Sequences are not shared between
	// operations.
	New() retry.Backoff
	// BackoffDuration returns the delay before the given retry attempt.
	BackoffDuration(attempts int) time.Duration
}
