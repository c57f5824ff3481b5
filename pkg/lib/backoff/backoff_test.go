//go:build unit || !integration

package backoff

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func drain(b Backoff) []time.Duration {
	seq := b.New()
	var out []time.Duration
	for {
		d, stop := seq.Next()
		if stop {
			return out
		}
		out = append(out, d)
	}
}

func TestExponentialSequenceIsCappedAndBounded(t *testing.T) {
	b := NewExponential(100*time.Millisecond, 300*time.Millisecond, 4)
	assert.Equal(t, []time.Duration{
		100 * time.Millisecond,
		200 * time.Millisecond,
		300 * time.Millisecond,
		300 * time.Millisecond,
	}, drain(b))
}

func TestExponentialSequencesAreIndependent(t *testing.T) {
	b := NewExponential(time.Millisecond, time.Second, 2)
	assert.Len(t, drain(b), 2)
	assert.Len(t, drain(b), 2)
}

func TestBackoffDuration(t *testing.T) {
	b := NewExponential(time.Second, 5*time.Second, 10)
	assert.Equal(t, time.Duration(0), b.BackoffDuration(0))
	assert.Equal(t, time.Second, b.BackoffDuration(1))
	assert.Equal(t, 4*time.Second, b.BackoffDuration(3))
	assert.Equal(t, 5*time.Second, b.BackoffDuration(4))
}

func TestNoop(t *testing.T) {
	b := NewNoop(3)
	assert.Equal(t, []time.Duration{0, 0, 0}, drain(b))
	assert.Empty(t, drain(NewNoop(0)))
}
