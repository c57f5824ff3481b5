package orchestrator

import (
	"context"
	"sync/atomic"
)

// Admission bounds the number of submissions in flight on this node. A
// submission holds a slot from acceptance until launch or failure.
type Admission struct {
	max      int64
	inFlight atomic.Int64
}

// NewAdmission returns an admission controller allowing max concurrent
// submissions. max must be greater than zero.
func NewAdmission(max int) *Admission {
	return &Admission{max: int64(max)}
}

// TryAcquire takes a slot if one is free. It never blocks.
func (a *Admission) TryAcquire() bool {
	for {
		current := a.inFlight.Load()
		if current >= a.max {
			return false
		}
		if a.inFlight.CompareAndSwap(current, current+1) {
			inFlightGauge.Add(context.Background(), 1)
			return true
		}
	}
}

// Release frees a slot taken by TryAcquire.
func (a *Admission) Release() {
	for {
		current := a.inFlight.Load()
		if current <= 0 {
			return
		}
		if a.inFlight.CompareAndSwap(current, current-1) {
			inFlightGauge.Add(context.Background(), -1)
			return
		}
	}
}

func (a *Admission) InFlight() int {
	return int(a.inFlight.Load())
}

func (a *Admission) Available() int {
	return int(a.max - a.inFlight.Load())
}

func (a *Admission) Max() int {
	return int(a.max)
}
