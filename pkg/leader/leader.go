// Package leader exposes whether this node currently leads the deployment.
// Election itself happens elsewhere; background maintenance only reads the
// answer.
package leader

import (
	"context"
	"sync/atomic"
)

// Oracle answers whether this node is the leader.
type Oracle interface {
	IsLeader(ctx context.Context) bool
}

// Static is an Oracle with a fixed or externally toggled answer.
type Static struct {
	leader atomic.Bool
}

func NewStatic(isLeader bool) *Static {
	s := &Static{}
	s.leader.Store(isLeader)
	return s
}

func (s *Static) IsLeader(context.Context) bool {
	return s.leader.Load()
}

// Set changes the answer, e.g. when an external election callback fires.
func (s *Static) Set(isLeader bool) {
	s.leader.Store(isLeader)
}

// OracleFunc adapts a function to the Oracle interface.
type OracleFunc func(ctx context.Context) bool

func (f OracleFunc) IsLeader(ctx context.Context) bool {
	return f(ctx)
}

var (
	_ Oracle = (*Static)(nil)
	_ Oracle = OracleFunc(nil)
)
