//go:build unit || !integration

package leader

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatic(t *testing.T) {
	ctx := context.Background()
	s := NewStatic(false)
	assert.False(t, s.IsLeader(ctx))
	s.Set(true)
	assert.True(t, s.IsLeader(ctx))
}

func TestOracleFunc(t *testing.T) {
	var o Oracle = OracleFunc(func(context.Context) bool { return true })
	assert.True(t, o.IsLeader(context.Background()))
}
