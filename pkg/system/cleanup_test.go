//go:build unit || !integration

package system

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/logger"
)

type SystemCleanupSuite struct {
	suite.Suite
}

func TestSystemCleanupSuite(t *testing.T) {
	suite.Run(t, new(SystemCleanupSuite))
}

func (s *SystemCleanupSuite) SetupTest() {
	logger.ConfigureTestLogging(s.T())
}

func (s *SystemCleanupSuite) TestRunsEveryCallback() {
	var calls atomic.Int32
	cm := NewCleanupManager()
	for _, name := range []string{"store", "housekeeping", "telemetry"} {
		cm.RegisterCallback(name, func(context.Context) error {
			calls.Add(1)
			return nil
		})
	}

	s.NoError(cm.Cleanup(context.Background()))
	s.Equal(int32(3), calls.Load())
}

func (s *SystemCleanupSuite) TestCombinesErrors() {
	first := errors.New("first")
	second := errors.New("second")
	cm := NewCleanupManager()
	cm.RegisterCallback("a", func(context.Context) error { return first })
	cm.RegisterCallback("b", func(context.Context) error { return second })
	cm.RegisterCallback("c", func(context.Context) error { return context.Canceled })

	err := cm.Cleanup(context.Background())
	s.ErrorIs(err, first)
	s.ErrorIs(err, second)
	s.NotErrorIs(err, context.Canceled)
}

func (s *SystemCleanupSuite) TestCleanupRunsOnce() {
	var calls atomic.Int32
	cm := NewCleanupManager()
	cm.RegisterCallback("store", func(context.Context) error {
		calls.Add(1)
		return nil
	})

	s.NoError(cm.Cleanup(context.Background()))
	s.NoError(cm.Cleanup(context.Background()))
	cm.RegisterCallback("late", func(context.Context) error {
		calls.Add(1)
		return nil
	})
	s.Equal(int32(1), calls.Load())
}
