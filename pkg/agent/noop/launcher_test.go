//go:build unit || !integration

package noop

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
)

func TestLaunchRecordsSpecification(t *testing.T) {
	l := NewLauncher()
	handle, err := l.Launch(context.Background(), models.JobSpecification{JobID: "job-1"})
	require.NoError(t, err)
	assert.Equal(t, "job-1", handle.JobID)
	assert.Equal(t, Name, handle.Launcher)

	launched := l.Launched()
	require.Len(t, launched, 1)
	assert.Equal(t, "job-1", launched[0].JobID)
}

func TestLaunchHookError(t *testing.T) {
	l := NewLauncherWithConfig(LauncherConfig{
		Name: "flaky",
		ExternalHooks: LauncherConfigExternalHooks{
			Launch: func(context.Context, models.JobSpecification) (agent.Handle, error) {
				return agent.Handle{}, errors.New("no capacity")
			},
		},
	})
	_, err := l.Launch(context.Background(), models.JobSpecification{JobID: "job-1"})
	assert.True(t, genieerrors.IsErrorWithCode(err, genieerrors.LaunchError))
	assert.Empty(t, l.Launched())
	assert.Equal(t, "flaky", l.Name())
}
