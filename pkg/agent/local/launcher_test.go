//go:build unit || !integration

package local

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
)

type LauncherSuite struct {
	suite.Suite
	dir      string
	launcher *Launcher
}

func TestLauncherSuite(t *testing.T) {
	suite.Run(t, new(LauncherSuite))
}

func (s *LauncherSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.launcher = NewLauncher()
}

func (s *LauncherSuite) TestLaunchRunsInJobDirectoryWithEnvironment() {
	handle, err := s.launcher.Launch(context.Background(), models.JobSpecification{
		JobID:        "job-1",
		CommandLine:  []string{"sh", "-c", `echo "$GENIE_JOB_ID" > marker`},
		Environment:  map[string]string{"GENIE_JOB_ID": "job-1"},
		JobDirectory: s.dir,
		Timeout:      time.Minute,
	})
	s.Require().NoError(err)
	s.Equal("job-1", handle.JobID)
	s.Equal(Name, handle.Launcher)
	s.NotZero(handle.ProcessID)

	marker := filepath.Join(s.dir, "marker")
	s.Eventually(func() bool {
		data, err := os.ReadFile(marker)
		return err == nil && string(data) == "job-1\n"
	}, 5*time.Second, 10*time.Millisecond)
}

func (s *LauncherSuite) TestEmptyCommandLine() {
	_, err := s.launcher.Launch(context.Background(), models.JobSpecification{JobID: "job-1"})
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.LaunchError))
}

func (s *LauncherSuite) TestMissingExecutable() {
	_, err := s.launcher.Launch(context.Background(), models.JobSpecification{
		JobID:        "job-1",
		CommandLine:  []string{filepath.Join(s.dir, "does-not-exist")},
		JobDirectory: s.dir,
	})
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.LaunchError))
}
