//go:build unit || !integration

package orchestrator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/leader"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/storage/jobfs"
)

const (
	jobRetention = 7 * 24 * time.Hour
	dirRetention = 24 * time.Hour
	interval     = time.Minute
)

type HousekeepingTestSuite struct {
	suite.Suite
	ctrl         *gomock.Controller
	mockJobStore *registry.MockJobStore
	clock        *clock.Mock
	fs           afero.Fs
	jobDirs      *jobfs.Manager
	leader       *leader.Static
	housekeeping *Housekeeping
}

func TestHousekeepingTestSuite(t *testing.T) {
	suite.Run(t, new(HousekeepingTestSuite))
}

func (s *HousekeepingTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockJobStore = registry.NewMockJobStore(s.ctrl)
	s.clock = clock.NewMock()
	s.clock.Set(time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC))
	s.fs = afero.NewMemMapFs()
	s.leader = leader.NewStatic(true)

	var err error
	s.jobDirs, err = jobfs.NewManager(s.fs, "/jobs")
	s.Require().NoError(err)

	s.housekeeping, err = NewHousekeeping(HousekeepingParams{
		JobStore:     s.mockJobStore,
		JobDirs:      s.jobDirs,
		Leader:       s.leader,
		Interval:     interval,
		Workers:      2,
		JobRetention: jobRetention,
		DirRetention: dirRetention,
		BatchSize:    2,
		Clock:        s.clock,
	})
	s.Require().NoError(err)
}

func (s *HousekeepingTestSuite) TearDownTest() {
	s.housekeeping.Stop(context.Background())
	s.ctrl.Finish()
}

// jobDir creates a job directory last modified age ago.
func (s *HousekeepingTestSuite) jobDir(jobID string, age time.Duration) {
	dir, _, err := s.jobDirs.Create(jobID)
	s.Require().NoError(err)
	modified := s.clock.Now().Add(-age)
	s.Require().NoError(s.fs.Chtimes(dir, modified, modified))
}

// jobStatus makes the job store report status for jobID.
func (s *HousekeepingTestSuite) jobStatus(jobID string, status models.JobStatus) {
	s.mockJobStore.EXPECT().GetJob(gomock.Any(), jobID).
		Return(models.JobRecord{Request: models.JobRequest{ID: jobID}, Status: status}, nil).AnyTimes()
}

func (s *HousekeepingTestSuite) exists(jobID string) bool {
	ok, err := afero.DirExists(s.fs, s.jobDirs.Dir(jobID))
	s.Require().NoError(err)
	return ok
}

func (s *HousekeepingTestSuite) TestDeletesJobsInBatches() {
	before := s.clock.Now().Add(-jobRetention)
	gomock.InOrder(
		s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), before, 2).Return(2, nil),
		s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), before, 2).Return(2, nil),
		s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), before, 2).Return(1, nil),
	)
	s.NoError(s.housekeeping.RunOnce(context.Background()))
}

func (s *HousekeepingTestSuite) TestDeletesOldDirectories() {
	s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	s.jobDir("old-1", 48*time.Hour)
	s.jobDir("old-2", 25*time.Hour)
	s.jobDir("recent", time.Hour)
	s.jobStatus("old-1", models.JobStatusSucceeded)
	s.jobStatus("old-2", models.JobStatusFailed)

	s.Require().NoError(s.housekeeping.RunOnce(context.Background()))
	s.False(s.exists("old-1"))
	s.False(s.exists("old-2"))
	s.True(s.exists("recent"))
}

func (s *HousekeepingTestSuite) TestOnlyLeaderCleansDatabase() {
	s.leader.Set(false)
	s.jobDir("old", 48*time.Hour)
	s.mockJobStore.EXPECT().GetJob(gomock.Any(), "old").Return(models.JobRecord{}, registry.NewErrNotFound("job", "old"))

	// no DeleteJobsCreatedBefore expectation: calling it fails the test
	s.Require().NoError(s.housekeeping.RunOnce(context.Background()))
	s.False(s.exists("old"), "directories are cleaned on every node")
}

func (s *HousekeepingTestSuite) TestDatabaseFailureDoesNotStopDiskCleanup() {
	dbErr := errors.New("connection refused")
	s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, dbErr)
	s.jobDir("old", 48*time.Hour)
	s.jobStatus("old", models.JobStatusKilled)

	err := s.housekeeping.RunOnce(context.Background())
	s.Require().Error(err)
	s.ErrorIs(err, dbErr)
	s.False(s.exists("old"))
}

func (s *HousekeepingTestSuite) TestKeepsDirectoriesOfUnfinishedJobs() {
	s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	s.jobDir("running", 2*dirRetention)
	s.jobDir("init", 2*dirRetention)
	s.jobDir("done", 2*dirRetention)
	s.jobStatus("running", models.JobStatusRunning)
	s.jobStatus("init", models.JobStatusInit)
	s.jobStatus("done", models.JobStatusSucceeded)

	s.Require().NoError(s.housekeeping.RunOnce(context.Background()))
	s.True(s.exists("running"))
	s.True(s.exists("init"))
	s.False(s.exists("done"))
}

func (s *HousekeepingTestSuite) TestKeepsDirectoryWhenStatusUnreadable() {
	s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil)
	s.jobDir("unknown", 2*dirRetention)
	lookupErr := errors.New("connection reset")
	s.mockJobStore.EXPECT().GetJob(gomock.Any(), "unknown").Return(models.JobRecord{}, lookupErr)

	err := s.housekeeping.RunOnce(context.Background())
	s.ErrorIs(err, lookupErr)
	s.True(s.exists("unknown"))
}

func (s *HousekeepingTestSuite) TestRunsOnInterval() {
	s.mockJobStore.EXPECT().DeleteJobsCreatedBefore(gomock.Any(), gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
	s.jobDir("old", 48*time.Hour)
	s.jobStatus("old", models.JobStatusSucceeded)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.housekeeping.Start(ctx)
	s.Eventually(s.housekeeping.IsRunning, time.Second, 10*time.Millisecond)
	s.True(s.exists("old"), "nothing runs before the first tick")

	s.Eventually(func() bool {
		s.clock.Add(interval)
		return !s.exists("old")
	}, time.Second, 10*time.Millisecond)

	s.housekeeping.Stop(context.Background())
	s.Eventually(func() bool { return !s.housekeeping.IsRunning() }, time.Second, 10*time.Millisecond)
}

func (s *HousekeepingTestSuite) TestInvalidParams() {
	_, err := NewHousekeeping(HousekeepingParams{JobDirs: s.jobDirs, Leader: s.leader, Interval: interval})
	s.Error(err)

	_, err = NewHousekeeping(HousekeepingParams{
		JobStore: s.mockJobStore,
		JobDirs:  s.jobDirs,
		Leader:   s.leader,
		Interval: interval,
		// negative retention
		DirRetention: -time.Hour,
	})
	s.Error(err)
}
