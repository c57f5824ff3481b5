//go:build unit || !integration

package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/agent/noop"
	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/lib/provider"
	"github.com/genie-oss/genie/pkg/logger"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/orchestrator/resolver"
	"github.com/genie-oss/genie/pkg/orchestrator/selection/strategy"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/registry/inmemory"
	"github.com/genie-oss/genie/pkg/registry/registrytest"
	"github.com/genie-oss/genie/pkg/storage/jobfs"
	"github.com/genie-oss/genie/pkg/storage/transfer"
	"github.com/genie-oss/genie/pkg/workflow"
	"github.com/genie-oss/genie/pkg/workflow/tasks"
)

type CoordinatorSuite struct {
	suite.Suite
	ctx       context.Context
	root      string
	store     *inmemory.Store
	launcher  *noop.Launcher
	launchers *provider.MappedProvider[agent.Launcher]
	admission *Admission
	jobDirs   *jobfs.Manager
	resolver  *resolver.Resolver
	workflow  *workflow.Executor
}

func TestCoordinatorSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorSuite))
}

func (s *CoordinatorSuite) SetupTest() {
	logger.ConfigureTestLogging(s.T())
	s.ctx = context.Background()
	s.root = s.T().TempDir()

	s.store = inmemory.NewStore()
	s.Require().NoError(registrytest.Fixture().Apply(s.ctx, s.store))

	var err error
	s.resolver, err = resolver.NewResolver(resolver.Params{
		Registry:        s.store,
		CommandSelector: strategy.NewFirstMatch[models.Command](""),
		ClusterSelector: strategy.NewFirstMatch[models.Cluster](""),
		DefaultMemory:   1024,
		MaxMemory:       8192,
		DefaultTimeout:  time.Hour,
	})
	s.Require().NoError(err)

	taskList, err := tasks.Default(tasks.Params{Transfer: transfer.NewDefault(0), GOOS: "linux"})
	s.Require().NoError(err)
	s.workflow, err = workflow.NewExecutor(taskList)
	s.Require().NoError(err)

	s.jobDirs, err = jobfs.NewManager(afero.NewOsFs(), s.root)
	s.Require().NoError(err)

	s.launcher = noop.NewLauncher()
	s.launchers = provider.NewMappedProvider[agent.Launcher]()
	s.launchers.Add(noop.Name, s.launcher)
	s.admission = NewAdmission(2)
}

func (s *CoordinatorSuite) coordinator(store registry.JobStore, res Resolver) *Coordinator {
	c, err := NewCoordinator(CoordinatorParams{
		JobStore:         store,
		Resolver:         res,
		Workflow:         s.workflow,
		JobDirs:          s.jobDirs,
		Launchers:        s.launchers,
		LauncherSelector: strategy.NewFirstMatch[agent.Launcher](""),
		Admission:        s.admission,
	})
	s.Require().NoError(err)
	return c
}

func criterion(tags ...string) models.Criterion {
	return models.NewCriterionBuilder().Tags(tags...).MustBuild()
}

func hiveRequest() models.JobRequest {
	return models.JobRequest{
		Name:             "daily aggregates",
		User:             "alice",
		Version:          "1",
		ClusterCriteria:  []models.Criterion{criterion("prod", "hadoop")},
		CommandCriterion: criterion("type:hive"),
		CommandArgs:      []string{"-e", "'select 1'"},
	}
}

func (s *CoordinatorSuite) job(jobID string) models.JobRecord {
	record, err := s.store.GetJob(s.ctx, jobID)
	s.Require().NoError(err)
	return record
}

func (s *CoordinatorSuite) TestEndToEnd() {
	c := s.coordinator(s.store, s.resolver)

	jobID, err := c.Submit(s.ctx, hiveRequest())
	s.Require().NoError(err)
	s.NotEmpty(jobID)

	record := s.job(jobID)
	s.Equal(models.JobStatusRunning, record.Status)
	s.Equal("prod-1", record.ClusterID)
	s.Equal("hive", record.CommandID)

	launched := s.launcher.Launched()
	s.Require().Len(launched, 1)
	spec := launched[0]
	s.Equal(jobID, spec.JobID)
	s.Equal("prod-1", spec.Cluster.ID)
	s.Equal("hive", spec.Command.ID)
	s.Equal([]string{"hadoop", "tez"}, models.ApplicationIDs(spec.Applications))
	s.Equal(2048, spec.Memory, "memory comes from the command")
	s.Equal(time.Hour, spec.Timeout)

	jobDir := filepath.Join(s.root, jobID)
	s.Equal(jobDir, spec.JobDirectory)
	s.Equal([]string{"setsid", "bash", filepath.Join(jobDir, "run")}, spec.CommandLine)
	s.FileExists(filepath.Join(jobDir, "run"))
	s.DirExists(filepath.Join(jobDir, "genie", "applications", "tez"))

	env, err := godotenv.Read(filepath.Join(jobDir, "genie", "env.list"))
	s.Require().NoError(err)
	s.Equal("prod-1", env[workflow.EnvClusterID])
	s.Equal("hive", env[workflow.EnvCommandID])
	s.Equal("[[hadoop,prod]]", env[workflow.EnvRequestedClTags])

	s.Zero(s.admission.InFlight())
}

func (s *CoordinatorSuite) TestKeepsRequestedID() {
	req := hiveRequest()
	req.ID = "job-42"
	jobID, err := s.coordinator(s.store, s.resolver).Submit(s.ctx, req)
	s.Require().NoError(err)
	s.Equal("job-42", jobID)
}

func (s *CoordinatorSuite) TestMalformedRequestIsNotPersisted() {
	req := hiveRequest()
	req.ID = "job-bad"
	req.ClusterCriteria = nil

	jobID, err := s.coordinator(s.store, s.resolver).Submit(s.ctx, req)
	s.Require().Error(err)
	s.Empty(jobID)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.ValidationError))

	_, err = s.store.GetJob(s.ctx, "job-bad")
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError))
	s.Empty(s.launcher.Launched())
}

func (s *CoordinatorSuite) TestNoMatchingClusterFailsJob() {
	req := hiveRequest()
	req.ClusterCriteria = []models.Criterion{criterion("gpu")}

	jobID, err := s.coordinator(s.store, s.resolver).Submit(s.ctx, req)
	s.Require().Error(err)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NoMatchingClusterError))

	record := s.job(jobID)
	s.Equal(models.JobStatusFailed, record.Status)
	s.Contains(record.StatusMessage, "no active cluster")
	s.Zero(s.admission.InFlight())
	s.Empty(s.launcher.Launched())
}

func (s *CoordinatorSuite) TestMemoryAboveLimitIsInvalid() {
	req := hiveRequest()
	memory := 16384
	req.Memory = &memory

	jobID, err := s.coordinator(s.store, s.resolver).Submit(s.ctx, req)
	s.Require().Error(err)
	s.Equal(models.JobStatusInvalid, s.job(jobID).Status)
	s.NoDirExists(filepath.Join(s.root, jobID))
}

func (s *CoordinatorSuite) TestAdmissionRejected() {
	s.admission = NewAdmission(1)
	s.Require().True(s.admission.TryAcquire())

	jobID, err := s.coordinator(s.store, s.resolver).Submit(s.ctx, hiveRequest())
	s.Require().Error(err)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.AdmissionRejectedError))
	s.True(genieerrors.IsRetryable(err))

	s.Equal(models.JobStatusFailed, s.job(jobID).Status)
	s.Equal(1, s.admission.InFlight(), "the rejected submission must not release a slot it never took")
	s.Empty(s.launcher.Launched())
}

func (s *CoordinatorSuite) TestLaunchFailure() {
	failing := noop.NewLauncherWithConfig(noop.LauncherConfig{
		Name: "failing",
		ExternalHooks: noop.LauncherConfigExternalHooks{
			Launch: func(context.Context, models.JobSpecification) (agent.Handle, error) {
				return agent.Handle{}, errors.New("fork failed")
			},
		},
	})
	s.launchers = provider.NewMappedProvider[agent.Launcher]()
	s.launchers.Add("failing", failing)

	jobID, err := s.coordinator(s.store, s.resolver).Submit(s.ctx, hiveRequest())
	s.Require().Error(err)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.LaunchError))
	s.Equal(models.JobStatusFailed, s.job(jobID).Status)
	s.Zero(s.admission.InFlight())
}

func (s *CoordinatorSuite) TestNoInstalledLauncher() {
	uninstalled := noop.NewLauncherWithConfig(noop.LauncherConfig{
		ExternalHooks: noop.LauncherConfigExternalHooks{
			IsInstalled: func(context.Context) (bool, error) { return false, nil },
		},
	})
	s.launchers = provider.NewMappedProvider[agent.Launcher]()
	s.launchers.Add(noop.Name, uninstalled)

	jobID, err := s.coordinator(s.store, s.resolver).Submit(s.ctx, hiveRequest())
	s.Require().Error(err)
	s.True(genieerrors.IsErrorWithCode(err, genieerrors.NoResourceSelectedError))
	s.Equal(models.JobStatusFailed, s.job(jobID).Status)
}

func (s *CoordinatorSuite) TestStatusUpdateFailureIsJoined() {
	ctrl := gomock.NewController(s.T())
	store := registry.NewMockJobStore(ctrl)
	writeErr := errors.New("database is locked")

	gomock.InOrder(
		store.EXPECT().SaveJobRequest(gomock.Any(), gomock.Any()).Return(nil),
		store.EXPECT().SetJobResolution(gomock.Any(), "job-1", "prod-1", "hive").Return(nil),
		store.EXPECT().UpdateJobStatus(gomock.Any(), "job-1", models.JobStatusResolved, gomock.Any()).Return(writeErr),
		store.EXPECT().UpdateJobStatus(gomock.Any(), "job-1", models.JobStatusFailed, gomock.Any()).Return(writeErr),
	)

	req := hiveRequest()
	req.ID = "job-1"
	_, err := s.coordinator(store, s.resolver).Submit(s.ctx, req)
	s.Require().Error(err)
	s.ErrorIs(err, writeErr)
	s.Contains(err.Error(), "resolution")
	s.Zero(s.admission.InFlight())
}

func (s *CoordinatorSuite) TestConcurrentSubmissionsNeverLeakSlots() {
	const submissions = 20
	var maxObserved atomic.Int64
	blocking := noop.NewLauncherWithConfig(noop.LauncherConfig{
		ExternalHooks: noop.LauncherConfigExternalHooks{
			Launch: func(_ context.Context, spec models.JobSpecification) (agent.Handle, error) {
				inFlight := int64(s.admission.InFlight())
				for {
					current := maxObserved.Load()
					if inFlight <= current || maxObserved.CompareAndSwap(current, inFlight) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				return agent.Handle{JobID: spec.JobID, Launcher: noop.Name}, nil
			},
		},
	})
	s.launchers = provider.NewMappedProvider[agent.Launcher]()
	s.launchers.Add(noop.Name, blocking)
	c := s.coordinator(s.store, s.resolver)

	var wg sync.WaitGroup
	var launched, rejected, failed atomic.Int64
	for i := 0; i < submissions; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			req := hiveRequest()
			req.ID = fmt.Sprintf("job-%d", i)
			if i%4 == 0 {
				req.ClusterCriteria = []models.Criterion{criterion("gpu")}
			}
			_, err := c.Submit(s.ctx, req)
			switch {
			case err == nil:
				launched.Add(1)
			case genieerrors.IsErrorWithCode(err, genieerrors.AdmissionRejectedError):
				rejected.Add(1)
			default:
				failed.Add(1)
			}
		}()
	}
	wg.Wait()

	s.Equal(int64(submissions), launched.Load()+rejected.Load()+failed.Load())
	s.LessOrEqual(maxObserved.Load(), int64(s.admission.Max()))
	s.Zero(s.admission.InFlight())
	s.Equal(s.admission.Max(), s.admission.Available())
	for i := 0; i < submissions; i++ {
		status := s.job(fmt.Sprintf("job-%d", i)).Status
		s.True(status == models.JobStatusRunning || status.IsTerminal(), status)
	}
}

func (s *CoordinatorSuite) TestInvalidParams() {
	_, err := NewCoordinator(CoordinatorParams{})
	s.Error(err)
}
