package orchestrator

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/lib/provider"
	"github.com/genie-oss/genie/pkg/lib/validate"
	"github.com/genie-oss/genie/pkg/logger"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/orchestrator/resolver"
	"github.com/genie-oss/genie/pkg/orchestrator/selection"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/storage/jobfs"
	"github.com/genie-oss/genie/pkg/telemetry"
	"github.com/genie-oss/genie/pkg/workflow"
)

// Resolver resolves a request into a cluster, a command and applications.
type Resolver interface {
	Resolve(ctx context.Context, jobID string, request *models.JobRequest) (*resolver.ResolvedJob, error)
}

type CoordinatorParams struct {
	JobStore         registry.JobStore
	Resolver         Resolver
	Workflow         *workflow.Executor
	JobDirs          *jobfs.Manager
	Launchers        provider.Provider[agent.Launcher]
	LauncherSelector selection.AgentLauncherSelector
	Admission        *Admission
	// IDGenerator assigns ids to requests without one. Defaults to uuid.NewString.
	IDGenerator func() string
	Clock       clock.Clock
}

func (p CoordinatorParams) Validate() error {
	return errors.Join(
		validate.NotNil(p.JobStore, "job store cannot be nil"),
		validate.NotNil(p.Resolver, "resolver cannot be nil"),
		validate.NotNil(p.Workflow, "workflow executor cannot be nil"),
		validate.NotNil(p.JobDirs, "job directory manager cannot be nil"),
		validate.NotNil(p.Launchers, "launcher provider cannot be nil"),
		validate.NotNil(p.LauncherSelector, "launcher selector cannot be nil"),
		validate.NotNil(p.Admission, "admission cannot be nil"),
	)
}

// Coordinator accepts job requests and drives each one through resolution,
// the setup workflow and launch. Every submission runs on the caller's
// goroutine; the coordinator itself holds no per job state.
type Coordinator struct {
	jobStore         registry.JobStore
	resolver         Resolver
	workflow         *workflow.Executor
	jobDirs          *jobfs.Manager
	launchers        provider.Provider[agent.Launcher]
	launcherSelector selection.AgentLauncherSelector
	admission        *Admission
	idGenerator      func() string
	clock            clock.Clock
}

func NewCoordinator(params CoordinatorParams) (*Coordinator, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("error validating coordinator params: %w", err)
	}
	if params.IDGenerator == nil {
		params.IDGenerator = uuid.NewString
	}
	if params.Clock == nil {
		params.Clock = clock.New()
	}
	return &Coordinator{
		jobStore:         params.JobStore,
		resolver:         params.Resolver,
		workflow:         params.Workflow,
		jobDirs:          params.JobDirs,
		launchers:        params.Launchers,
		launcherSelector: params.LauncherSelector,
		admission:        params.Admission,
		idGenerator:      params.IDGenerator,
		clock:            params.Clock,
	}, nil
}

// Submit validates and persists the request, then resolves, sets up and
// launches the job. It returns the job id once the job is running. Malformed
// requests are rejected before anything is persisted; every later failure
// leaves the job in a terminal status.
func (c *Coordinator) Submit(ctx context.Context, request models.JobRequest) (string, error) {
	req := request.Copy()
	req.Normalize()
	if err := req.Validate(); err != nil {
		submissionsCounter.Inc(ctx, outcomeAttr(AttrOutcomeInvalid))
		return "", err
	}
	if req.ID == "" {
		req.ID = c.idGenerator()
	}
	jobID := req.ID
	ctx = logger.ContextWithJobIDLogger(ctx, jobID)

	if err := c.jobStore.SaveJobRequest(ctx, *req); err != nil {
		submissionsCounter.Inc(ctx, outcomeAttr(AttrOutcomeFailed))
		return "", newErrSubmission(err, jobID, "save")
	}
	log.Ctx(ctx).Debug().Str("Name", req.Name).Str("User", req.User).Msg("job accepted")

	if !c.admission.TryAcquire() {
		admissionRejectedCounter.Inc(ctx)
		submissionsCounter.Inc(ctx, outcomeAttr(AttrOutcomeRejected))
		return jobID, c.fail(ctx, jobID, NewErrAdmissionRejected(jobID, c.admission.Max()))
	}
	defer c.admission.Release()

	stopTimer := telemetry.Timer(ctx, c.clock, submissionDuration)
	handle, err := c.run(ctx, req)
	if err != nil {
		outcome := AttrOutcomeFailed
		if terminalStatus(err) == models.JobStatusInvalid {
			outcome = AttrOutcomeInvalid
		}
		stopTimer(outcomeAttr(outcome))
		submissionsCounter.Inc(ctx, outcomeAttr(outcome))
		return jobID, c.fail(ctx, jobID, err)
	}
	elapsed := stopTimer(outcomeAttr(AttrOutcomeLaunched))
	submissionsCounter.Inc(ctx, outcomeAttr(AttrOutcomeLaunched))
	log.Ctx(ctx).Info().
		Str("Launcher", handle.Launcher).
		Int("PID", handle.ProcessID).
		Dur("Elapsed", elapsed).
		Msg("job launched")

	// the job runs regardless, only its record is behind
	message := fmt.Sprintf("launched by %s", handle.Launcher)
	if err = c.jobStore.UpdateJobStatus(ctx, jobID, models.JobStatusRunning, message); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("failed to mark launched job as running")
		return jobID, newErrSubmission(err, jobID, "status update")
	}
	return jobID, nil
}

// run takes an accepted request from resolution to launch.
func (c *Coordinator) run(ctx context.Context, req *models.JobRequest) (agent.Handle, error) {
	jobID := req.ID

	resolved, err := c.resolver.Resolve(ctx, jobID, req)
	if err != nil {
		return agent.Handle{}, err
	}
	if err = c.jobStore.SetJobResolution(ctx, jobID, resolved.Cluster.ID, resolved.Command.ID); err != nil {
		return agent.Handle{}, newErrSubmission(err, jobID, "resolution")
	}
	message := fmt.Sprintf("resolved to cluster %s and command %s", resolved.Cluster.ID, resolved.Command.ID)
	if err = c.jobStore.UpdateJobStatus(ctx, jobID, models.JobStatusResolved, message); err != nil {
		return agent.Handle{}, newErrSubmission(err, jobID, "resolution")
	}
	log.Ctx(ctx).Debug().
		Str("Cluster", resolved.Cluster.ID).
		Str("Command", resolved.Command.ID).
		Strs("Applications", models.ApplicationIDs(resolved.Applications)).
		Msg(message)

	spec, err := c.setup(ctx, req, resolved)
	if err != nil {
		return agent.Handle{}, err
	}

	launcher, err := c.selectLauncher(ctx, req, spec)
	if err != nil {
		return agent.Handle{}, err
	}
	return launcher.Launch(ctx, spec)
}

// setup creates the job directory and runs the workflow in it.
func (c *Coordinator) setup(ctx context.Context, req *models.JobRequest, resolved *resolver.ResolvedJob) (models.JobSpecification, error) {
	dir, fs, err := c.jobDirs.Create(req.ID)
	if err != nil {
		return models.JobSpecification{}, err
	}
	wctx := workflow.NewContext(workflow.ContextParams{
		JobID:        req.ID,
		Request:      req,
		Cluster:      resolved.Cluster,
		Command:      resolved.Command,
		Applications: resolved.Applications,
		Memory:       resolved.Memory,
		Timeout:      resolved.Timeout,
		Layout:       workflow.NewLayout(dir),
		FS:           fs,
	})
	if _, err = c.workflow.Execute(ctx, wctx); err != nil {
		return models.JobSpecification{}, err
	}
	if wctx.Specification == nil {
		return models.JobSpecification{}, genieerrors.New("workflow for job %s produced no job specification", req.ID).
			WithCode(genieerrors.ServerError).
			WithComponent(errComponent).
			WithDetail("jobID", req.ID)
	}
	return *wctx.Specification, nil
}

func (c *Coordinator) selectLauncher(
	ctx context.Context, req *models.JobRequest, spec models.JobSpecification,
) (agent.Launcher, error) {
	launchers, err := provider.InstalledValues(ctx, c.launchers)
	if err != nil {
		return nil, newErrSubmission(err, req.ID, "launcher lookup")
	}
	if len(launchers) == 0 {
		return nil, NewErrNoLauncher(req.ID, "no launcher is installed")
	}
	sc, err := selection.NewAgentLauncherSelectionContext(req.ID, req, spec, launchers)
	if err != nil {
		return nil, err
	}
	result, err := selection.Run[agent.Launcher](ctx, c.launcherSelector, sc)
	if err != nil {
		return nil, err
	}
	launcher, ok := result.Resource()
	if !ok {
		return nil, NewErrNoLauncher(req.ID, result.Rationale())
	}
	return launcher, nil
}

// fail moves the job to its terminal status. A failure to record the status
// is logged and joined with the cause.
func (c *Coordinator) fail(ctx context.Context, jobID string, cause error) error {
	status := terminalStatus(cause)
	log.Ctx(ctx).Warn().Err(cause).Str("Status", status.String()).Msg("job failed")
	if err := c.jobStore.UpdateJobStatus(ctx, jobID, status, cause.Error()); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("Status", status.String()).Msg("failed to record job status")
		return errors.Join(cause, err)
	}
	return cause
}

// terminalStatus is INVALID for requests that can never succeed as written
// and FAILED for everything else.
func terminalStatus(err error) models.JobStatus {
	if genieerrors.IsErrorWithCode(err, genieerrors.ValidationError) {
		return models.JobStatusInvalid
	}
	return models.JobStatusFailed
}
