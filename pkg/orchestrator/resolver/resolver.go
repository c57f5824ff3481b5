package resolver

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/lib/validate"
	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/orchestrator/selection"
	"github.com/genie-oss/genie/pkg/registry"
)

// ClusterCommand is the resolved placement of a job.
type ClusterCommand struct {
	Cluster models.Cluster
	Command models.Command
	// ClusterCriterion is the index of the cluster criterion that matched.
	ClusterCriterion int
	// Rationales records why the command and the cluster were chosen.
	Rationales []string
}

// ResolvedJob is everything the workflow needs to set up a job.
type ResolvedJob struct {
	JobID string
	ClusterCommand
	Applications []models.Application
	// Memory in MB.
	Memory  int
	Timeout time.Duration
}

type Params struct {
	Registry        registry.Registry
	CommandSelector selection.CommandSelector
	ClusterSelector selection.ClusterSelector
	// DefaultMemory is used when neither the request nor the command sets memory.
	DefaultMemory int
	// MaxMemory rejects requests above it. Zero means no limit.
	MaxMemory      int
	DefaultTimeout time.Duration
}

func (p Params) Validate() error {
	return errors.Join(
		validate.NotNil(p.Registry, "registry cannot be nil"),
		validate.NotNil(p.CommandSelector, "command selector cannot be nil"),
		validate.NotNil(p.ClusterSelector, "cluster selector cannot be nil"),
		validate.IsGreaterThanZero(p.DefaultMemory, "default memory must be greater than zero"),
		validate.IsGreaterOrEqualToZero(p.MaxMemory, "max memory cannot be negative"),
		validate.IsGreaterOrEqualToZero(p.DefaultTimeout, "default timeout cannot be negative"),
	)
}

// Resolver turns the criteria of a job request into a cluster, a command and
// its applications. It holds no per-job state and is shared by concurrent
// submissions.
type Resolver struct {
	registry        registry.Registry
	commandSelector selection.CommandSelector
	clusterSelector selection.ClusterSelector
	defaultMemory   int
	maxMemory       int
	defaultTimeout  time.Duration
}

func NewResolver(params Params) (*Resolver, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Resolver{
		registry:        params.Registry,
		commandSelector: params.CommandSelector,
		clusterSelector: params.ClusterSelector,
		defaultMemory:   params.DefaultMemory,
		maxMemory:       params.MaxMemory,
		defaultTimeout:  params.DefaultTimeout,
	}, nil
}

// Resolve resolves the placement, the applications, the memory and the
// timeout of a job.
func (r *Resolver) Resolve(ctx context.Context, jobID string, request *models.JobRequest) (*ResolvedJob, error) {
	placement, err := r.ResolveClusterCommand(ctx, jobID, request)
	if err != nil {
		return nil, err
	}
	applications, err := r.ResolveApplications(ctx, jobID, request, placement.Command)
	if err != nil {
		return nil, err
	}
	memory, err := r.resolveMemory(jobID, request, placement.Command)
	if err != nil {
		return nil, err
	}
	return &ResolvedJob{
		JobID:          jobID,
		ClusterCommand: placement,
		Applications:   applications,
		Memory:         memory,
		Timeout:        r.resolveTimeout(request),
	}, nil
}

// ResolveClusterCommand finds the clusters of the first matching cluster
// criterion, collects the matching commands attached to them and delegates
// the final choice to the command selector and then the cluster selector.
func (r *Resolver) ResolveClusterCommand(
	ctx context.Context, jobID string, request *models.JobRequest) (ClusterCommand, error) {
	logger := log.Ctx(ctx).With().Str("JobID", jobID).Logger()

	clusters, criterionIndex, err := r.findClusters(ctx, jobID, request)
	if err != nil {
		return ClusterCommand{}, err
	}
	logger.Debug().Int("Criterion", criterionIndex).Int("Clusters", len(clusters)).Msg("matched cluster criterion")

	// distinct commands in first seen order, with the clusters offering each
	var commands []models.Command
	clustersByCommand := make(map[string][]models.Cluster)
	clusterIDs := make([]string, 0, len(clusters))
	for _, cluster := range clusters {
		clusterIDs = append(clusterIDs, cluster.ID)
		found, err := r.registry.FindCommandsForCluster(ctx, cluster.ID, request.CommandCriterion)
		if err != nil {
			return ClusterCommand{}, err
		}
		for _, cmd := range found {
			if _, seen := clustersByCommand[cmd.ID]; !seen {
				commands = append(commands, cmd)
			}
			clustersByCommand[cmd.ID] = append(clustersByCommand[cmd.ID], cluster)
		}
	}
	if len(commands) == 0 {
		return ClusterCommand{}, NewErrNoMatchingCommand(
			jobID, request.ClusterCriteria[criterionIndex], request.CommandCriterion, clusterIDs)
	}

	commandContext, err := selection.NewCommandSelectionContext(jobID, request, commands, clustersByCommand)
	if err != nil {
		return ClusterCommand{}, err
	}
	commandResult, err := selection.Run[models.Command](ctx, r.commandSelector, commandContext)
	if err != nil {
		return ClusterCommand{}, err
	}
	command, ok := commandResult.Resource()
	if !ok {
		return ClusterCommand{}, NewErrNoResourceSelected(
			jobID, "command", commandResult.SelectorIdentity(), commandResult.Rationale())
	}

	clusterContext, err := selection.NewClusterSelectionContext(jobID, request, command, clustersByCommand[command.ID])
	if err != nil {
		return ClusterCommand{}, err
	}
	clusterResult, err := selection.Run[models.Cluster](ctx, r.clusterSelector, clusterContext)
	if err != nil {
		return ClusterCommand{}, err
	}
	cluster, ok := clusterResult.Resource()
	if !ok {
		return ClusterCommand{}, NewErrNoResourceSelected(
			jobID, "cluster", clusterResult.SelectorIdentity(), clusterResult.Rationale())
	}

	logger.Info().
		Str("ClusterID", cluster.ID).
		Str("CommandID", command.ID).
		Str("CommandSelector", commandResult.SelectorIdentity()).
		Str("ClusterSelector", clusterResult.SelectorIdentity()).
		Msg("resolved cluster and command")

	return ClusterCommand{
		Cluster:          cluster,
		Command:          command,
		ClusterCriterion: criterionIndex,
		Rationales:       []string{commandResult.String(), clusterResult.String()},
	}, nil
}

// findClusters returns the clusters of the first criterion with at least one
// match. Later criteria are not evaluated.
func (r *Resolver) findClusters(
	ctx context.Context, jobID string, request *models.JobRequest) ([]models.Cluster, int, error) {
	for i, criterion := range request.ClusterCriteria {
		clusters, err := r.registry.FindClustersMatching(ctx, criterion)
		if err != nil {
			return nil, 0, err
		}
		if len(clusters) > 0 {
			return clusters, i, nil
		}
		log.Ctx(ctx).Debug().Str("JobID", jobID).Stringer("Criterion", criterion).Msg("cluster criterion matched nothing")
	}
	return nil, 0, NewErrNoMatchingCluster(jobID, request.ClusterCriteria)
}

// ResolveApplications returns the applications of the command in stored
// order. When the request names applications, only those are returned, in
// the request's order.
func (r *Resolver) ResolveApplications(
	ctx context.Context, jobID string, request *models.JobRequest, command models.Command) ([]models.Application, error) {
	applications, err := r.registry.GetApplicationsForCommand(ctx, command.ID)
	if err != nil {
		return nil, err
	}
	if len(request.RequestedApplications) == 0 {
		return applications, nil
	}

	byID := make(map[string]models.Application, len(applications))
	for _, app := range applications {
		byID[app.ID] = app
	}
	requested := make([]models.Application, 0, len(request.RequestedApplications))
	for _, id := range request.RequestedApplications {
		app, ok := byID[id]
		if !ok {
			return nil, NewErrApplicationNotFound(jobID, command.ID, id)
		}
		requested = append(requested, app)
	}
	return requested, nil
}

func (r *Resolver) resolveMemory(jobID string, request *models.JobRequest, command models.Command) (int, error) {
	memory := r.defaultMemory
	switch {
	case request.Memory != nil:
		memory = *request.Memory
	case command.Memory != nil:
		memory = *command.Memory
	}
	if r.maxMemory > 0 && memory > r.maxMemory {
		return 0, NewErrMemoryExceeded(jobID, memory, r.maxMemory)
	}
	return memory, nil
}

func (r *Resolver) resolveTimeout(request *models.JobRequest) time.Duration {
	if request.Timeout != nil {
		return time.Duration(*request.Timeout) * time.Second
	}
	return r.defaultTimeout
}
