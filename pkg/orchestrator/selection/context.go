package selection

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/models"
)

const errComponent = "Selection"

type baseContext[R any] struct {
	jobID      string
	request    models.JobRequest
	candidates []R
}

func newBaseContext[R any](kind, jobID string, request *models.JobRequest, candidates []R) (baseContext[R], error) {
	if len(candidates) == 0 {
		return baseContext[R]{}, genieerrors.New("cannot build %s selection context for job %s without candidates", kind, jobID).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent).
			WithDetail("jobID", jobID)
	}
	if request == nil {
		return baseContext[R]{}, genieerrors.New("cannot build %s selection context for job %s without a request", kind, jobID).
			WithCode(genieerrors.ValidationError).
			WithComponent(errComponent).
			WithDetail("jobID", jobID)
	}
	return baseContext[R]{
		jobID:      jobID,
		request:    *request.Copy(),
		candidates: slices.Clone(candidates),
	}, nil
}

func (c baseContext[R]) JobID() string                 { return c.jobID }
func (c baseContext[R]) JobRequest() models.JobRequest { return c.request }
func (c baseContext[R]) SubmittedViaAPI() bool         { return c.request.SubmittedViaAPI }
func (c baseContext[R]) Candidates() []R               { return slices.Clone(c.candidates) }

// ClusterSelectionContext holds the clusters that can run the chosen command.
type ClusterSelectionContext struct {
	baseContext[models.Cluster]
	command models.Command
}

func NewClusterSelectionContext(
	jobID string, request *models.JobRequest, command models.Command, clusters []models.Cluster,
) (*ClusterSelectionContext, error) {
	base, err := newBaseContext("cluster", jobID, request, clusters)
	if err != nil {
		return nil, err
	}
	return &ClusterSelectionContext{baseContext: base, command: command.Copy()}, nil
}

// Command is the command the clusters were resolved for.
func (c *ClusterSelectionContext) Command() models.Command {
	return c.command.Copy()
}

// CommandSelectionContext holds the distinct commands found across the
// matching clusters, in first seen order.
type CommandSelectionContext struct {
	baseContext[models.Command]
	clusters map[string][]models.Cluster
}

// NewCommandSelectionContext builds the context. clustersByCommand maps a
// command id to the clusters it was found on, in registry order.
func NewCommandSelectionContext(
	jobID string, request *models.JobRequest, commands []models.Command, clustersByCommand map[string][]models.Cluster,
) (*CommandSelectionContext, error) {
	base, err := newBaseContext("command", jobID, request, commands)
	if err != nil {
		return nil, err
	}
	clusters := make(map[string][]models.Cluster, len(clustersByCommand))
	for _, cmd := range commands {
		if len(clustersByCommand[cmd.ID]) == 0 {
			return nil, genieerrors.New("command %s has no cluster in selection context for job %s", cmd.ID, jobID).
				WithCode(genieerrors.ValidationError).
				WithComponent(errComponent).
				WithDetail("jobID", jobID).
				WithDetail("commandID", cmd.ID)
		}
		clusters[cmd.ID] = slices.Clone(clustersByCommand[cmd.ID])
	}
	return &CommandSelectionContext{baseContext: base, clusters: clusters}, nil
}

// ClustersFor returns the clusters a candidate command is available on.
func (c *CommandSelectionContext) ClustersFor(commandID string) []models.Cluster {
	return slices.Clone(c.clusters[commandID])
}

// CommandIDs returns the ids of every command with at least one cluster.
func (c *CommandSelectionContext) CommandIDs() []string {
	ids := maps.Keys(c.clusters)
	slices.Sort(ids)
	return ids
}

// AgentLauncherSelectionContext holds the installed launchers and the
// specification that will be launched.
type AgentLauncherSelectionContext struct {
	baseContext[agent.Launcher]
	spec models.JobSpecification
}

func NewAgentLauncherSelectionContext(
	jobID string, request *models.JobRequest, spec models.JobSpecification, launchers []agent.Launcher,
) (*AgentLauncherSelectionContext, error) {
	base, err := newBaseContext("agent launcher", jobID, request, launchers)
	if err != nil {
		return nil, err
	}
	return &AgentLauncherSelectionContext{baseContext: base, spec: spec.Copy()}, nil
}

func (c *AgentLauncherSelectionContext) Specification() models.JobSpecification {
	return c.spec.Copy()
}

var (
	_ Context[models.Cluster] = (*ClusterSelectionContext)(nil)
	_ Context[models.Command] = (*CommandSelectionContext)(nil)
	_ Context[agent.Launcher] = (*AgentLauncherSelectionContext)(nil)
)
