//go:generate mockgen --source types.go --destination mocks.go --package registry
package registry

import (
	"context"
	"time"

	"github.com/genie-oss/genie/pkg/models"
)

// Registry is the read side of the resource registry used during resolution.
// Implementations return snapshot reads; a resource written concurrently may
// or may not be visible.
type Registry interface {
	// FindClustersMatching returns the ACTIVE clusters satisfying the
	// criterion, in registry order. No match is an empty slice, not an error.
	FindClustersMatching(ctx context.Context, criterion models.Criterion) ([]models.Cluster, error)

	// FindCommandsForCluster returns the ACTIVE commands attached to the
	// cluster that satisfy the criterion, in attachment priority order.
	FindCommandsForCluster(ctx context.Context, clusterID string, criterion models.Criterion) ([]models.Command, error)

	// GetApplicationsForCommand returns the command's applications in their
	// stored order.
	GetApplicationsForCommand(ctx context.Context, commandID string) ([]models.Application, error)
}

// JobStore persists job requests and their status.
type JobStore interface {
	// SaveJobRequest durably records a new request with status ACCEPTED.
	SaveJobRequest(ctx context.Context, request models.JobRequest) error

	// UpdateJobStatus moves the job to a new status with a human readable message.
	UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, message string) error

	// SetJobResolution records which cluster and command the job resolved to.
	SetJobResolution(ctx context.Context, jobID, clusterID, commandID string) error

	GetJob(ctx context.Context, jobID string) (models.JobRecord, error)

	// DeleteJobsCreatedBefore removes up to limit terminal jobs created before
	// the given time and returns how many were removed.
	DeleteJobsCreatedBefore(ctx context.Context, before time.Time, limit int) (int, error)
}

// ResourceWriter registers resources. It is used for seeding and tests; the
// resolution path never writes.
type ResourceWriter interface {
	PutCluster(ctx context.Context, cluster models.Cluster) error
	PutCommand(ctx context.Context, command models.Command) error
	PutApplication(ctx context.Context, application models.Application) error
	// SetClusterCommands replaces the cluster's commands. Order is priority order.
	SetClusterCommands(ctx context.Context, clusterID string, commandIDs []string) error
	// SetCommandApplications replaces the command's applications, in order.
	SetCommandApplications(ctx context.Context, commandID string, applicationIDs []string) error
}

// Store is a complete persistence backend.
type Store interface {
	Registry
	JobStore
	ResourceWriter
	Close(ctx context.Context) error
}
