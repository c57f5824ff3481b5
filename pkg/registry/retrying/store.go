package retrying

import (
	"context"
	"time"

	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/registry"
)

// Store decorates a registry.Store so every call goes through an Invoker.
type Store struct {
	delegate registry.Store
	invoker  *Invoker
}

func NewStore(delegate registry.Store, invoker *Invoker) *Store {
	return &Store{delegate: delegate, invoker: invoker}
}

func (s *Store) FindClustersMatching(ctx context.Context, criterion models.Criterion) ([]models.Cluster, error) {
	return Call(ctx, s.invoker, "FindClustersMatching", func(ctx context.Context) ([]models.Cluster, error) {
		return s.delegate.FindClustersMatching(ctx, criterion)
	})
}

func (s *Store) FindCommandsForCluster(
	ctx context.Context, clusterID string, criterion models.Criterion) ([]models.Command, error) {
	return Call(ctx, s.invoker, "FindCommandsForCluster", func(ctx context.Context) ([]models.Command, error) {
		return s.delegate.FindCommandsForCluster(ctx, clusterID, criterion)
	})
}

func (s *Store) GetApplicationsForCommand(ctx context.Context, commandID string) ([]models.Application, error) {
	return Call(ctx, s.invoker, "GetApplicationsForCommand", func(ctx context.Context) ([]models.Application, error) {
		return s.delegate.GetApplicationsForCommand(ctx, commandID)
	})
}

func (s *Store) SaveJobRequest(ctx context.Context, request models.JobRequest) error {
	return s.invoker.Do(ctx, "SaveJobRequest", func(ctx context.Context) error {
		return s.delegate.SaveJobRequest(ctx, request)
	})
}

func (s *Store) UpdateJobStatus(ctx context.Context, jobID string, status models.JobStatus, message string) error {
	return s.invoker.Do(ctx, "UpdateJobStatus", func(ctx context.Context) error {
		return s.delegate.UpdateJobStatus(ctx, jobID, status, message)
	})
}

func (s *Store) SetJobResolution(ctx context.Context, jobID, clusterID, commandID string) error {
	return s.invoker.Do(ctx, "SetJobResolution", func(ctx context.Context) error {
		return s.delegate.SetJobResolution(ctx, jobID, clusterID, commandID)
	})
}

func (s *Store) GetJob(ctx context.Context, jobID string) (models.JobRecord, error) {
	return Call(ctx, s.invoker, "GetJob", func(ctx context.Context) (models.JobRecord, error) {
		return s.delegate.GetJob(ctx, jobID)
	})
}

func (s *Store) DeleteJobsCreatedBefore(ctx context.Context, before time.Time, limit int) (int, error) {
	return Call(ctx, s.invoker, "DeleteJobsCreatedBefore", func(ctx context.Context) (int, error) {
		return s.delegate.DeleteJobsCreatedBefore(ctx, before, limit)
	})
}

func (s *Store) PutCluster(ctx context.Context, cluster models.Cluster) error {
	return s.invoker.Do(ctx, "PutCluster", func(ctx context.Context) error {
		return s.delegate.PutCluster(ctx, cluster)
	})
}

func (s *Store) PutCommand(ctx context.Context, command models.Command) error {
	return s.invoker.Do(ctx, "PutCommand", func(ctx context.Context) error {
		return s.delegate.PutCommand(ctx, command)
	})
}

func (s *Store) PutApplication(ctx context.Context, application models.Application) error {
	return s.invoker.Do(ctx, "PutApplication", func(ctx context.Context) error {
		return s.delegate.PutApplication(ctx, application)
	})
}

func (s *Store) SetClusterCommands(ctx context.Context, clusterID string, commandIDs []string) error {
	return s.invoker.Do(ctx, "SetClusterCommands", func(ctx context.Context) error {
		return s.delegate.SetClusterCommands(ctx, clusterID, commandIDs)
	})
}

func (s *Store) SetCommandApplications(ctx context.Context, commandID string, applicationIDs []string) error {
	return s.invoker.Do(ctx, "SetCommandApplications", func(ctx context.Context) error {
		return s.delegate.SetCommandApplications(ctx, commandID, applicationIDs)
	})
}

// Close is not retried.
func (s *Store) Close(ctx context.Context) error {
	return s.delegate.Close(ctx)
}

// compile-time check that Store implements registry.Store
var _ registry.Store = (*Store)(nil)
