package inmemory

import (
	"context"
	"sort"
	"time"

	sync "github.com/bacalhau-project/golang-mutex-tracer"
	"github.com/benbjohnson/clock"
	"golang.org/x/exp/slices"

	"github.com/genie-oss/genie/pkg/models"
	"github.com/genie-oss/genie/pkg/models/criteria"
	"github.com/genie-oss/genie/pkg/registry"
)

// Store is a registry.Store held in memory. Registry order is insertion order.
type Store struct {
	clusters     map[string]models.Cluster
	clusterOrder []string
	commands     map[string]models.Command
	applications map[string]models.Application
	// clusterCommands is cluster id to command ids in priority order
	clusterCommands map[string][]string
	// commandApplications is command id to application ids in stored order
	commandApplications map[string][]string
	jobs                map[string]models.JobRecord

	matcher criteria.Matcher
	clock   clock.Clock
	mtx     sync.RWMutex
}

type Option func(store *Store)

func WithClock(clock clock.Clock) Option {
	return func(store *Store) {
		store.clock = clock
	}
}

// WithMatcher sets the matcher used to evaluate criteria.
func WithMatcher(m criteria.Matcher) Option {
	return func(store *Store) {
		store.matcher = m
	}
}

func NewStore(options ...Option) *Store {
	s := &Store{
		clusters:            make(map[string]models.Cluster),
		commands:            make(map[string]models.Command),
		applications:        make(map[string]models.Application),
		clusterCommands:     make(map[string][]string),
		commandApplications: make(map[string][]string),
		jobs:                make(map[string]models.JobRecord),
		matcher:             criteria.NewMatcher(),
		clock:               clock.New(),
	}
	s.mtx.EnableTracerWithOpts(sync.Opts{
		Threshold: 10 * time.Millisecond,
		Id:        "InMemoryRegistry.mtx",
	})
	for _, opt := range options {
		opt(s)
	}
	return s
}

func (s *Store) FindClustersMatching(_ context.Context, criterion models.Criterion) ([]models.Cluster, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	var result []models.Cluster
	for _, id := range s.clusterOrder {
		c := s.clusters[id]
		if c.Status != models.ResourceStatusActive {
			continue
		}
		if s.matcher.Matches(criterion, c) {
			result = append(result, c.Copy())
		}
	}
	return result, nil
}

func (s *Store) FindCommandsForCluster(
	_ context.Context, clusterID string, criterion models.Criterion) ([]models.Command, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if _, ok := s.clusters[clusterID]; !ok {
		return nil, registry.NewErrNotFound("cluster", clusterID)
	}
	var result []models.Command
	for _, id := range s.clusterCommands[clusterID] {
		cmd, ok := s.commands[id]
		if !ok || cmd.Status != models.ResourceStatusActive {
			continue
		}
		if s.matcher.Matches(criterion, cmd) {
			result = append(result, cmd.Copy())
		}
	}
	return result, nil
}

func (s *Store) GetApplicationsForCommand(_ context.Context, commandID string) ([]models.Application, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	if _, ok := s.commands[commandID]; !ok {
		return nil, registry.NewErrNotFound("command", commandID)
	}
	ids := s.commandApplications[commandID]
	result := make([]models.Application, 0, len(ids))
	for _, id := range ids {
		if app, ok := s.applications[id]; ok {
			result = append(result, app.Copy())
		}
	}
	return result, nil
}

func (s *Store) SaveJobRequest(_ context.Context, request models.JobRequest) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.jobs[request.ID]; ok {
		return registry.NewErrAlreadyExists("job", request.ID)
	}
	now := s.clock.Now().UTC()
	s.jobs[request.ID] = models.JobRecord{
		Request:       *request.Copy(),
		Status:        models.JobStatusAccepted,
		StatusMessage: "Job accepted",
		Created:       now,
		Updated:       now,
	}
	return nil
}

func (s *Store) UpdateJobStatus(_ context.Context, jobID string, status models.JobStatus, message string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return registry.NewErrNotFound("job", jobID)
	}
	job.Status = status
	job.StatusMessage = message
	job.Updated = s.clock.Now().UTC()
	s.jobs[jobID] = job
	return nil
}

func (s *Store) SetJobResolution(_ context.Context, jobID, clusterID, commandID string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return registry.NewErrNotFound("job", jobID)
	}
	job.ClusterID = clusterID
	job.CommandID = commandID
	job.Updated = s.clock.Now().UTC()
	s.jobs[jobID] = job
	return nil
}

func (s *Store) GetJob(_ context.Context, jobID string) (models.JobRecord, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	job, ok := s.jobs[jobID]
	if !ok {
		return models.JobRecord{}, registry.NewErrNotFound("job", jobID)
	}
	job.Request = *job.Request.Copy()
	return job, nil
}

func (s *Store) DeleteJobsCreatedBefore(_ context.Context, before time.Time, limit int) (int, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	var candidates []models.JobRecord
	for _, job := range s.jobs {
		if job.Status.IsTerminal() && job.Created.Before(before) {
			candidates = append(candidates, job)
		}
	}
	// oldest first so repeated batches make progress deterministically
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Created.Before(candidates[j].Created)
	})
	if limit > 0 && len(candidates) > limit {
		candidates = candidates[:limit]
	}
	for _, job := range candidates {
		delete(s.jobs, job.Request.ID)
	}
	return len(candidates), nil
}

func (s *Store) PutCluster(_ context.Context, cluster models.Cluster) error {
	cluster.Normalize()
	if err := cluster.Validate(); err != nil {
		return err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.clusters[cluster.ID]; !ok {
		s.clusterOrder = append(s.clusterOrder, cluster.ID)
	}
	c := cluster.Copy()
	s.stampMeta(&c.ResourceMeta)
	s.clusters[c.ID] = c
	return nil
}

func (s *Store) PutCommand(_ context.Context, command models.Command) error {
	command.Normalize()
	if err := command.Validate(); err != nil {
		return err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()

	c := command.Copy()
	s.stampMeta(&c.ResourceMeta)
	s.commands[c.ID] = c
	return nil
}

func (s *Store) PutApplication(_ context.Context, application models.Application) error {
	application.Normalize()
	if err := application.Validate(); err != nil {
		return err
	}
	s.mtx.Lock()
	defer s.mtx.Unlock()

	a := application.Copy()
	s.stampMeta(&a.ResourceMeta)
	s.applications[a.ID] = a
	return nil
}

func (s *Store) SetClusterCommands(_ context.Context, clusterID string, commandIDs []string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.clusters[clusterID]; !ok {
		return registry.NewErrNotFound("cluster", clusterID)
	}
	for _, id := range commandIDs {
		if _, ok := s.commands[id]; !ok {
			return registry.NewErrNotFound("command", id)
		}
	}
	s.clusterCommands[clusterID] = slices.Clone(commandIDs)
	return nil
}

func (s *Store) SetCommandApplications(_ context.Context, commandID string, applicationIDs []string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.commands[commandID]; !ok {
		return registry.NewErrNotFound("command", commandID)
	}
	for _, id := range applicationIDs {
		if _, ok := s.applications[id]; !ok {
			return registry.NewErrNotFound("application", id)
		}
	}
	s.commandApplications[commandID] = slices.Clone(applicationIDs)
	return nil
}

func (s *Store) Close(_ context.Context) error {
	return nil
}

// stampMeta sets created/updated times. Callers hold the write lock.
func (s *Store) stampMeta(meta *models.ResourceMeta) {
	now := s.clock.Now().UTC()
	if meta.Created.IsZero() {
		meta.Created = now
	}
	meta.Updated = now
}

// compile-time check for interface implementation
var _ registry.Store = (*Store)(nil)
