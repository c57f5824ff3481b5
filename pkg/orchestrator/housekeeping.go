package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/multierr"

	"github.com/genie-oss/genie/pkg/genieerrors"
	"github.com/genie-oss/genie/pkg/leader"
	"github.com/genie-oss/genie/pkg/lib/validate"
	"github.com/genie-oss/genie/pkg/registry"
	"github.com/genie-oss/genie/pkg/storage/jobfs"
)

const (
	// DefaultHousekeepingWorkers is the default number of parallel workers for housekeeping tasks
	DefaultHousekeepingWorkers = 3
	// DefaultCleanupBatchSize is the default number of jobs deleted per database call
	DefaultCleanupBatchSize = 100
)

type HousekeepingParams struct {
	JobStore registry.JobStore
	JobDirs  *jobfs.Manager
	// Leader decides whether this node cleans up the database. Job
	// directories are local and every node cleans up its own.
	Leader leader.Oracle
	// Interval is the interval at which housekeeping tasks are run
	Interval time.Duration
	// Workers is the maximum number of parallel workers deleting job directories
	Workers int
	// JobRetention is how long terminal jobs are kept in the database.
	// Zero disables database cleanup.
	JobRetention time.Duration
	// DirRetention is how long job directories are kept after their last
	// modification. Zero disables disk cleanup.
	DirRetention time.Duration
	BatchSize    int
	// Clock is the clock used for time-based operations.
	// If not provided, the system clock is used.
	Clock clock.Clock
}

// Housekeeping periodically removes old jobs from the database and old job
// directories from disk.
type Housekeeping struct {
	jobStore     registry.JobStore
	jobDirs      *jobfs.Manager
	leader       leader.Oracle
	interval     time.Duration
	jobRetention time.Duration
	dirRetention time.Duration
	batchSize    int

	workersSem chan struct{}
	waitGroup  sync.WaitGroup
	startOnce  sync.Once
	stopOnce   sync.Once
	stopChan   chan struct{}
	running    bool
	mu         sync.Mutex
	clock      clock.Clock
}

func NewHousekeeping(params HousekeepingParams) (*Housekeeping, error) {
	if params.Workers == 0 {
		params.Workers = DefaultHousekeepingWorkers
	}
	if params.BatchSize == 0 {
		params.BatchSize = DefaultCleanupBatchSize
	}
	if params.Clock == nil {
		params.Clock = clock.New()
	}

	// validate params
	err := errors.Join(
		validate.NotNil(params.JobStore, "job store cannot be nil"),
		validate.NotNil(params.JobDirs, "job directory manager cannot be nil"),
		validate.NotNil(params.Leader, "leader oracle cannot be nil"),
		validate.IsGreaterThanZero(params.Interval, "interval must be greater than zero"),
		validate.IsGreaterThanZero(params.Workers, "workers must be greater than zero"),
		validate.IsGreaterThanZero(params.BatchSize, "batch size must be greater than zero"),
		validate.IsGreaterOrEqualToZero(params.JobRetention, "job retention cannot be negative"),
		validate.IsGreaterOrEqualToZero(params.DirRetention, "directory retention cannot be negative"),
	)
	if err != nil {
		return nil, fmt.Errorf("error validating housekeeping params: %w", err)
	}

	h := &Housekeeping{
		jobStore:     params.JobStore,
		jobDirs:      params.JobDirs,
		leader:       params.Leader,
		interval:     params.Interval,
		jobRetention: params.JobRetention,
		dirRetention: params.DirRetention,
		batchSize:    params.BatchSize,
		workersSem:   make(chan struct{}, params.Workers),
		stopChan:     make(chan struct{}),
		clock:        params.Clock,
	}

	return h, nil
}

// IsRunning returns true if the housekeeping task is running
func (h *Housekeeping) IsRunning() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.running
}

// Start starts the housekeeping task
func (h *Housekeeping) Start(ctx context.Context) {
	h.startOnce.Do(func() {
		h.setRunning(true)
		go h.runHousekeepingTasks(ctx)
	})
}

func (h *Housekeeping) Stop(ctx context.Context) {
	h.stopOnce.Do(func() {
		close(h.stopChan)

		// wait for inflight housekeeping tasks to complete, or until the context is done
		waitGroupDone := make(chan struct{})
		go func() {
			h.waitGroup.Wait()
			close(waitGroupDone)
		}()

		select {
		case <-waitGroupDone:
		case <-ctx.Done():
		}
	})
}

func (h *Housekeeping) setRunning(running bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.running = running
}

func (h *Housekeeping) runHousekeepingTasks(ctx context.Context) {
	defer h.setRunning(false)
	ticker := h.clock.Ticker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := h.RunOnce(ctx); err != nil {
				log.Ctx(ctx).Warn().Err(err).Msg("housekeeping finished with errors")
			}
		case <-ctx.Done():
			log.Ctx(ctx).Debug().Msg("Context cancelled, stopping housekeeping task")
			return
		case <-h.stopChan:
			log.Ctx(ctx).Debug().Msg("Stop channel closed, stopping housekeeping task")
			return
		}
	}
}

// RunOnce runs every housekeeping task once and returns the combined errors.
// A failing task does not prevent the others from running.
func (h *Housekeeping) RunOnce(ctx context.Context) error {
	var err error
	if h.jobRetention > 0 && h.leader.IsLeader(ctx) {
		err = multierr.Append(err, h.cleanupJobs(ctx))
	}
	if h.dirRetention > 0 {
		err = multierr.Append(err, h.cleanupDirectories(ctx))
	}
	return err
}

// cleanupJobs deletes terminal jobs older than the retention in batches until
// a batch comes back short.
func (h *Housekeeping) cleanupJobs(ctx context.Context) error {
	before := h.clock.Now().Add(-h.jobRetention)
	total := 0
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		deleted, err := h.jobStore.DeleteJobsCreatedBefore(ctx, before, h.batchSize)
		total += deleted
		if err != nil {
			return fmt.Errorf("failed to delete jobs created before %s: %w", before.Format(time.RFC3339), err)
		}
		if deleted < h.batchSize {
			break
		}
	}
	if total > 0 {
		housekeepingDeletedCounter.Add(ctx, int64(total), attribute.String(AttrKindKey, "job"))
		log.Ctx(ctx).Info().Int("Deleted", total).Time("Before", before).Msg("deleted old jobs")
	}
	return nil
}

// cleanupDirectories deletes job directories not modified within the
// retention, using at most Workers deletions at a time. Directories of jobs
// that are not finished are kept whatever their age, as are those whose job
// status cannot be read. Directories without a job record are deleted.
func (h *Housekeeping) cleanupDirectories(ctx context.Context) error {
	before := h.clock.Now().Add(-h.dirRetention)
	jobIDs, err := h.jobDirs.ModifiedBefore(before)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	var errs error
	deleted := 0
	for _, jobID := range jobIDs {
		jobID := jobID
		h.workersSem <- struct{}{}
		h.waitGroup.Add(1)
		go func() {
			defer h.waitGroup.Done()
			defer func() { <-h.workersSem }()
			active, err := h.isActive(ctx, jobID)
			if err == nil && active {
				log.Ctx(ctx).Debug().Str("JobID", jobID).Msg("keeping directory of unfinished job")
				return
			}
			if err == nil {
				err = h.jobDirs.Delete(jobID)
			}
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = multierr.Append(errs, err)
				return
			}
			deleted++
		}()
	}
	h.waitGroup.Wait()

	if deleted > 0 {
		housekeepingDeletedCounter.Add(ctx, int64(deleted), attribute.String(AttrKindKey, "directory"))
		log.Ctx(ctx).Info().Int("Deleted", deleted).Time("Before", before).Msg("deleted old job directories")
	}
	return errs
}

func (h *Housekeeping) isActive(ctx context.Context, jobID string) (bool, error) {
	record, err := h.jobStore.GetJob(ctx, jobID)
	if genieerrors.IsErrorWithCode(err, genieerrors.NotFoundError) {
		return false, nil
	}
	if err != nil {
		return true, fmt.Errorf("failed to read status of job %s, keeping its directory: %w", jobID, err)
	}
	return !record.Status.IsTerminal(), nil
}
