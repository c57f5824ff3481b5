package system

import (
	"context"
	"errors"
	realsync "sync"
	"time"

	sync "github.com/bacalhau-project/golang-mutex-tracer"
	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

// CleanupFunc releases one resource. It should return promptly once ctx is done.
type CleanupFunc func(ctx context.Context) error

// CleanupManager collects the clean-up callbacks of long-running components
// so that the process can release them all before it exits.
type CleanupManager struct {
	fnsMutex sync.Mutex
	fns      []namedCleanup
	fnsDone  bool
}

type namedCleanup struct {
	name string
	fn   CleanupFunc
}

// NewCleanupManager returns a new CleanupManager instance.
func NewCleanupManager() *CleanupManager {
	c := &CleanupManager{}
	c.fnsMutex.EnableTracerWithOpts(sync.Opts{
		Threshold: 10 * time.Millisecond,
		Id:        "CleanupManager.fnsMutex",
	})
	return c
}

// RegisterCallback registers a clean-up function under a name used in logs.
func (cm *CleanupManager) RegisterCallback(name string, fn CleanupFunc) {
	cm.fnsMutex.Lock()
	defer cm.fnsMutex.Unlock()

	if cm.fnsDone {
		log.Error().Str("Callback", name).Msg("CleanupManager: RegisterCallback called after Cleanup")
		return
	}
	cm.fns = append(cm.fns, namedCleanup{name: name, fn: fn})
}

// Cleanup runs all registered clean-up functions concurrently, waits for
// them and returns their combined errors. Cancellation errors are dropped.
func (cm *CleanupManager) Cleanup(ctx context.Context) error {
	cm.fnsMutex.Lock()
	defer cm.fnsMutex.Unlock()

	if cm.fnsDone {
		log.Ctx(ctx).Warn().Msg("CleanupManager: Cleanup called again after already called")
		return nil
	}
	cm.fnsDone = true

	var (
		wg   realsync.WaitGroup
		mu   realsync.Mutex
		errs error
	)
	for _, c := range cm.fns {
		wg.Add(1)
		go func(c namedCleanup) {
			defer wg.Done()
			err := c.fn(ctx)
			if err == nil || errors.Is(err, context.Canceled) {
				return
			}
			log.Ctx(ctx).Error().Err(err).Str("Callback", c.name).Msg("Error during clean-up callback")
			mu.Lock()
			errs = multierr.Append(errs, err)
			mu.Unlock()
		}(c)
	}
	wg.Wait()
	return errs
}
