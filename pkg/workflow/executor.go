package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/slices"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

const errComponent = "Workflow"

// State of a workflow run.
type State string

const (
	StatePending   State = "PENDING"
	StateRunning   State = "RUNNING"
	StateCompleted State = "COMPLETED"
	StateFailed    State = "FAILED"
)

func (s State) IsTerminal() bool {
	return s == StateCompleted || s == StateFailed
}

// Executor runs an ordered list of tasks against one context. There is no
// retry and no rollback: the first failing task stops the run and partial
// directory state is left in place.
type Executor struct {
	tasks []Task
	clock clock.Clock
}

type ExecutorOption func(*Executor)

func WithClock(clock clock.Clock) ExecutorOption {
	return func(e *Executor) {
		e.clock = clock
	}
}

func NewExecutor(tasks []Task, opts ...ExecutorOption) (*Executor, error) {
	if len(tasks) == 0 {
		return nil, fmt.Errorf("workflow needs at least one task")
	}
	seen := make(map[string]struct{}, len(tasks))
	for i, t := range tasks {
		if t == nil {
			return nil, fmt.Errorf("workflow task %d is nil", i)
		}
		if _, ok := seen[t.Name()]; ok {
			return nil, fmt.Errorf("workflow task %s registered twice", t.Name())
		}
		seen[t.Name()] = struct{}{}
	}
	e := &Executor{tasks: slices.Clone(tasks), clock: clock.New()}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// TaskNames returns the task names in execution order.
func (e *Executor) TaskNames() []string {
	names := make([]string, len(e.tasks))
	for i, t := range e.tasks {
		names[i] = t.Name()
	}
	return names
}

// NewRun prepares a run of the workflow against wctx. It starts in PENDING.
func (e *Executor) NewRun(wctx *Context) *Run {
	return &Run{executor: e, wctx: wctx, state: StatePending, current: -1}
}

// Execute runs the workflow to completion and returns the finished run.
func (e *Executor) Execute(ctx context.Context, wctx *Context) (*Run, error) {
	run := e.NewRun(wctx)
	return run, run.Execute(ctx)
}

// Run is a single execution of a workflow. Its progress can be read from
// other goroutines while it executes.
type Run struct {
	executor *Executor
	wctx     *Context

	mu        sync.RWMutex
	state     State
	current   int
	completed []string
	err       error
}

// Execute runs every task in order. Cancellation of ctx is checked before
// each task, never while one runs. It returns a WorkflowTaskError wrapping a
// *TaskError on failure.
func (r *Run) Execute(ctx context.Context) error {
	if !r.transition(StatePending, StateRunning) {
		return fmt.Errorf("workflow run for job %s already started", r.wctx.JobID)
	}
	tasks := r.executor.tasks
	logger := log.Ctx(ctx).With().Str("JobID", r.wctx.JobID).Logger()

	for i, task := range tasks {
		r.mu.Lock()
		r.current = i
		r.mu.Unlock()

		if err := ctx.Err(); err != nil {
			return r.fail(&TaskError{
				Task: task.Name(), Index: i, Total: len(tasks), JobID: r.wctx.JobID, NotStarted: true, Err: err,
			})
		}

		start := r.executor.clock.Now()
		logger.Debug().Str("Task", task.Name()).Msg("running workflow task")
		if err := task.Execute(ctx, r.wctx); err != nil {
			logger.Error().Err(err).Str("Task", task.Name()).Msg("workflow task failed")
			return r.fail(&TaskError{Task: task.Name(), Index: i, Total: len(tasks), JobID: r.wctx.JobID, Err: err})
		}
		logger.Debug().Str("Task", task.Name()).Dur("Elapsed", r.executor.clock.Since(start)).Msg("workflow task done")

		r.mu.Lock()
		r.completed = append(r.completed, task.Name())
		r.mu.Unlock()
	}

	r.mu.Lock()
	r.state = StateCompleted
	r.current = -1
	r.mu.Unlock()
	return nil
}

func (r *Run) transition(from, to State) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != from {
		return false
	}
	r.state = to
	return true
}

func (r *Run) fail(taskErr *TaskError) error {
	err := genieerrors.Wrap(taskErr, "workflow failed").
		WithCode(genieerrors.WorkflowTaskError).
		WithComponent(errComponent).
		WithDetail("jobID", taskErr.JobID).
		WithDetail("task", taskErr.Task)
	r.mu.Lock()
	r.state = StateFailed
	r.err = err
	r.mu.Unlock()
	return err
}

func (r *Run) State() State {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// CurrentTask returns the running or failed task, or "" when none.
func (r *Run) CurrentTask() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.current < 0 || r.state == StateCompleted {
		return ""
	}
	return r.executor.tasks[r.current].Name()
}

// Completed returns the names of the tasks that finished successfully.
func (r *Run) Completed() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.completed)
}

func (r *Run) Err() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.err
}
