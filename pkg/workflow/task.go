package workflow

import (
	"context"
	"fmt"
)

// Task is one step of a job's setup. A task reads and writes the shared
// context and may touch the job directory. It must not keep state between
// jobs.
type Task interface {
	Name() string
	Execute(ctx context.Context, wctx *Context) error
}

// TaskError reports the task that stopped a workflow.
type TaskError struct {
	Task  string
	Index int
	// Total is the number of tasks in the workflow.
	Total int
	JobID string
	// NotStarted is set when the workflow was cancelled before the task ran.
	NotStarted bool
	Err        error
}

func (e *TaskError) Error() string {
	if e.NotStarted {
		return fmt.Sprintf("task %s (%d of %d) for job %s not started: %v", e.Task, e.Index+1, e.Total, e.JobID, e.Err)
	}
	return fmt.Sprintf("task %s (%d of %d) failed for job %s: %v", e.Task, e.Index+1, e.Total, e.JobID, e.Err)
}

func (e *TaskError) Unwrap() error {
	return e.Err
}
