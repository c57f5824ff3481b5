//go:build unit || !integration

package workflow

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/suite"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

type recordingTask struct {
	name string
	err  error
	runs *[]string
	hook func(ctx context.Context, wctx *Context)
}

func (t recordingTask) Name() string { return t.name }

func (t recordingTask) Execute(ctx context.Context, wctx *Context) error {
	*t.runs = append(*t.runs, t.name)
	if t.hook != nil {
		t.hook(ctx, wctx)
	}
	return t.err
}

type ExecutorSuite struct {
	suite.Suite
	runs []string
	wctx *Context
}

func TestExecutorSuite(t *testing.T) {
	suite.Run(t, new(ExecutorSuite))
}

func (s *ExecutorSuite) SetupTest() {
	s.runs = nil
	s.wctx = NewContext(ContextParams{JobID: "job-1", Layout: NewLayout("/jobs/job-1"), FS: afero.NewMemMapFs()})
}

func (s *ExecutorSuite) task(name string, err error) Task {
	return recordingTask{name: name, err: err, runs: &s.runs}
}

func (s *ExecutorSuite) TestRunsTasksInOrder() {
	e, err := NewExecutor([]Task{s.task("T1", nil), s.task("T2", nil), s.task("T3", nil)})
	s.Require().NoError(err)

	run, err := e.Execute(context.Background(), s.wctx)
	s.Require().NoError(err)
	s.Equal([]string{"T1", "T2", "T3"}, s.runs)
	s.Equal(StateCompleted, run.State())
	s.Equal([]string{"T1", "T2", "T3"}, run.Completed())
	s.Empty(run.CurrentTask())
	s.NoError(run.Err())
}

func (s *ExecutorSuite) TestFailingTaskShortCircuits() {
	cause := errors.New("disk full")
	e, err := NewExecutor([]Task{s.task("T1", nil), s.task("T2", cause), s.task("T3", nil)})
	s.Require().NoError(err)

	run, err := e.Execute(context.Background(), s.wctx)
	s.Require().Error(err)
	s.Equal([]string{"T1", "T2"}, s.runs, "T3 must never run")
	s.Equal(StateFailed, run.State())
	s.Equal("T2", run.CurrentTask())
	s.Equal([]string{"T1"}, run.Completed())

	s.True(genieerrors.IsErrorWithCode(err, genieerrors.WorkflowTaskError))
	s.ErrorIs(err, cause)
	var taskErr *TaskError
	s.Require().ErrorAs(err, &taskErr)
	s.Equal("T2", taskErr.Task)
	s.Equal(1, taskErr.Index)
	s.Equal("job-1", taskErr.JobID)
	s.False(taskErr.NotStarted)
	s.Contains(err.Error(), "T2")
}

func (s *ExecutorSuite) TestCancellationCheckedBetweenTasks() {
	ctx, cancel := context.WithCancel(context.Background())
	cancelling := recordingTask{name: "T1", runs: &s.runs, hook: func(context.Context, *Context) { cancel() }}
	e, err := NewExecutor([]Task{cancelling, s.task("T2", nil)})
	s.Require().NoError(err)

	run, err := e.Execute(ctx, s.wctx)
	s.Equal([]string{"T1"}, s.runs, "the running task finishes, the next one never starts")
	s.ErrorIs(err, context.Canceled)
	var taskErr *TaskError
	s.Require().ErrorAs(err, &taskErr)
	s.Equal("T2", taskErr.Task)
	s.True(taskErr.NotStarted)
	s.Equal(StateFailed, run.State())
	s.Equal([]string{"T1"}, run.Completed())
}

func (s *ExecutorSuite) TestRunCannotExecuteTwice() {
	e, err := NewExecutor([]Task{s.task("T1", nil)})
	s.Require().NoError(err)
	run := e.NewRun(s.wctx)
	s.Equal(StatePending, run.State())
	s.Require().NoError(run.Execute(context.Background()))
	s.Error(run.Execute(context.Background()))
	s.Equal([]string{"T1"}, s.runs)
}

func (s *ExecutorSuite) TestInvalidTaskLists() {
	_, err := NewExecutor(nil)
	s.Error(err)
	_, err = NewExecutor([]Task{s.task("T1", nil), s.task("T1", nil)})
	s.Error(err)
	_, err = NewExecutor([]Task{nil})
	s.Error(err)
}

func (s *ExecutorSuite) TestExtensions() {
	s.wctx.SetExtension("attempt", 3)
	v, ok := GetExtension[int](s.wctx, "attempt")
	s.True(ok)
	s.Equal(3, v)
	_, ok = GetExtension[string](s.wctx, "attempt")
	s.False(ok)
	_, ok = GetExtension[int](s.wctx, "missing")
	s.False(ok)
}

func (s *ExecutorSuite) TestEnvKeepsFirstSetOrder() {
	env := NewEnv()
	env.Set("B", "1")
	env.Set("A", "2")
	env.Set("B", "3")
	s.Equal([]string{"B", "A"}, env.Keys())
	v, _ := env.Get("B")
	s.Equal("3", v)
	s.Equal(map[string]string{"A": "2", "B": "3"}, env.Map())
}

func (s *ExecutorSuite) TestScript() {
	script := NewScript().
		Line("#!/usr/bin/env bash").
		Export("GENIE_JOB_NAME", "it's").
		ExportRaw("GENIE_APPLICATION_DIR", ScriptPath("genie/applications")).
		Source(ScriptPath("genie/command/hive/setup.sh"))
	s.Equal(`#!/usr/bin/env bash
export GENIE_JOB_NAME='it'\''s'
export GENIE_APPLICATION_DIR="${GENIE_JOB_DIR}/genie/applications"
if [ -f "${GENIE_JOB_DIR}/genie/command/hive/setup.sh" ]; then source "${GENIE_JOB_DIR}/genie/command/hive/setup.sh"; fi
`, script.String())
}

func (s *ExecutorSuite) TestLayout() {
	l := NewLayout("/jobs/job-1/")
	s.Equal("genie/applications/spark", l.ApplicationDir("spark"))
	s.Equal("genie/command/hive/config", l.ConfigDir(l.CommandDir("hive")))
	s.Equal("genie/cluster/c1/dependencies", l.DependenciesDir(l.ClusterDir("c1")))
	s.Equal("/jobs/job-1/genie/env.list", l.Abs(l.EnvFile()))
}
