// Package local launches the job run script as a child process of the server.
package local

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sort"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog/log"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/models"
)

const Name = "local"

type Option func(*Launcher)

func WithClock(clock clock.Clock) Option {
	return func(l *Launcher) {
		l.clock = clock
	}
}

// Launcher runs the job command line in the job directory. The process
// outlives the submission request and is bounded by the job timeout only.
type Launcher struct {
	clock clock.Clock
}

func NewLauncher(opts ...Option) *Launcher {
	l := &Launcher{clock: clock.New()}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Launcher) Name() string {
	return Name
}

// IsInstalled checks that a shell is available to run the job script.
func (l *Launcher) IsInstalled(context.Context) (bool, error) {
	_, err := exec.LookPath("bash")
	return err == nil, nil
}

func (l *Launcher) Launch(ctx context.Context, spec models.JobSpecification) (agent.Handle, error) {
	if len(spec.CommandLine) == 0 {
		return agent.Handle{}, agent.NewErrLaunchFailed(fmt.Errorf("empty command line"), Name, spec.JobID)
	}

	// detached from the submission context, the job runs until it exits or times out
	runCtx, cancel := context.WithCancel(context.Background())
	if spec.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(context.Background(), spec.Timeout)
	}

	cmd := exec.CommandContext(runCtx, spec.CommandLine[0], spec.CommandLine[1:]...)
	cmd.Dir = spec.JobDirectory
	cmd.Env = append(os.Environ(), environment(spec.Environment)...)

	var logFile *os.File
	if spec.LogFile != "" {
		f, err := os.OpenFile(spec.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			cancel()
			return agent.Handle{}, agent.NewErrLaunchFailed(err, Name, spec.JobID)
		}
		logFile = f
		cmd.Stdout = f
		cmd.Stderr = f
	}

	if err := cmd.Start(); err != nil {
		cancel()
		closeLog(logFile)
		return agent.Handle{}, agent.NewErrLaunchFailed(err, Name, spec.JobID)
	}

	handle := agent.Handle{
		JobID:     spec.JobID,
		Launcher:  Name,
		ProcessID: cmd.Process.Pid,
		Started:   l.clock.Now(),
	}
	logger := log.Ctx(ctx).With().Str("JobID", spec.JobID).Int("PID", handle.ProcessID).Logger()
	logger.Info().Msg("job process started")

	go func() {
		defer cancel()
		defer closeLog(logFile)
		if err := cmd.Wait(); err != nil {
			logger.Warn().Err(err).Dur("Elapsed", l.clock.Since(handle.Started)).Msg("job process exited with error")
			return
		}
		logger.Info().Dur("Elapsed", l.clock.Since(handle.Started)).Msg("job process finished")
	}()
	return handle, nil
}

func closeLog(f *os.File) {
	if f != nil {
		_ = f.Close()
	}
}

func environment(env map[string]string) []string {
	out := make([]string, 0, len(env))
	for k, v := range env {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// compile-time check that Launcher implements agent.Launcher
var _ agent.Launcher = (*Launcher)(nil)
