// Package noop provides a launcher that records jobs instead of running them.
// It backs dry runs and tests.
package noop

import (
	"context"
	"sync"

	"github.com/benbjohnson/clock"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/models"
)

const Name = "noop"

type LauncherHandlerIsInstalled func(ctx context.Context) (bool, error)
type LauncherHandlerLaunch func(ctx context.Context, spec models.JobSpecification) (agent.Handle, error)

// LauncherConfigExternalHooks lets tests replace the default behaviour.
type LauncherConfigExternalHooks struct {
	IsInstalled LauncherHandlerIsInstalled
	Launch      LauncherHandlerLaunch
}

type LauncherConfig struct {
	Name          string
	Clock         clock.Clock
	ExternalHooks LauncherConfigExternalHooks
}

type Launcher struct {
	config LauncherConfig

	mu       sync.Mutex
	launched []models.JobSpecification
}

func NewLauncher() *Launcher {
	return NewLauncherWithConfig(LauncherConfig{})
}

func NewLauncherWithConfig(config LauncherConfig) *Launcher {
	if config.Name == "" {
		config.Name = Name
	}
	if config.Clock == nil {
		config.Clock = clock.New()
	}
	return &Launcher{config: config}
}

func (l *Launcher) Name() string {
	return l.config.Name
}

func (l *Launcher) IsInstalled(ctx context.Context) (bool, error) {
	if l.config.ExternalHooks.IsInstalled != nil {
		return l.config.ExternalHooks.IsInstalled(ctx)
	}
	return true, nil
}

func (l *Launcher) Launch(ctx context.Context, spec models.JobSpecification) (agent.Handle, error) {
	if l.config.ExternalHooks.Launch != nil {
		handle, err := l.config.ExternalHooks.Launch(ctx, spec)
		if err != nil {
			return agent.Handle{}, agent.NewErrLaunchFailed(err, l.config.Name, spec.JobID)
		}
		l.record(spec)
		return handle, nil
	}
	l.record(spec)
	return agent.Handle{
		JobID:    spec.JobID,
		Launcher: l.config.Name,
		Started:  l.config.Clock.Now(),
	}, nil
}

// Launched returns copies of every specification launched so far.
func (l *Launcher) Launched() []models.JobSpecification {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]models.JobSpecification, len(l.launched))
	for i, spec := range l.launched {
		out[i] = spec.Copy()
	}
	return out
}

func (l *Launcher) record(spec models.JobSpecification) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.launched = append(l.launched, spec.Copy())
}

// compile-time check that Launcher implements agent.Launcher
var _ agent.Launcher = (*Launcher)(nil)
