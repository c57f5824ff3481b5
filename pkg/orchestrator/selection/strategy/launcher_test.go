//go:build unit || !integration

package strategy

import (
	"context"

	"github.com/genie-oss/genie/pkg/agent"
	"github.com/genie-oss/genie/pkg/models"
)

type namedLauncher string

func (n namedLauncher) Name() string                              { return string(n) }
func (n namedLauncher) IsInstalled(context.Context) (bool, error) { return true, nil }
func (n namedLauncher) Launch(context.Context, models.JobSpecification) (agent.Handle, error) {
	return agent.Handle{Launcher: string(n)}, nil
}
