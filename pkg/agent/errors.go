package agent

import (
	"github.com/genie-oss/genie/pkg/genieerrors"
)

const errComponent = "AgentLauncher"

// NewErrLaunchFailed wraps a failure to start the job process.
func NewErrLaunchFailed(err error, launcher, jobID string) genieerrors.Error {
	return genieerrors.Wrap(err, "launcher %s failed to start job %s", launcher, jobID).
		WithCode(genieerrors.LaunchError).
		WithComponent(errComponent).
		WithDetail("launcher", launcher).
		WithDetail("jobID", jobID)
}
