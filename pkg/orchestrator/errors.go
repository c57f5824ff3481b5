package orchestrator

import (
	"github.com/genie-oss/genie/pkg/genieerrors"
)

const errComponent = "JobCoordinator"

// NewErrAdmissionRejected is returned when every submission slot is taken.
// Clients may retry later.
func NewErrAdmissionRejected(jobID string, max int) genieerrors.Error {
	return genieerrors.New("job %s rejected: %d submissions already in flight", jobID, max).
		WithCode(genieerrors.AdmissionRejectedError).
		WithComponent(errComponent).
		WithRetryable().
		WithHint("retry the submission later").
		WithDetail("jobID", jobID)
}

// NewErrNoLauncher is returned when no agent launcher is installed or the
// launcher selector chose none.
func NewErrNoLauncher(jobID, rationale string) genieerrors.Error {
	return genieerrors.New("no agent launcher selected for job %s: %s", jobID, rationale).
		WithCode(genieerrors.NoResourceSelectedError).
		WithComponent(errComponent).
		WithDetail("jobID", jobID)
}

func newErrSubmission(err error, jobID, step string) genieerrors.Error {
	return genieerrors.Wrap(err, "job %s failed during %s", jobID, step).
		WithComponent(errComponent).
		WithDetail("jobID", jobID).
		WithDetail("step", step)
}
