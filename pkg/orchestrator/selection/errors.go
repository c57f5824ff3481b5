package selection

import (
	"github.com/genie-oss/genie/pkg/genieerrors"
)

// NewErrSelectorFailed is returned when a selector faults. It is terminal for
// the submission.
func NewErrSelectorFailed(err error, selectorIdentity, jobID string) genieerrors.Error {
	return genieerrors.Wrap(err, "selector %s failed for job %s", selectorIdentity, jobID).
		WithCode(genieerrors.SelectionError).
		WithComponent(errComponent).
		WithDetail("selector", selectorIdentity).
		WithDetail("jobID", jobID)
}
