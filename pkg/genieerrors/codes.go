package genieerrors

// ErrorCode classifies an error so callers can decide how to react without
// matching on message text.
type ErrorCode string

const (
	// ValidationError is raised for malformed criteria or job requests.
	ValidationError ErrorCode = "ValidationError"
	NotFoundError   ErrorCode = "NotFound"
	IOError         ErrorCode = "IOError"

	// Resolution failures. Terminal for the job and never retried.
	NoMatchingClusterError   ErrorCode = "NoMatchingCluster"
	NoMatchingCommandError   ErrorCode = "NoMatchingCommand"
	ApplicationNotFoundError ErrorCode = "ApplicationNotFound"
	NoResourceSelectedError  ErrorCode = "NoResourceSelected"

	// SelectionError is a fault inside a selector, never "no good candidate".
	SelectionError ErrorCode = "SelectionError"

	WorkflowTaskError ErrorCode = "WorkflowTaskError"

	// AdmissionRejectedError signals local backpressure. The submitter may retry.
	AdmissionRejectedError ErrorCode = "AdmissionRejected"

	// TransientPersistenceError is handled by the retrying invoker and should
	// only leave it as ServerError after retries are exhausted.
	TransientPersistenceError ErrorCode = "TransientPersistence"
	ServerError               ErrorCode = "ServerError"

	LaunchError ErrorCode = "LaunchError"
)

// IsResolutionFailure reports whether the code belongs to the family of
// "resolution found nothing" outcomes.
func (c ErrorCode) IsResolutionFailure() bool {
	switch c {
	case NoMatchingClusterError, NoMatchingCommandError, ApplicationNotFoundError, NoResourceSelectedError:
		return true
	default:
		return false
	}
}
