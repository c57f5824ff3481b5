package registry

import (
	"errors"
	"fmt"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

const errComponent = "Registry"

// NewErrNotFound is returned when a resource or job does not exist.
func NewErrNotFound(kind, id string) genieerrors.Error {
	return genieerrors.New("%s not found: %s", kind, id).
		WithCode(genieerrors.NotFoundError).
		WithComponent(errComponent).
		WithDetail(kind, id)
}

// NewErrAlreadyExists is returned when a job id is reused.
func NewErrAlreadyExists(kind, id string) genieerrors.Error {
	return genieerrors.New("%s already exists: %s", kind, id).
		WithCode(genieerrors.ValidationError).
		WithComponent(errComponent).
		WithDetail(kind, id)
}

// TransientKind names a class of persistence failure that may succeed on retry.
type TransientKind string

const (
	LockContention    TransientKind = "LockContention"
	ConnectionTimeout TransientKind = "ConnectionTimeout"
	OptimisticLock    TransientKind = "OptimisticLock"
	QueryTimeout      TransientKind = "QueryTimeout"
)

// TransientKinds is every known transient kind.
var TransientKinds = []TransientKind{LockContention, ConnectionTimeout, OptimisticLock, QueryTimeout}

// TransientError wraps a backend error that was classified as transient.
type TransientError struct {
	Kind TransientKind
	Op   string
	Err  error
}

func NewTransientError(kind TransientKind, op string, err error) *TransientError {
	return &TransientError{Kind: kind, Op: op, Err: err}
}

func (e *TransientError) Error() string {
	return fmt.Sprintf("transient %s failure in %s: %v", e.Kind, e.Op, e.Err)
}

func (e *TransientError) Unwrap() error {
	return e.Err
}

// TransientKindOf returns the transient kind of err, if any.
func TransientKindOf(err error) (TransientKind, bool) {
	var te *TransientError
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return "", false
}
