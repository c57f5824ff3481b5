//go:build unit || !integration

package genieerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ErrorTestSuite struct {
	suite.Suite
}

func TestErrorTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorTestSuite))
}

func (s *ErrorTestSuite) TestNew() {
	err := New("test error")
	s.Equal("test error", err.Error())
	s.NotEmpty(err.StackTrace())
	s.Empty(err.Hint())
	s.False(err.Retryable())
	s.Nil(err.Details())
	s.Equal(ErrorCode(""), err.Code())
}

func (s *ErrorTestSuite) TestFormattedMessage() {
	err := New("cluster %s not found", "c1")
	s.Equal("cluster c1 not found", err.Error())
}

func (s *ErrorTestSuite) TestFluentSetters() {
	err := New("boom").
		WithCode(NoMatchingClusterError).
		WithComponent("Resolver").
		WithHint("add a cluster tagged %s", "prod").
		WithDetail("JobID", "j1").
		WithRetryable()

	s.Equal(NoMatchingClusterError, err.Code())
	s.Equal("Resolver", err.Component())
	s.Equal("add a cluster tagged prod", err.Hint())
	s.Equal(map[string]string{"JobID": "j1"}, err.Details())
	s.True(err.Retryable())
	s.True(err.Code().IsResolutionFailure())
}

func (s *ErrorTestSuite) TestWrapPlainError() {
	original := errors.New("original error")
	wrapped := Wrap(original, "wrapped error")

	s.Equal("wrapped error: original error", wrapped.Error())
	s.Equal("wrapped error: original error", wrapped.ErrorWrapped())
	s.Equal(original, errors.Unwrap(wrapped))
	s.NotEmpty(wrapped.StackTrace())
}

func (s *ErrorTestSuite) TestWrapCodedError() {
	original := New("original error").WithCode(NotFoundError).WithDetail("ID", "x")
	wrapped := Wrap(original, "wrapped error")

	s.Equal("original error", wrapped.Error())
	s.Equal("wrapped error: original error", wrapped.ErrorWrapped())
	s.Equal(original, errors.Unwrap(wrapped))
	s.Equal(original.StackTrace(), wrapped.StackTrace())
	s.Equal(NotFoundError, wrapped.Code())

	// details are copied, not shared
	wrapped.WithDetail("extra", "y")
	s.Len(original.Details(), 1)
}

func (s *ErrorTestSuite) TestMultipleWraps() {
	err1 := New("error1")
	err2 := Wrap(err1, "error2")
	err3 := Wrap(err2, "error3")

	s.Equal("error1", err3.Error())
	s.Equal("error3: error2: error1", err3.ErrorWrapped())

	unwrapped := errors.Unwrap(err3)
	s.Require().NotNil(unwrapped)
	s.Equal("error2: error1", unwrapped.(Error).ErrorWrapped())
	s.Nil(errors.Unwrap(errors.Unwrap(unwrapped)))
}

func (s *ErrorTestSuite) TestWrapNil() {
	s.Nil(Wrap(nil, "nothing"))
	s.Nil(Wrapf(nil, "nothing"))
}

func (s *ErrorTestSuite) TestIsErrorWithCode() {
	coded := New("rejected").WithCode(AdmissionRejectedError)

	s.True(IsErrorWithCode(coded, AdmissionRejectedError))
	s.True(IsErrorWithCode(fmt.Errorf("submit: %w", coded), AdmissionRejectedError))
	s.True(IsErrorWithCode(errors.Join(errors.New("other"), coded), AdmissionRejectedError))
	s.False(IsErrorWithCode(coded, ServerError))
	s.False(IsErrorWithCode(errors.New("plain"), AdmissionRejectedError))
	s.False(IsErrorWithCode(nil, AdmissionRejectedError))

	s.Equal(AdmissionRejectedError, CodeOf(fmt.Errorf("x: %w", coded)))
	s.True(IsError(fmt.Errorf("x: %w", coded)))
}
