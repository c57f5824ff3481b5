package genieerrors

import (
	"errors"
	"fmt"

	pkgerrors "github.com/pkg/errors"
)

// Error is the coded error type used across genie. Errors are built fluently:
//
//	genieerrors.New("cluster %s not found", id).
//		WithCode(genieerrors.NotFoundError).
//		WithComponent(errComponent)
type Error interface {
	error
	Unwrap() error

	// ErrorWrapped returns the full chain of messages, outermost first.
	ErrorWrapped() string
	Hint() string
	Retryable() bool
	FailsExecution() bool
	Details() map[string]string
	Code() ErrorCode
	Component() string
	StackTrace() string

	WithHint(hint string, a ...any) Error
	WithRetryable() Error
	WithFailsExecution() Error
	WithDetails(details map[string]string) Error
	WithDetail(key, value string) Error
	WithCode(code ErrorCode) Error
	WithComponent(component string) Error
}

type errorImpl struct {
	cause          error
	message        string
	wrappingMsg    string
	wrapped        bool
	hint           string
	retryable      bool
	failsExecution bool
	details        map[string]string
	code           ErrorCode
	component      string
	stack          string
}

// New creates a new Error with a formatted message.
func New(format string, a ...any) Error {
	return &errorImpl{
		message: fmt.Sprintf(format, a...),
		stack:   captureStack(),
	}
}

// Newf is an alias of New kept for call sites that prefer the f suffix.
func Newf(format string, a ...any) Error {
	return &errorImpl{
		message: fmt.Sprintf(format, a...),
		stack:   captureStack(),
	}
}

// Wrap wraps err with a formatted message. When err is already an Error the
// original message, code, component and stack trace are preserved and only the
// wrapping message is added to ErrorWrapped.
func Wrap(err error, format string, a ...any) Error {
	if err == nil {
		return nil
	}
	msg := fmt.Sprintf(format, a...)

	if inner, ok := err.(*errorImpl); ok {
		details := make(map[string]string, len(inner.details))
		for k, v := range inner.details {
			details[k] = v
		}
		if len(details) == 0 {
			details = nil
		}
		return &errorImpl{
			cause:          err,
			message:        inner.message,
			wrappingMsg:    msg,
			wrapped:        true,
			hint:           inner.hint,
			retryable:      inner.retryable,
			failsExecution: inner.failsExecution,
			details:        details,
			code:           inner.code,
			component:      inner.component,
			stack:          inner.stack,
		}
	}

	return &errorImpl{
		cause:       err,
		message:     fmt.Sprintf("%s: %s", msg, err.Error()),
		wrappingMsg: msg,
		stack:       captureStack(),
	}
}

// Wrapf is an alias of Wrap.
func Wrapf(err error, format string, a ...any) Error {
	if err == nil {
		return nil
	}
	return Wrap(err, format, a...)
}

func (e *errorImpl) Error() string {
	return e.message
}

func (e *errorImpl) Unwrap() error {
	return e.cause
}

func (e *errorImpl) ErrorWrapped() string {
	if !e.wrapped {
		return e.message
	}
	if inner, ok := e.cause.(Error); ok {
		return e.wrappingMsg + ": " + inner.ErrorWrapped()
	}
	return e.message
}

func (e *errorImpl) Hint() string               { return e.hint }
func (e *errorImpl) Retryable() bool            { return e.retryable }
func (e *errorImpl) FailsExecution() bool       { return e.failsExecution }
func (e *errorImpl) Details() map[string]string { return e.details }
func (e *errorImpl) Code() ErrorCode            { return e.code }
func (e *errorImpl) Component() string          { return e.component }
func (e *errorImpl) StackTrace() string         { return e.stack }

func (e *errorImpl) WithHint(hint string, a ...any) Error {
	e.hint = fmt.Sprintf(hint, a...)
	return e
}

func (e *errorImpl) WithRetryable() Error {
	e.retryable = true
	return e
}

func (e *errorImpl) WithFailsExecution() Error {
	e.failsExecution = true
	return e
}

func (e *errorImpl) WithDetails(details map[string]string) Error {
	if e.details == nil {
		e.details = make(map[string]string, len(details))
	}
	for k, v := range details {
		e.details[k] = v
	}
	return e
}

func (e *errorImpl) WithDetail(key, value string) Error {
	return e.WithDetails(map[string]string{key: value})
}

func (e *errorImpl) WithCode(code ErrorCode) Error {
	e.code = code
	return e
}

func (e *errorImpl) WithComponent(component string) Error {
	e.component = component
	return e
}

type stackTracer interface {
	StackTrace() pkgerrors.StackTrace
}

// captureStack records the stack of the caller of New or Wrap.
func captureStack() string {
	var st stackTracer
	if !errors.As(pkgerrors.New(""), &st) {
		return ""
	}
	frames := st.StackTrace()
	// drop captureStack and New/Wrap
	const skip = 2
	if len(frames) > skip {
		frames = frames[skip:]
	}
	return fmt.Sprintf("%+v", frames)
}

// compile-time check for interface implementation
var _ Error = (*errorImpl)(nil)
