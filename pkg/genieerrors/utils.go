package genieerrors

import "errors"

// IsError reports whether err, or any error it wraps, is an Error.
func IsError(err error) bool {
	var e Error
	return errors.As(err, &e)
}

// IsErrorWithCode reports whether err carries the given code anywhere in its chain.
func IsErrorWithCode(err error, code ErrorCode) bool {
	for err != nil {
		if e, ok := err.(Error); ok && e.Code() == code {
			return true
		}
		if joined, ok := err.(interface{ Unwrap() []error }); ok {
			for _, inner := range joined.Unwrap() {
				if IsErrorWithCode(inner, code) {
					return true
				}
			}
			return false
		}
		err = errors.Unwrap(err)
	}
	return false
}

// CodeOf returns the outermost code found in err's chain, or the empty code.
func CodeOf(err error) ErrorCode {
	for err != nil {
		if e, ok := err.(Error); ok && e.Code() != "" {
			return e.Code()
		}
		err = errors.Unwrap(err)
	}
	return ""
}

// IsRetryable reports whether the outermost Error in the chain is marked retryable.
func IsRetryable(err error) bool {
	var e Error
	if errors.As(err, &e) {
		return e.Retryable()
	}
	return false
}
