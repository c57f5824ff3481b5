// Package validate holds small guard helpers that return a ValidationError when
// a condition does not hold. They are meant to be combined with errors.Join:
//
//	err := errors.Join(
//		validate.NotNil(params.Registry, "registry cannot be nil"),
//		validate.IsGreaterThanZero(params.MaxRunning, "max running jobs must be greater than zero"),
//	)
package validate

import (
	"reflect"
	"strings"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

// NotNil checks that value is not nil, including typed nil pointers, maps,
// slices, channels, funcs and interfaces.
func NotNil(value any, msg string, args ...any) error {
	if value == nil {
		return createError(msg, args...)
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		if v.IsNil() {
			return createError(msg, args...)
		}
	}
	return nil
}

// NotBlank checks that s contains something other than whitespace.
func NotBlank(s string, msg string, args ...any) error {
	if strings.TrimSpace(s) == "" {
		return createError(msg, args...)
	}
	return nil
}

// NotEmpty checks that the slice has at least one element.
func NotEmpty[T any](s []T, msg string, args ...any) error {
	if len(s) == 0 {
		return createError(msg, args...)
	}
	return nil
}

// NoBlankElements checks that no element of s is blank.
func NoBlankElements(s []string, msg string, args ...any) error {
	for _, e := range s {
		if strings.TrimSpace(e) == "" {
			return createError(msg, args...)
		}
	}
	return nil
}

// OneOf checks that value is one of allowed.
func OneOf[T comparable](value T, allowed []T, msg string, args ...any) error {
	for _, a := range allowed {
		if a == value {
			return nil
		}
	}
	return createError(msg, args...)
}

func createError(msg string, args ...any) error {
	return genieerrors.New(msg, args...).WithCode(genieerrors.ValidationError)
}
