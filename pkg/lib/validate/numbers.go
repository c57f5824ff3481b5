package validate

import "golang.org/x/exp/constraints"

// Number covers every integer and float type.
type Number interface {
	constraints.Integer | constraints.Float
}

// IsGreaterThanZero checks if the provided numeric value (of type T) is greater than zero.
func IsGreaterThanZero[T Number](value T, msg string, args ...any) error {
	if value <= 0 {
		return createError(msg, args...)
	}
	return nil
}

// IsGreaterOrEqualToZero checks if the provided numeric value (of type T) is greater or equal to zero.
func IsGreaterOrEqualToZero[T Number](value T, msg string, args ...any) error {
	if value < 0 {
		return createError(msg, args...)
	}
	return nil
}

// IsLessOrEqual checks that value does not exceed limit.
func IsLessOrEqual[T Number](value, limit T, msg string, args ...any) error {
	if value > limit {
		return createError(msg, args...)
	}
	return nil
}
