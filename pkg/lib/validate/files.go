package validate

import "os"

// FileExists checks if the file at the given path exists.
func FileExists(path string, msg string, args ...any) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return createError(msg, args...)
	}
	return nil
}
