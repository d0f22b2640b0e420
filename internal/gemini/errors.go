package gemini

import (
	"errors"
	"fmt"
)

// ValidationError reports an empty or malformed required input.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return e.Message
}

// ExternalToolFailure is returned when the Gemini process exits non-zero.
type ExternalToolFailure struct {
	Stderr   string
	ExitCode int
}

// Error implements the error interface.
func (e *ExternalToolFailure) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("Gemini CLI failed: exit status %d", e.ExitCode)
	}
	return "Gemini CLI failed: " + e.Stderr
}

// NotFoundError is returned when an analysis path does not exist.
type NotFoundError struct {
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Directory '%s' does not exist", e.Path)
}

// NotADirectoryError is returned when an analysis path is not a directory.
type NotADirectoryError struct {
	Path string
}

// Error implements the error interface.
func (e *NotADirectoryError) Error() string {
	return fmt.Sprintf("'%s' is not a directory", e.Path)
}

// IsExternalToolFailure checks if an error is an external tool failure.
func IsExternalToolFailure(err error) bool {
	var target *ExternalToolFailure
	return errors.As(err, &target)
}

// IsNotFound checks if an error is a missing-path error.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsNotADirectory checks if an error is a not-a-directory error.
func IsNotADirectory(err error) bool {
	var target *NotADirectoryError
	return errors.As(err, &target)
}
