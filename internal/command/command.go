package command

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// waitDelay bounds how long Wait blocks on inherited pipes after the
// child has been killed.
const waitDelay = 2 * time.Second

// Spec describes a single external process invocation.
type Spec struct {
	// Input is written to the process's stdin and then closed.
	// A nil Input leaves stdin unconnected.
	Input   *string
	Name    string
	Dir     string
	Args    []string
	Timeout time.Duration
}

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// ExitError is returned when a process ran to completion with a non-zero status.
type ExitError struct {
	Name     string
	Stderr   string
	Args     []string
	ExitCode int
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	msg := fmt.Sprintf("command failed: %s (exit code %d)", e.Name, e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

// IsExitError reports whether err is, or wraps, an *ExitError.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// ErrNotFound is wrapped when the executable cannot be located.
var ErrNotFound = exec.ErrNotFound

// Run executes spec and waits for it to exit.
// On a non-zero exit the returned Result is still populated alongside an *ExitError.
func Run(ctx context.Context, spec Spec) (Result, error) {
	if spec.Name == "" {
		return Result{}, fmt.Errorf("command name cannot be empty")
	}

	if spec.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, spec.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, spec.Name, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.WaitDelay = waitDelay
	if spec.Input != nil {
		cmd.Stdin = strings.NewReader(*spec.Input)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: strings.TrimSpace(stdout.String()),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if cmd.ProcessState != nil {
		result.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err == nil {
		return result, nil
	}
	return result, mapError(ctx, spec, result, err)
}

func mapError(ctx context.Context, spec Spec, result Result, err error) error {
	// A killed process also reports an ExitError, so check the context first.
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("command %s interrupted: %w", spec.Name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{
			Name:     spec.Name,
			Args:     spec.Args,
			ExitCode: exitErr.ExitCode(),
			Stderr:   result.Stderr,
		}
	}

	return fmt.Errorf("command failed: %s: %w", spec.Name, err)
}
