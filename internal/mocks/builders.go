package mocks

import (
	"context"
	"time"

	"github.com/Veraticus/gemini-mcp/internal/command"
)

// Succeed returns a RunFunc that reports a zero exit with stdout.
func Succeed(stdout string) func(context.Context, command.Spec) (command.Result, error) {
	return func(context.Context, command.Spec) (command.Result, error) {
		return command.Result{Stdout: stdout}, nil
	}
}

// Fail returns a RunFunc that reports a non-zero exit with stderr.
func Fail(exitCode int, stderr string) func(context.Context, command.Spec) (command.Result, error) {
	return func(_ context.Context, spec command.Spec) (command.Result, error) {
		return command.Result{Stderr: stderr, ExitCode: exitCode}, &command.ExitError{
			Name:     spec.Name,
			Args:     spec.Args,
			ExitCode: exitCode,
			Stderr:   stderr,
		}
	}
}

// ProbeVersion returns a ProbeFunc that reports version on stdout.
func ProbeVersion(version string) func(context.Context, time.Duration, string, ...string) (command.Result, error) {
	return func(context.Context, time.Duration, string, ...string) (command.Result, error) {
		return command.Result{Stdout: version}, nil
	}
}

// ProbeHang returns a ProbeFunc that behaves like a binary that never
// answers: it blocks until the timeout elapses.
func ProbeHang() func(context.Context, time.Duration, string, ...string) (command.Result, error) {
	return func(ctx context.Context, timeout time.Duration, name string, _ ...string) (command.Result, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		<-ctx.Done()
		return command.Result{}, ctx.Err()
	}
}
