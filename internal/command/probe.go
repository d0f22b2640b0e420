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

// DefaultProbeTimeout is the ceiling applied by Probe when timeout is zero.
const DefaultProbeTimeout = 10 * time.Second

// Probe runs a short-lived command such as "--version" under a hard time bound.
// Unlike Run, stdin is never connected and stderr is discarded. Probe returns
// as soon as the bound expires; a child that outlives the kill is reaped in
// the background.
func Probe(ctx context.Context, timeout time.Duration, name string, args ...string) (Result, error) {
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay / 2

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Start(); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("probe %s failed: %w", name, err)
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		result := Result{
			Stdout:   strings.TrimSpace(stdout.String()),
			ExitCode: cmd.ProcessState.ExitCode(),
		}
		switch {
		case ctx.Err() != nil:
			return result, probeStopped(ctx, name, timeout)
		case err != nil:
			return result, fmt.Errorf("probe %s failed: %w", name, err)
		}
		return result, nil
	case <-ctx.Done():
		// stdout still belongs to the Wait goroutine.
		return Result{ExitCode: -1}, probeStopped(ctx, name, timeout)
	}
}

func probeStopped(ctx context.Context, name string, timeout time.Duration) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("probe %s timed out after %s: %w", name, timeout, ctx.Err())
	}
	return fmt.Errorf("probe %s canceled: %w", name, ctx.Err())
}
