package command

import (
	"context"
	"errors"
	"testing"
	"time"
)

// probeSlack is the scheduling allowance on top of a probe bound.
const probeSlack = 150 * time.Millisecond

func TestProbe(t *testing.T) {
	t.Run("returns stdout on success", func(t *testing.T) {
		got, err := Probe(context.Background(), time.Second, "echo", "0.1.5")
		if err != nil {
			t.Fatalf("Probe() unexpected error: %v", err)
		}
		if got.Stdout != "0.1.5" {
			t.Errorf("Stdout = %q, want 0.1.5", got.Stdout)
		}
	})

	t.Run("bounded by timeout", func(t *testing.T) {
		start := time.Now()
		_, err := Probe(context.Background(), 200*time.Millisecond, "sleep", "30")
		elapsed := time.Since(start)

		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Probe() error = %v, want deadline exceeded", err)
		}
		if elapsed > 200*time.Millisecond+probeSlack {
			t.Errorf("Probe() took %v, expected ~200ms", elapsed)
		}
	})

	t.Run("grandchild holding stdout does not extend the bound", func(t *testing.T) {
		start := time.Now()
		_, err := Probe(context.Background(), 200*time.Millisecond, "sh", "-c", "sleep 30; echo late")
		elapsed := time.Since(start)

		if !errors.Is(err, context.DeadlineExceeded) {
			t.Errorf("Probe() error = %v, want deadline exceeded", err)
		}
		if elapsed > 200*time.Millisecond+probeSlack {
			t.Errorf("Probe() took %v, expected ~200ms", elapsed)
		}
	})

	t.Run("canceled parent context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		time.AfterFunc(50*time.Millisecond, cancel)

		start := time.Now()
		_, err := Probe(ctx, 5*time.Second, "sleep", "30")
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Probe() error = %v, want canceled", err)
		}
		if elapsed := time.Since(start); elapsed > 50*time.Millisecond+probeSlack {
			t.Errorf("Probe() took %v after cancel", elapsed)
		}
	})

	t.Run("missing binary", func(t *testing.T) {
		_, err := Probe(context.Background(), time.Second, "nonexistentcommand123", "--version")
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("Probe() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("non-zero exit", func(t *testing.T) {
		got, err := Probe(context.Background(), time.Second, "sh", "-c", "exit 2")
		if err == nil {
			t.Fatal("Probe() expected error")
		}
		if got.ExitCode != 2 {
			t.Errorf("ExitCode = %d, want 2", got.ExitCode)
		}
	})
}
