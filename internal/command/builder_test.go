package command

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCommandBuilder(t *testing.T) {
	t.Run("basic command", func(t *testing.T) {
		got, err := NewCommand("echo", "hello").Run()
		if err != nil {
			t.Errorf("Builder.Run() error = %v", err)
		}
		if got.Stdout != "hello" {
			t.Errorf("Builder.Run() output = %q, want hello", got.Stdout)
		}
	})

	t.Run("conditional args keep order", func(t *testing.T) {
		spec := NewCommand("tool", "-m", "m").
			WithArgIf(true, "--a").
			WithArgIf(false, "--b").
			WithArgIf(true, "--c").
			Spec()

		want := []string{"-m", "m", "--a", "--c"}
		if diff := cmp.Diff(want, spec.Args); diff != "" {
			t.Errorf("args mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("spec is a copy", func(t *testing.T) {
		b := NewCommand("tool", "a")
		spec := b.Spec()
		b.WithArgs("b")
		if len(spec.Args) != 1 {
			t.Errorf("Spec() args changed after builder mutation: %v", spec.Args)
		}
	})

	t.Run("with input", func(t *testing.T) {
		got, err := NewCommand("cat").WithInput("test input").Run()
		if err != nil {
			t.Errorf("Builder.Run() error = %v", err)
		}
		if !strings.Contains(got.Stdout, "test input") {
			t.Errorf("Builder.Run() output = %q, want to contain 'test input'", got.Stdout)
		}
	})

	t.Run("with custom timeout", func(t *testing.T) {
		start := time.Now()
		_, err := NewCommand("sleep", "5").
			WithTimeout(500 * time.Millisecond).
			Run()
		elapsed := time.Since(start)

		if err == nil {
			t.Error("Builder.Run() expected timeout error")
		}
		if elapsed > 3*time.Second {
			t.Errorf("Builder.Run() took %v, expected ~500ms", elapsed)
		}
	})

	t.Run("with context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewCommand("echo", "hello").
			WithContext(ctx).
			Run()
		if err == nil {
			t.Error("Builder.Run() expected error with canceled context")
		}
	})
}

func TestBuilderArgv(t *testing.T) {
	got := NewCommand("gemini", "-m", "x").WithArgs("-p", "hi").Argv()
	want := []string{"gemini", "-m", "x", "-p", "hi"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Argv() mismatch (-want +got):\n%s", diff)
	}
}
