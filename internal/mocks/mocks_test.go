package mocks_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Veraticus/gemini-mcp/internal/command"
	"github.com/Veraticus/gemini-mcp/internal/mocks"
)

func TestMockRunnerRecordsRuns(t *testing.T) {
	runner := mocks.NewMockRunner(mocks.Succeed("ok"))

	res, err := runner.Run(context.Background(), command.Spec{Name: "gemini", Args: []string{"-p", "hi"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Stdout != "ok" {
		t.Errorf("Stdout = %q, want ok", res.Stdout)
	}

	runs := runner.Runs()
	if len(runs) != 1 {
		t.Fatalf("expected 1 run, got %d", len(runs))
	}
	if runs[0].Name != "gemini" {
		t.Errorf("Name = %q, want gemini", runs[0].Name)
	}
}

func TestMockRunnerDefaults(t *testing.T) {
	runner := &mocks.MockRunner{}

	if _, err := runner.Run(context.Background(), command.Spec{Name: "x"}); err != nil {
		t.Errorf("Run() default should succeed, got %v", err)
	}
	if _, err := runner.Probe(context.Background(), time.Second, "x", "--version"); err != nil {
		t.Errorf("Probe() default should succeed, got %v", err)
	}
	if got := len(runner.Probes()); got != 1 {
		t.Errorf("expected 1 probe, got %d", got)
	}
}

func TestMockCLIDefaults(t *testing.T) {
	cli := &mocks.MockCLI{}
	ctx := context.Background()

	if _, err := cli.AnalyzeDirectory(ctx, "why?", ".", "m"); err != nil {
		t.Errorf("AnalyzeDirectory() unexpected error: %v", err)
	}
	if info := cli.Info(ctx); !info.Available {
		t.Error("Info() default should be available")
	}

	calls := cli.Calls()
	if len(calls) != 2 || calls[0].Method != "AnalyzeDirectory" || calls[1].Method != "Info" {
		t.Errorf("unexpected calls: %+v", calls)
	}
}

func TestFail(t *testing.T) {
	runner := mocks.NewMockRunner(mocks.Fail(1, "boom"))

	res, err := runner.Run(context.Background(), command.Spec{Name: "gemini"})
	var exitErr *command.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("expected *command.ExitError, got %T", err)
	}
	if exitErr.Stderr != "boom" || res.ExitCode != 1 {
		t.Errorf("unexpected failure: %+v / %+v", exitErr, res)
	}
}
