// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/Veraticus/gemini-mcp/internal/command"
	"github.com/Veraticus/gemini-mcp/internal/gemini"
)

// Compile-time checks to ensure mocks implement their interfaces.
var (
	_ gemini.Runner = (*MockRunner)(nil)
	_ gemini.CLI    = (*MockCLI)(nil)
)

// MockRunner is a test implementation of gemini.Runner that never spawns a process.
type MockRunner struct {
	// RunFunc decides the outcome of Run. Defaults to an empty success.
	RunFunc func(ctx context.Context, spec command.Spec) (command.Result, error)
	// ProbeFunc decides the outcome of Probe. Defaults to an empty success.
	ProbeFunc func(ctx context.Context, timeout time.Duration, name string, args ...string) (command.Result, error)

	runs   []command.Spec
	probes []ProbeCall
	mu     sync.Mutex
}

// ProbeCall records a call to Probe.
type ProbeCall struct {
	Name    string
	Args    []string
	Timeout time.Duration
}

// NewMockRunner creates a runner whose Run returns fn's outcome.
func NewMockRunner(fn func(ctx context.Context, spec command.Spec) (command.Result, error)) *MockRunner {
	return &MockRunner{RunFunc: fn}
}

// Run implements gemini.Runner.
func (m *MockRunner) Run(ctx context.Context, spec command.Spec) (command.Result, error) {
	m.mu.Lock()
	m.runs = append(m.runs, spec)
	fn := m.RunFunc
	m.mu.Unlock()

	if fn == nil {
		return command.Result{}, nil
	}
	return fn(ctx, spec)
}

// Probe implements gemini.Runner.
func (m *MockRunner) Probe(
	ctx context.Context,
	timeout time.Duration,
	name string,
	args ...string,
) (command.Result, error) {
	m.mu.Lock()
	m.probes = append(m.probes, ProbeCall{Name: name, Args: args, Timeout: timeout})
	fn := m.ProbeFunc
	m.mu.Unlock()

	if fn == nil {
		return command.Result{}, nil
	}
	return fn(ctx, timeout, name, args...)
}

// Runs returns all recorded Run specs.
func (m *MockRunner) Runs() []command.Spec {
	m.mu.Lock()
	defer m.mu.Unlock()
	runs := make([]command.Spec, len(m.runs))
	copy(runs, m.runs)
	return runs
}

// Probes returns all recorded Probe calls.
func (m *MockRunner) Probes() []ProbeCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	probes := make([]ProbeCall, len(m.probes))
	copy(probes, m.probes)
	return probes
}

// MockCLI is a test implementation of gemini.CLI.
type MockCLI struct {
	ExecuteFunc func(ctx context.Context, prompt, model string, input *string, opts gemini.Options) (string, error)
	AnalyzeFunc func(ctx context.Context, question, path, model string) (string, error)
	InfoFunc    func(ctx context.Context) gemini.Info

	calls []CLICall
	mu    sync.Mutex
}

// CLICall records a call to MockCLI.
type CLICall struct {
	Method string
	Text   string
	Model  string
	Path   string
}

// Execute implements gemini.CLI.
func (m *MockCLI) Execute(
	ctx context.Context,
	prompt, model string,
	input *string,
	opts gemini.Options,
) (string, error) {
	m.record(CLICall{Method: "Execute", Text: prompt, Model: model, Path: opts.Dir})
	if m.ExecuteFunc == nil {
		return "Mock response for: " + prompt, nil
	}
	return m.ExecuteFunc(ctx, prompt, model, input, opts)
}

// AnalyzeDirectory implements gemini.CLI.
func (m *MockCLI) AnalyzeDirectory(ctx context.Context, question, path, model string) (string, error) {
	m.record(CLICall{Method: "AnalyzeDirectory", Text: question, Model: model, Path: path})
	if m.AnalyzeFunc == nil {
		return "Mock analysis for: " + question, nil
	}
	return m.AnalyzeFunc(ctx, question, path, model)
}

// Info implements gemini.CLI.
func (m *MockCLI) Info(ctx context.Context) gemini.Info {
	m.record(CLICall{Method: "Info"})
	if m.InfoFunc == nil {
		version := "0.0.0-mock"
		return gemini.Info{Available: true, Version: &version}
	}
	return m.InfoFunc(ctx)
}

// Calls returns all recorded calls.
func (m *MockCLI) Calls() []CLICall {
	m.mu.Lock()
	defer m.mu.Unlock()
	calls := make([]CLICall, len(m.calls))
	copy(calls, m.calls)
	return calls
}

func (m *MockCLI) record(call CLICall) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}
