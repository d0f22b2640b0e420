// Package gemini wraps the Gemini command-line tool.
package gemini

import (
	"context"
	"time"

	"github.com/Veraticus/gemini-mcp/internal/command"
)

// Runner abstracts process execution so tests can substitute a fake.
type Runner interface {
	// Run executes a command and waits for it to exit.
	Run(ctx context.Context, spec command.Spec) (command.Result, error)
	// Probe runs a short command under a hard time bound.
	Probe(ctx context.Context, timeout time.Duration, name string, args ...string) (command.Result, error)
}

// CLI is the surface the tool facade needs from a Gemini client.
type CLI interface {
	// Execute sends a prompt to Gemini and returns its reply.
	Execute(ctx context.Context, prompt, model string, input *string, opts Options) (string, error)
	// AnalyzeDirectory asks a question about a whole directory tree.
	AnalyzeDirectory(ctx context.Context, question, path, model string) (string, error)
	// Info probes the binary for availability and version.
	Info(ctx context.Context) Info
}

// execRunner is the production Runner backed by the command package.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, spec command.Spec) (command.Result, error) {
	return command.Run(ctx, spec)
}

func (execRunner) Probe(ctx context.Context, timeout time.Duration, name string, args ...string) (command.Result, error) {
	return command.Probe(ctx, timeout, name, args...)
}
