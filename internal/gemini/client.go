package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"al.essio.dev/pkg/shellescape"

	"github.com/Veraticus/gemini-mcp/internal/command"
)

// Flags appended by Execute, in this order, when enabled.
const (
	flagDebug           = "--debug"
	flagAllFiles        = "--all_files"
	flagShowMemoryUsage = "--show_memory_usage"
	flagVersion         = "--version"
)

// loggedArgs is how many argv entries are logged; the prompt itself is not.
const loggedArgs = 4

var _ CLI = (*Client)(nil)

// Client runs the Gemini CLI.
type Client struct {
	runner Runner
	logger *slog.Logger
	config Config
}

// ClientOption configures a Client.
type ClientOption func(*Client) error

// WithRunner replaces the process runner.
func WithRunner(runner Runner) ClientOption {
	return func(c *Client) error {
		if runner == nil {
			return fmt.Errorf("invalid option: runner cannot be nil")
		}
		c.runner = runner
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) error {
		if logger == nil {
			return fmt.Errorf("invalid option: logger cannot be nil")
		}
		c.logger = logger
		return nil
	}
}

// NewClient creates a new Gemini CLI client.
func NewClient(config Config, opts ...ClientOption) (*Client, error) {
	if config.Binary == "" {
		config.Binary = DefaultBinary
	}
	if config.DefaultModel == "" {
		config.DefaultModel = DefaultModel
	}
	if config.ProbeTimeout <= 0 {
		config.ProbeTimeout = DefaultProbeTimeout
	}
	if config.ExecTimeout < 0 {
		return nil, fmt.Errorf("exec timeout cannot be negative")
	}

	c := &Client{
		config: config,
		runner: execRunner{},
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Config returns the effective configuration after defaults.
func (c *Client) Config() Config {
	return c.config
}

// BuildArgs assembles the argument vector for a prompt, program name first.
func BuildArgs(binary, model, prompt string, opts Options) []string {
	return command.NewCommand(binary).
		WithArgs("-m", model, "-p", prompt).
		WithArgIf(opts.Debug, flagDebug).
		WithArgIf(opts.AllFiles, flagAllFiles).
		WithArgIf(opts.ShowMemoryUsage, flagShowMemoryUsage).
		Argv()
}

// Execute runs one Gemini process for prompt and returns its stdout.
// The prompt must already be validated as non-empty.
func (c *Client) Execute(ctx context.Context, prompt, model string, input *string, opts Options) (string, error) {
	if model == "" {
		model = c.config.DefaultModel
	}

	argv := BuildArgs(c.config.Binary, model, prompt, opts)
	builder := command.NewCommand(argv[0], argv[1:]...).
		WithDir(opts.Dir).
		WithTimeout(c.config.ExecTimeout)
	if input != nil {
		builder.WithInput(*input)
	}

	c.logger.InfoContext(ctx, "executing gemini command",
		slog.String("command", shellescape.QuoteCommand(argv[:loggedArgs])+" ..."),
		slog.String("dir", opts.Dir))

	result, err := c.runner.Run(ctx, builder.Spec())
	if err != nil {
		failure := mapRunError(result, err)
		c.logger.ErrorContext(ctx, "gemini command failed", slog.Any("error", failure))
		return "", failure
	}

	c.logger.InfoContext(ctx, "gemini response received",
		slog.Int("characters", len(result.Stdout)))
	return result.Stdout, nil
}

func mapRunError(result command.Result, err error) error {
	var exitErr *command.ExitError
	if errors.As(err, &exitErr) {
		stderr := exitErr.Stderr
		if stderr == "" {
			stderr = result.Stderr
		}
		return &ExternalToolFailure{ExitCode: exitErr.ExitCode, Stderr: stderr}
	}
	return fmt.Errorf("failed to run gemini CLI: %w", err)
}

// Info probes the binary with --version. It never fails; problems are
// reported through the returned Info.
func (c *Client) Info(ctx context.Context) Info {
	result, err := c.runner.Probe(ctx, c.config.ProbeTimeout, c.config.Binary, flagVersion)
	if err != nil {
		c.logger.DebugContext(ctx, "gemini probe failed", slog.Any("error", err))
		msg := unavailableMessage
		return Info{Error: &msg}
	}

	version := result.Stdout
	return Info{Available: true, Version: &version}
}
