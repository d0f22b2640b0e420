package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/gemini-mcp/internal/gemini"
)

// Tool names as registered with the protocol host.
const (
	ToolPrompt  = "gemini_prompt"
	ToolAnalyze = "gemini_analyze_codebase"
	ToolStatus  = "gemini_status"
)

// ServerName identifies this server to clients and in status reports.
const ServerName = "gemini-cli"

// ServerDescription is the one-line summary reported by Status.
const ServerDescription = "MCP Gemini CLI - Get a second AI opinion"

// DefaultPath is the analysis target when the caller names none.
const DefaultPath = "."

// Names returns the exposed operation names in registration order.
func Names() []string {
	return []string{ToolPrompt, ToolAnalyze, ToolStatus}
}

// Facade implements the three Gemini operations on top of a gemini.CLI.
type Facade struct {
	cli          gemini.CLI
	logger       *slog.Logger
	version      string
	defaultModel string
}

// Option configures a Facade.
type Option func(*Facade) error

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Facade) error {
		if logger == nil {
			return fmt.Errorf("invalid option: logger cannot be nil")
		}
		f.logger = logger
		return nil
	}
}

// WithVersion sets the server version reported by Status.
func WithVersion(version string) Option {
	return func(f *Facade) error {
		f.version = version
		return nil
	}
}

// WithDefaultModel sets the model used when a caller leaves it empty.
func WithDefaultModel(model string) Option {
	return func(f *Facade) error {
		if strings.TrimSpace(model) == "" {
			return fmt.Errorf("invalid option: default model cannot be empty")
		}
		f.defaultModel = model
		return nil
	}
}

// NewFacade creates a Facade delegating to cli.
func NewFacade(cli gemini.CLI, opts ...Option) (*Facade, error) {
	if cli == nil {
		return nil, fmt.Errorf("gemini CLI is required")
	}
	f := &Facade{
		cli:          cli,
		logger:       slog.Default(),
		version:      "dev",
		defaultModel: gemini.DefaultModel,
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Prompt sends prompt to Gemini and wraps the reply.
func (f *Facade) Prompt(ctx context.Context, prompt, model string) (resp Response) {
	defer f.contain(ctx, contextPrompt, &resp)

	if strings.TrimSpace(prompt) == "" {
		return f.reject(ctx, &gemini.ValidationError{Field: "prompt", Message: "Prompt cannot be empty"},
			contextPromptValidation)
	}
	model = f.modelOrDefault(model)

	f.logger.InfoContext(ctx, "sending prompt to gemini", slog.String("model", model))

	reply, err := f.cli.Execute(ctx, prompt, model, nil, gemini.Options{})
	if err != nil {
		return errorResponse(err, contextPrompt)
	}

	return Response{
		"success":  true,
		"model":    model,
		"prompt":   prompt,
		"response": reply,
		"metadata": map[string]any{
			"tool":       ToolPrompt,
			"model_info": "Gemini 2.5 Pro - Latest Google model",
			"use_case":   "Second AI opinion for complex problems",
		},
	}
}

// AnalyzeDirectory asks question about the tree rooted at path.
func (f *Facade) AnalyzeDirectory(ctx context.Context, question, path, model string) (resp Response) {
	defer f.contain(ctx, contextAnalyze, &resp)

	if strings.TrimSpace(question) == "" {
		return f.reject(ctx, &gemini.ValidationError{Field: "question", Message: "Question cannot be empty"},
			contextQuestionValidation)
	}
	if path == "" {
		path = DefaultPath
	}
	model = f.modelOrDefault(model)

	dir, err := gemini.ResolveDirectory(path)
	if err != nil {
		return errorResponse(err, contextAnalyze)
	}

	f.logger.InfoContext(ctx, "analyzing codebase with gemini",
		slog.String("path", dir),
		slog.String("model", model))

	analysis, err := f.cli.AnalyzeDirectory(ctx, question, dir, model)
	if err != nil {
		return errorResponse(err, contextAnalyze)
	}

	return Response{
		"success":  true,
		"model":    model,
		"question": question,
		"path":     dir,
		"analysis": analysis,
		"metadata": map[string]any{
			"tool":       ToolAnalyze,
			"model_info": "Gemini 2.5 Pro - 1M tokens context",
			"use_case":   "Complete codebase analysis",
			"features":   []string{"--all_files", "Global architecture", "Recommendations"},
		},
	}
}

// Status reports Gemini CLI availability and this server's identity.
// The probe blocks for at most its configured bound.
func (f *Facade) Status(ctx context.Context) (resp Response) {
	defer f.contain(ctx, contextStatus, &resp)

	info := f.cli.Info(ctx)

	return Response{
		"success":    true,
		"gemini_cli": info,
		"mcp_server": map[string]any{
			"name":            ServerName,
			"version":         f.version,
			"tools_available": Names(),
			"description":     ServerDescription,
		},
	}
}

// reject logs a failed input check and renders it as an error response.
func (f *Facade) reject(ctx context.Context, err error, label string) Response {
	var verr *gemini.ValidationError
	if errors.As(err, &verr) {
		f.logger.WarnContext(ctx, "rejected tool input", slog.String("field", verr.Field))
	}
	return errorResponse(err, label)
}

func (f *Facade) modelOrDefault(model string) string {
	if strings.TrimSpace(model) == "" {
		return f.defaultModel
	}
	return model
}

// contain converts a panic in a delegate into an error response.
func (f *Facade) contain(ctx context.Context, label string, resp *Response) {
	r := recover()
	if r == nil {
		return
	}
	f.logger.ErrorContext(ctx, "recovered from panic in tool", slog.String("context", label),
		slog.Any("panic", r))
	*resp = errorResponse(fmt.Errorf("%v", r), label)
}
