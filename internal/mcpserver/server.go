// Package mcpserver binds the tool facade to a Model Context Protocol server.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Veraticus/gemini-mcp/internal/gemini"
	"github.com/Veraticus/gemini-mcp/internal/tools"
)

// PromptInput is the argument object of gemini_prompt.
type PromptInput struct {
	Prompt string `json:"prompt" jsonschema:"Question or problem to submit to Gemini"`
	Model  string `json:"model,omitempty" jsonschema:"Gemini model to use"`
}

// AnalyzeInput is the argument object of gemini_analyze_codebase.
type AnalyzeInput struct {
	Question string `json:"question" jsonschema:"Specific question about the codebase"`
	Path     string `json:"path,omitempty" jsonschema:"Path to the directory to analyze"`
	Model    string `json:"model,omitempty" jsonschema:"Gemini model to use"`
}

// StatusInput is the empty argument object of gemini_status.
type StatusInput struct{}

const (
	promptDescription = `Send prompt to Gemini 2.5 Pro for second opinion.

Useful for:
- Complex situations needing different perspective
- Technical problems hard to solve
- Validating approaches or solutions
- Brainstorming and generating alternatives`

	analyzeDescription = `Analyze codebase with Gemini 2.5 Pro (1M token context).

Uses --all_files to include all project files and get
global view of architecture and potential issues.

Useful for:
- Code audit and architectural review
- Pattern and anti-pattern identification
- Optimization and refactoring suggestions
- Security analysis and best practices`

	statusDescription = `Check Gemini CLI status and configuration.`
)

// Server exposes a tools.Facade over MCP.
type Server struct {
	facade  *tools.Facade
	mcp     *mcp.Server
	logger  *slog.Logger
	model   string
	version string
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithDefaultModel sets the model advertised as the schema default.
func WithDefaultModel(model string) Option {
	return func(s *Server) {
		if model != "" {
			s.model = model
		}
	}
}

// New creates a Server and registers the facade's tools.
func New(facade *tools.Facade, version string, opts ...Option) (*Server, error) {
	if facade == nil {
		return nil, fmt.Errorf("facade is required")
	}
	s := &Server{
		facade:  facade,
		logger:  slog.Default(),
		model:   gemini.DefaultModel,
		version: version,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.mcp = mcp.NewServer(&mcp.Implementation{
		Name:    tools.ServerName,
		Version: version,
	}, nil)

	if err := s.registerTools(); err != nil {
		return nil, err
	}
	return s, nil
}

// MCP returns the underlying protocol server.
func (s *Server) MCP() *mcp.Server {
	return s.mcp
}

// Run serves MCP over transport until ctx is canceled or the peer disconnects.
func (s *Server) Run(ctx context.Context, transport mcp.Transport) error {
	s.logger.InfoContext(ctx, "mcp server starting",
		slog.String("name", tools.ServerName),
		slog.String("version", s.version))
	if err := s.mcp.Run(ctx, transport); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp server stopped: %w", err)
	}
	return nil
}

// Announce probes the Gemini CLI once and logs whether it is usable.
// The server keeps running either way.
func (s *Server) Announce(ctx context.Context) gemini.Info {
	resp := s.facade.Status(ctx)
	info, ok := resp["gemini_cli"].(gemini.Info)
	if !ok {
		s.logger.ErrorContext(ctx, "error initializing Gemini CLI", slog.String("error", resp.ErrorMessage()))
		return gemini.Info{}
	}

	if info.Available {
		s.logger.InfoContext(ctx, "Gemini CLI initialized", slog.String("version", deref(info.Version)))
	} else {
		s.logger.WarnContext(ctx, "Gemini CLI unavailable",
			slog.String("error", deref(info.Error)),
			slog.String("hint", "make sure 'gemini' is installed and configured"))
	}
	return info
}

func (s *Server) registerTools() error {
	promptSchema, err := inputSchema[PromptInput](map[string]string{"model": s.model})
	if err != nil {
		return err
	}
	analyzeSchema, err := inputSchema[AnalyzeInput](map[string]string{"model": s.model, "path": tools.DefaultPath})
	if err != nil {
		return err
	}
	statusSchema, err := inputSchema[StatusInput](nil)
	if err != nil {
		return err
	}

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools.ToolPrompt,
		Description: promptDescription,
		InputSchema: promptSchema,
	}, s.handlePrompt)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools.ToolAnalyze,
		Description: analyzeDescription,
		InputSchema: analyzeSchema,
	}, s.handleAnalyze)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        tools.ToolStatus,
		Description: statusDescription,
		InputSchema: statusSchema,
	}, s.handleStatus)

	return nil
}

func (s *Server) handlePrompt(ctx context.Context, _ *mcp.CallToolRequest, in PromptInput) (*mcp.CallToolResult, any, error) {
	return s.toResult(ctx, tools.ToolPrompt, s.facade.Prompt(ctx, in.Prompt, in.Model))
}

func (s *Server) handleAnalyze(ctx context.Context, _ *mcp.CallToolRequest, in AnalyzeInput) (*mcp.CallToolResult, any, error) {
	return s.toResult(ctx, tools.ToolAnalyze, s.facade.AnalyzeDirectory(ctx, in.Question, in.Path, in.Model))
}

func (s *Server) handleStatus(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, any, error) {
	return s.toResult(ctx, tools.ToolStatus, s.facade.Status(ctx))
}

// toResult renders a facade Response as tool output. Facade failures are
// reported in-band with IsError set, never as a protocol error.
func (s *Server) toResult(ctx context.Context, tool string, resp tools.Response) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to encode tool response", slog.String("tool", tool), slog.Any("error", err))
		resp = tools.Response{"error": fmt.Sprintf("Error encoding %s response: %v", tool, err)}
		data, _ = json.Marshal(resp)
	}

	if resp.IsError() {
		s.logger.WarnContext(ctx, "tool call failed", slog.String("tool", tool), slog.String("error", resp.ErrorMessage()))
	}

	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: resp.IsError(),
	}, nil, nil
}

// inputSchema derives a JSON schema for T and attaches string defaults.
func inputSchema[T any](defaults map[string]string) (*jsonschema.Schema, error) {
	schema, err := jsonschema.For[T](nil)
	if err != nil {
		return nil, fmt.Errorf("failed to derive input schema: %w", err)
	}
	for name, value := range defaults {
		prop, ok := schema.Properties[name]
		if !ok {
			return nil, fmt.Errorf("schema has no property %q", name)
		}
		raw, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		prop.Default = raw
	}
	return schema, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
