package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/pflag"

	"github.com/Veraticus/gemini-mcp/internal/config"
	"github.com/Veraticus/gemini-mcp/internal/gemini"
	"github.com/Veraticus/gemini-mcp/internal/logging"
	"github.com/Veraticus/gemini-mcp/internal/mcpserver"
	"github.com/Veraticus/gemini-mcp/internal/tools"
)

// components holds all initialized components.
type components struct {
	logger *slog.Logger
	client *gemini.Client
	facade *tools.Facade
	server *mcpserver.Server
	config config.Config
}

// initializeComponents builds everything from the command's flags.
// There are no package-level singletons; each command gets its own set.
func initializeComponents(flags *pflag.FlagSet) (*components, error) {
	cfg, err := config.LoadWithFlags(flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := logging.Setup(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	client, err := gemini.NewClient(gemini.Config{
		Binary:       cfg.Binary,
		DefaultModel: cfg.DefaultModel,
		ExecTimeout:  cfg.ExecTimeout,
		ProbeTimeout: cfg.ProbeTimeout,
	}, gemini.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	facade, err := tools.NewFacade(client,
		tools.WithLogger(logger),
		tools.WithVersion(version),
		tools.WithDefaultModel(cfg.DefaultModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool facade: %w", err)
	}

	server, err := mcpserver.New(facade, version,
		mcpserver.WithLogger(logger),
		mcpserver.WithDefaultModel(cfg.DefaultModel),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create MCP server: %w", err)
	}

	return &components{
		config: cfg,
		logger: logger,
		client: client,
		facade: facade,
		server: server,
	}, nil
}
