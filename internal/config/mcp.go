package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	// dirPermissions is used for directory creation (rwxr-x---).
	dirPermissions = 0750
	// filePermissions is used for config files (rw-------).
	filePermissions = 0600
)

// MCPConfig is the client-side registration file (.mcp.json) that MCP hosts
// read to learn how to launch stdio servers.
type MCPConfig struct {
	MCPServers map[string]ServerConfig `json:"mcpServers"`
}

// ServerConfig describes how a host launches one stdio server.
type ServerConfig struct {
	Env     map[string]string `json:"env,omitempty"`
	Command string            `json:"command"`
	Args    []string          `json:"args,omitempty"`
}

// GenerateMCPConfig creates a registration entry named name that launches
// command with args.
func GenerateMCPConfig(name, command string, args []string, env map[string]string) MCPConfig {
	return MCPConfig{
		MCPServers: map[string]ServerConfig{
			name: {
				Command: command,
				Args:    args,
				Env:     env,
			},
		},
	}
}

// MarshalMCPConfig renders the configuration as indented JSON.
func MarshalMCPConfig(config MCPConfig) ([]byte, error) {
	if err := ValidateMCPConfig(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteMCPConfig writes the MCP configuration to a file.
// It creates parent directories if they don't exist.
func WriteMCPConfig(config MCPConfig, path string) error {
	data, err := MarshalMCPConfig(config)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPermissions); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if writeErr := os.WriteFile(path, data, filePermissions); writeErr != nil {
		return fmt.Errorf("failed to write file: %w", writeErr)
	}

	return nil
}

// LoadMCPConfig loads an MCP configuration from a file.
func LoadMCPConfig(path string) (MCPConfig, error) {
	var config MCPConfig

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return config, fmt.Errorf("failed to read config file: %w", err)
	}

	if unmarshalErr := json.Unmarshal(data, &config); unmarshalErr != nil {
		return config, fmt.Errorf("failed to parse config: %w", unmarshalErr)
	}

	if validateErr := ValidateMCPConfig(config); validateErr != nil {
		return config, fmt.Errorf("loaded config is invalid: %w", validateErr)
	}

	return config, nil
}

// MergeMCPConfig adds or replaces the servers of add in base.
func MergeMCPConfig(base, add MCPConfig) MCPConfig {
	merged := MCPConfig{MCPServers: make(map[string]ServerConfig, len(base.MCPServers)+len(add.MCPServers))}
	for name, server := range base.MCPServers {
		merged.MCPServers[name] = server
	}
	for name, server := range add.MCPServers {
		merged.MCPServers[name] = server
	}
	return merged
}

// ValidateMCPConfig validates that an MCP configuration is well-formed.
func ValidateMCPConfig(config MCPConfig) error {
	if len(config.MCPServers) == 0 {
		return fmt.Errorf("no MCP servers configured")
	}

	for name, server := range config.MCPServers {
		if name == "" {
			return fmt.Errorf("server name cannot be empty")
		}
		if server.Command == "" {
			return fmt.Errorf("server %s: command is required", name)
		}
	}

	return nil
}
