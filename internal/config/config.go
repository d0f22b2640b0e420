// Package config provides configuration loading and validation for
// gemini-mcp, including MCP client registration files.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/spf13/pflag"
)

// Environment variables consulted by Load.
const (
	EnvConfigPath   = "GEMINI_MCP_CONFIG"
	EnvBinary       = "GEMINI_MCP_BINARY"
	EnvModel        = "GEMINI_MCP_MODEL"
	EnvProbeTimeout = "GEMINI_MCP_PROBE_TIMEOUT"
	EnvExecTimeout  = "GEMINI_MCP_EXEC_TIMEOUT"
	EnvLogLevel     = "GEMINI_MCP_LOG_LEVEL"
)

// Flag names registered by RegisterFlags.
const (
	FlagConfig       = "config"
	FlagBinary       = "binary"
	FlagModel        = "model"
	FlagProbeTimeout = "probe-timeout"
	FlagExecTimeout  = "exec-timeout"
	FlagLogLevel     = "log-level"
)

// Defaults.
const (
	DefaultBinary       = "gemini"
	DefaultModel        = "gemini-2.5-pro"
	DefaultProbeTimeout = 10 * time.Second
	DefaultExecTimeout  = 15 * time.Minute
	DefaultLogLevel     = "info"
)

// Config is the server configuration. Precedence, lowest first:
// defaults, TOML file, environment, command-line flags.
type Config struct {
	Binary       string        `toml:"binary"`
	DefaultModel string        `toml:"default_model"`
	LogLevel     string        `toml:"log_level"`
	ProbeTimeout time.Duration `toml:"probe_timeout"`
	// ExecTimeout bounds each prompt or analysis run; zero disables the bound.
	ExecTimeout time.Duration `toml:"exec_timeout"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Binary:       DefaultBinary,
		DefaultModel: DefaultModel,
		LogLevel:     DefaultLogLevel,
		ProbeTimeout: DefaultProbeTimeout,
		ExecTimeout:  DefaultExecTimeout,
	}
}

// Load builds a Config from defaults, the TOML file at path (if any) and
// the environment. An empty path falls back to $GEMINI_MCP_CONFIG.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to load config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return fmt.Errorf("unknown keys in config %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvBinary); v != "" {
		cfg.Binary = v
	}
	if v := os.Getenv(EnvModel); v != "" {
		cfg.DefaultModel = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv(EnvProbeTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvProbeTimeout, v, err)
		}
		cfg.ProbeTimeout = d
	}
	if v := os.Getenv(EnvExecTimeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvExecTimeout, v, err)
		}
		cfg.ExecTimeout = d
	}
	return nil
}

// RegisterFlags adds the configuration flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(FlagConfig, "", "path to a TOML config file (env "+EnvConfigPath+")")
	fs.String(FlagBinary, DefaultBinary, "gemini executable name or path")
	fs.String(FlagModel, DefaultModel, "model used when a tool call names none")
	fs.Duration(FlagProbeTimeout, DefaultProbeTimeout, "bound on the gemini --version probe")
	fs.Duration(FlagExecTimeout, DefaultExecTimeout, "bound on each gemini run, 0 for none")
	fs.String(FlagLogLevel, DefaultLogLevel, "log level: debug, info, warn, error")
}

// LoadWithFlags loads the config named by the --config flag and then applies
// every flag the user set explicitly.
func LoadWithFlags(fs *pflag.FlagSet) (Config, error) {
	path, err := fs.GetString(FlagConfig)
	if err != nil {
		return Config{}, err
	}
	cfg, err := Load(path)
	if err != nil {
		return Config{}, err
	}
	if err := ApplyFlags(fs, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyFlags copies explicitly set flags into cfg.
func ApplyFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	if fs.Changed(FlagBinary) {
		if cfg.Binary, err = fs.GetString(FlagBinary); err != nil {
			return err
		}
	}
	if fs.Changed(FlagModel) {
		if cfg.DefaultModel, err = fs.GetString(FlagModel); err != nil {
			return err
		}
	}
	if fs.Changed(FlagLogLevel) {
		if cfg.LogLevel, err = fs.GetString(FlagLogLevel); err != nil {
			return err
		}
	}
	if fs.Changed(FlagProbeTimeout) {
		if cfg.ProbeTimeout, err = fs.GetDuration(FlagProbeTimeout); err != nil {
			return err
		}
	}
	if fs.Changed(FlagExecTimeout) {
		if cfg.ExecTimeout, err = fs.GetDuration(FlagExecTimeout); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks that cfg is usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Binary) == "" {
		return fmt.Errorf("binary cannot be empty")
	}
	if strings.TrimSpace(c.DefaultModel) == "" {
		return fmt.Errorf("default model cannot be empty")
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.ExecTimeout < 0 {
		return fmt.Errorf("exec timeout cannot be negative, got %s", c.ExecTimeout)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.LogLevel)
	}
	return nil
}
