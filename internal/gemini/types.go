package gemini

import "time"

const (
	// DefaultBinary is the executable name looked up on PATH.
	DefaultBinary = "gemini"
	// DefaultModel is used when a caller does not name a model.
	DefaultModel = "gemini-2.5-pro"
	// DefaultProbeTimeout bounds the version probe.
	DefaultProbeTimeout = 10 * time.Second

	// unavailableMessage is reported when the probe cannot confirm the binary.
	unavailableMessage = "Gemini CLI is not available or configured"
)

// Config holds configuration for Gemini CLI execution.
type Config struct {
	Binary       string
	DefaultModel string
	// ExecTimeout bounds prompt and analysis runs. Zero means unbounded.
	ExecTimeout  time.Duration
	ProbeTimeout time.Duration
}

// Options are the optional flags of a single Execute call.
type Options struct {
	// Dir overrides the working directory. Empty keeps the caller's.
	Dir             string
	Debug           bool
	AllFiles        bool
	ShowMemoryUsage bool
}

// Info is the result of a best-effort availability probe.
type Info struct {
	Version   *string `json:"version"`
	Error     *string `json:"error"`
	Available bool    `json:"available"`
}
