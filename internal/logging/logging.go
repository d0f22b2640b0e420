// Package logging configures the process-wide slog logger.
//
// stdout carries the MCP stdio stream, so logs always go to stderr. The
// handler is text when stderr is a terminal and JSON otherwise, which is
// what MCP hosts capture.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// EnvDebug forces debug logging when set to "1".
const EnvDebug = "DEBUG_GEMINI_MCP"

// Format selects the slog handler.
type Format int

const (
	// FormatAuto picks text for terminals and JSON otherwise.
	FormatAuto Format = iota
	// FormatText always uses slog.TextHandler.
	FormatText
	// FormatJSON always uses slog.JSONHandler.
	FormatJSON
)

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New builds a logger writing to w at the named level.
func New(w io.Writer, level string, format Format) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	if os.Getenv(EnvDebug) == "1" {
		lvl = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if format == FormatAuto {
		format = FormatJSON
		if isTerminal(w) {
			format = FormatText
		}
	}

	var handler slog.Handler
	switch format {
	case FormatText:
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}
	return slog.New(handler), nil
}

// Setup builds a stderr logger and installs it as the slog default.
func Setup(level string) (*slog.Logger, error) {
	logger, err := New(os.Stderr, level, FormatAuto)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(logger)
	return logger, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
