package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		want    slog.Level
		wantErr bool
	}{
		{name: "debug", want: slog.LevelDebug},
		{name: "INFO", want: slog.LevelInfo},
		{name: "", want: slog.LevelInfo},
		{name: "warning", want: slog.LevelWarn},
		{name: "error", want: slog.LevelError},
		{name: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.name)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewAutoUsesJSONForBuffers(t *testing.T) {
	t.Setenv(EnvDebug, "")
	var buf bytes.Buffer
	logger, err := New(&buf, "info", FormatAuto)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("gemini response received", slog.Int("characters", 42))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("expected JSON output, got %q: %v", buf.String(), err)
	}
	if record["msg"] != "gemini response received" {
		t.Errorf("msg = %v", record["msg"])
	}
}

func TestNewRespectsLevel(t *testing.T) {
	t.Setenv(EnvDebug, "")
	var buf bytes.Buffer
	logger, err := New(&buf, "warn", FormatText)
	if err != nil {
		t.Fatal(err)
	}

	logger.Info("hidden")
	logger.Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") || !strings.Contains(out, "shown") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestDebugEnvForcesDebug(t *testing.T) {
	t.Setenv(EnvDebug, "1")
	var buf bytes.Buffer
	logger, err := New(&buf, "error", FormatText)
	if err != nil {
		t.Fatal(err)
	}

	logger.Debug("probe details")
	if !strings.Contains(buf.String(), "probe details") {
		t.Errorf("debug record missing: %q", buf.String())
	}
}
