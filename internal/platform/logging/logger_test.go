package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "debug", want: LevelDebug},
		{in: " WARN ", want: LevelWarn},
		{in: "warning", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "", want: LevelInfo},
		{in: "verbose", want: LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Fatalf("ParseLevel(%q)=%s want=%s", tt.in, got, tt.want)
			}
		})
	}
}

func TestLogger_KeyValueFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	logger.Warn("payload skipped", "match_id", "m-1", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["match_id"] != "m-1" {
		t.Fatalf("unexpected match_id field: %v", fields["match_id"])
	}
	if fields["error"] != "boom" {
		t.Fatalf("unexpected error field: %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestNewConsole_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsole(LevelInfo, &buf)
	logger.Debug("hidden")
	logger.Info("import finished", "imported", 3)
	_ = logger.Sync()

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line should be filtered: %q", out)
	}
	if !strings.Contains(out, "import finished") {
		t.Fatalf("expected message in output: %q", out)
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if logger.With("k", "v") == nil {
		t.Fatalf("expected non-nil child logger")
	}
}

func TestLogger_TeeWritesToBothCores(t *testing.T) {
	primary, primaryLogs := observer.New(zapcore.InfoLevel)
	extra, extraLogs := observer.New(zapcore.WarnLevel)
	logger := FromZap(zap.New(primary)).Tee(extra)

	logger.Info("only primary")
	logger.Warn("both", "match_id", "m-1")

	if got := primaryLogs.Len(); got != 2 {
		t.Fatalf("expected 2 primary entries, got %d", got)
	}
	if got := extraLogs.Len(); got != 1 {
		t.Fatalf("expected 1 extra entry, got %d", got)
	}
	if extraLogs.All()[0].ContextMap()["match_id"] != "m-1" {
		t.Fatalf("expected fields on teed entry")
	}
}
