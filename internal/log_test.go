package internal

import (
	"bytes"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]LogLevel{
		"error":   LogLevelError,
		"WARNING": LogLevelWarn,
		" debug ": LogLevelDebug,
		"TRACE":   LogLevelTrace,
		"":        LogLevelInfo,
		"verbose": LogLevelInfo,
	}
	for input, want := range tests {
		if got := ParseLogLevel(input); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerTo(&buf, LogLevelWarn).With("Engine")

	logger.Info("hidden %d", 1)
	logger.Warn("shown %d", 2)
	logger.Error("shown %d", 3)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), buf.String())
	}
	if lines[0] != "[WARN] [Engine] shown 2" {
		t.Errorf("line = %q", lines[0])
	}
	if logger.GetLevel() != LogLevelWarn {
		t.Errorf("GetLevel = %v", logger.GetLevel())
	}
}
