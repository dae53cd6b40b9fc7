package logger

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		level string
	}{
		{"debug level", "debug"},
		{"info level", "info"},
		{"warn level", "warn"},
		{"error level", "error"},
		{"invalid level", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.level)
			if log == nil {
				t.Error("New() returned nil")
			}
		})
	}
}

func TestShouldLog(t *testing.T) {
	tests := []struct {
		name        string
		configLevel string
		logLevel    string
		shouldLog   bool
	}{
		{"debug logs at debug level", "debug", "debug", true},
		{"info logs at debug level", "debug", "info", true},
		{"debug doesn't log at info level", "info", "debug", false},
		{"info logs at info level", "info", "info", true},
		{"error always logs", "debug", "error", true},
		{"warn doesn't log at error level", "error", "warn", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log := New(tt.configLevel).(*implLogger)
			result := log.shouldLog(tt.logLevel)
			if result != tt.shouldLog {
				t.Errorf("shouldLog() = %v, want %v", result, tt.shouldLog)
			}
		})
	}
}

func TestWithName(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	log := NewWithWriter("info", &buf).WithName("monitor")
	log.Info(ctx, "cycle %d done", 3)

	got := buf.String()
	if !strings.Contains(got, "[INFO] monitor: cycle 3 done") {
		t.Errorf("output = %q, want component prefix", got)
	}
}

func TestLevelFiltering(t *testing.T) {
	ctx := context.Background()
	var buf bytes.Buffer

	log := NewWithWriter("warn", &buf)
	log.Debug(ctx, "hidden")
	log.Info(ctx, "hidden too")
	log.Warn(ctx, "visible")
	log.Error(ctx, "also visible")

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("output contains suppressed lines: %q", got)
	}
	if !strings.Contains(got, "[WARN] visible") || !strings.Contains(got, "[ERROR] also visible") {
		t.Errorf("output missing expected lines: %q", got)
	}
}
