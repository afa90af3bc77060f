package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		value string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"", slog.LevelInfo},
		{"bogus", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run("LOG_LEVEL="+tt.value, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.value)
			if got := LevelFromEnv(); got != tt.want {
				t.Errorf("LevelFromEnv() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWithComponentTagsLines(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Handler: slog.NewTextHandler(&buf, nil),
	}).WithComponent(ComponentStorage)

	logger.Info("hello")

	if logger.Component() != ComponentStorage {
		t.Errorf("Component() = %q", logger.Component())
	}
	if !strings.Contains(buf.String(), FieldComponent+"="+ComponentStorage) {
		t.Errorf("line missing component tag: %s", buf.String())
	}
}
