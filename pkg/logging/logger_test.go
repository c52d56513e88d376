package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger()
	if logger == nil {
		t.Fatal("NewLogger() returned nil")
	}
	if logger.Logger == nil {
		t.Fatal("Logger.Logger is nil")
	}
}

func TestLogLevelFromEnv(t *testing.T) {
	tests := []struct {
		name     string
		envValue string
		expected slog.Level
	}{
		{"debug level", "DEBUG", slog.LevelDebug},
		{"info level", "INFO", slog.LevelInfo},
		{"warn level", "WARN", slog.LevelWarn},
		{"warning level", "WARNING", slog.LevelWarn},
		{"error level", "ERROR", slog.LevelError},
		{"lowercase debug", "debug", slog.LevelDebug},
		{"invalid level", "INVALID", slog.LevelInfo},
		{"empty value", "", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LevelEnvVar, tt.envValue)
			if level := getLogLevelFromEnv(); level != tt.expected {
				t.Errorf("getLogLevelFromEnv() = %v, want %v", level, tt.expected)
			}
		})
	}
}

func TestSessionID(t *testing.T) {
	t.Run("generated ids are unique uuids", func(t *testing.T) {
		id1 := NewSessionID()
		id2 := NewSessionID()
		if id1 == id2 {
			t.Error("NewSessionID() returned duplicate IDs")
		}
		if len(id1) != 36 {
			t.Errorf("NewSessionID() returned wrong length: %d", len(id1))
		}
	})

	t.Run("explicit id round trips through context", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "session-1")
		if got := GetSessionID(ctx); got != "session-1" {
			t.Errorf("GetSessionID() = %q, want %q", got, "session-1")
		}
	})

	t.Run("empty id is generated", func(t *testing.T) {
		ctx := WithSessionID(context.Background(), "")
		if GetSessionID(ctx) == "" {
			t.Error("expected a generated session id")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if got := GetSessionID(context.Background()); got != "" {
			t.Errorf("GetSessionID() = %q, want empty", got)
		}
	})
}

func TestLogger_Info_IncludesSessionID(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	ctx := WithSessionID(context.Background(), "abc")
	logger.Info(ctx, "state committed", "state", "Game")

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log output is not JSON: %v (%q)", err, buf.String())
	}
	if record["msg"] != "state committed" {
		t.Errorf("msg = %v", record["msg"])
	}
	if record["session_id"] != "abc" {
		t.Errorf("session_id = %v, want abc", record["session_id"])
	}
	if record["state"] != "Game" {
		t.Errorf("state = %v, want Game", record["state"])
	}
}

func TestLogger_Error_RendersError(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Error(context.Background(), "spawn failed", errors.New("texture missing"))

	if !strings.Contains(buf.String(), `"error":"texture missing"`) {
		t.Errorf("expected error attribute in %q", buf.String())
	}
}

func TestLogger_Debug_FilteredAtInfo(t *testing.T) {
	t.Setenv(LevelEnvVar, "INFO")
	var buf bytes.Buffer
	logger := NewLoggerWithWriter(&buf)

	logger.Debug(context.Background(), "body lookup skipped")

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}
}

func TestSanitizeAttributes(t *testing.T) {
	tests := []struct {
		key      string
		redacted bool
	}{
		{"password", true},
		{"api_token", true},
		{"state", false},
		{"entity_id", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got := sanitizeAttributes(nil, slog.String(tt.key, "value"))
			if (got.Value.String() == "[REDACTED]") != tt.redacted {
				t.Errorf("sanitizeAttributes(%q) = %v", tt.key, got.Value)
			}
		})
	}
}

func TestWrapError(t *testing.T) {
	base := errors.New("boom")

	if WrapError(nil, "ignored") != nil {
		t.Error("WrapError(nil) should be nil")
	}

	wrapped := WrapError(base, "loading %s", "ship")
	if !errors.Is(wrapped, base) {
		t.Error("wrapped error should unwrap to base")
	}
	if wrapped.Error() != "loading ship: boom" {
		t.Errorf("wrapped.Error() = %q", wrapped.Error())
	}
}
