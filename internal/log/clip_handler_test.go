package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestClip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		limit int
		want  string
	}{
		{name: "short value untouched", input: "hello", limit: 10, want: "hello"},
		{name: "exact length untouched", input: "hello", limit: 5, want: "hello"},
		{name: "long value clipped", input: "hello world", limit: 5, want: "hello…[+6 bytes]"},
		{name: "does not split runes", input: "ëëë", limit: 3, want: "ë…[+4 bytes]"},
		{name: "zero limit", input: "abc", limit: 0, want: "…[+3 bytes]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := Clip(tt.input, tt.limit); got != tt.want {
				t.Errorf("Clip(%q, %d) = %q, want %q", tt.input, tt.limit, got, tt.want)
			}
		})
	}
}

// TestClipHandler_ClipsStrings tests that long string attributes are clipped.
func TestClipHandler_ClipsStrings(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewClipHandler(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}), 8)
	logger := slog.New(handler)

	logger.Debug("comparing",
		"first_text", strings.Repeat("a", 100),
		"owner", "alice",
		"chars", 100,
	)

	output := buf.String()
	if strings.Contains(output, strings.Repeat("a", 9)) {
		t.Errorf("expected text to be clipped: %s", output)
	}
	if !strings.Contains(output, "[+92 bytes]") {
		t.Errorf("expected dropped byte count: %s", output)
	}
	if !strings.Contains(output, "owner=alice") {
		t.Errorf("expected short attribute untouched: %s", output)
	}
	if !strings.Contains(output, "chars=100") {
		t.Errorf("expected non-string attribute untouched: %s", output)
	}
}

func TestClipHandler_WithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewClipHandler(slog.NewTextHandler(&buf, nil), 4)
	logger := slog.New(handler).With("root", "/very/long/path")

	logger.Info("run")

	if strings.Contains(buf.String(), "/very/long/path") {
		t.Errorf("expected WithAttrs values to be clipped: %s", buf.String())
	}
}

func TestClipHandler_WithGroup(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := NewClipHandler(slog.NewTextHandler(&buf, nil), 4)
	logger := slog.New(handler).WithGroup("pair")

	logger.Info("compared", slog.Group("texts", slog.String("first", "abcdefgh")))

	output := buf.String()
	if !strings.Contains(output, "pair.texts.first=") {
		t.Errorf("expected grouped key: %s", output)
	}
	if strings.Contains(output, "abcdefgh") {
		t.Errorf("expected grouped value to be clipped: %s", output)
	}
}

func TestClipHandler_LogLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewLogger(&buf, false)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("expected only warnings without verbose: %s", output)
	}
	if !strings.Contains(output, "warn message") {
		t.Errorf("expected warning: %s", output)
	}

	buf.Reset()
	NewLogger(&buf, true).Debug("debug message")
	if !strings.Contains(buf.String(), "debug message") {
		t.Error("expected debug output with verbose")
	}
}

func TestNewClipHandler_Defaults(t *testing.T) {
	t.Parallel()

	h := NewClipHandler(nil, 0)
	if h.handler == nil {
		t.Error("expected default handler")
	}
	if h.limit != DefaultClipLength {
		t.Errorf("expected limit %d, got %d", DefaultClipLength, h.limit)
	}
}
