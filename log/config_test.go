package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  Level
	}{
		{input: "debug", want: LevelDebug},
		{input: "info", want: LevelInfo},
		{input: "warn", want: LevelWarn},
		{input: "error", want: LevelError},
		{input: "ERROR", want: LevelError},
		{input: "bogus", want: DefaultLevel},
		{input: "", want: DefaultLevel},
	} {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseLevel(tt.input); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  Format
	}{
		{input: "json", want: FormatJSON},
		{input: "JSON", want: FormatJSON},
		{input: "text", want: FormatText},
		{input: "bogus", want: FormatText},
	} {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseFormat(tt.input); got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ref := time.Date(2016, 1, 2, 15, 4, 5, 0, time.UTC)

	for _, tt := range []struct {
		name   string
		layout string
		want   string
	}{
		{name: "named layout", layout: "Kitchen", want: "3:04PM"},
		{name: "custom layout", layout: "2006-01-02", want: "2016-01-02"},
		{name: "disabled", layout: "", want: ""},
		{name: "none", layout: "none", want: ""},
	} {
		t.Run(tt.name, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ref); got != tt.want {
				t.Errorf("formatTime(%q) = %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelWarn), WithFormat(FormatJSON))

	logger.Info("dropped")
	logger.Warn("kept", slog.String("key", "value"))

	out := buf.String()

	if strings.Contains(out, "dropped") {
		t.Errorf("output contains filtered message: %q", out)
	}

	if !strings.Contains(out, "kept") || !strings.Contains(out, `"key":"value"`) {
		t.Errorf("output missing expected message: %q", out)
	}
}

func TestLoggerWrap(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError))

	if got := logger.Level(); got != LevelError {
		t.Errorf("Level() = %v, want %v", got, LevelError)
	}

	wrapped := logger.Wrap(WithLevel(LevelDebug), WithFormat(FormatJSON))

	if got := wrapped.Level(); got != LevelDebug {
		t.Errorf("Wrap() Level() = %v, want %v", got, LevelDebug)
	}

	// The original logger keeps its own configuration.
	if got := logger.Level(); got != LevelError {
		t.Errorf("Level() after Wrap() = %v, want %v", got, LevelError)
	}
}

func TestZeroLoggerIsSilent(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Debug("quiet")
	logger.Error("quiet", slog.Int("n", 1))

	if got := logger.Level(); got != DefaultLevel {
		t.Errorf("Level() = %v, want %v", got, DefaultLevel)
	}
}
