package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/ardnew/jexpr/pkg"
)

func TestMakeDefaults(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("Level() = %v, want %v", logger.Level(), LevelInfo)
	}

	if logger.Format() != FormatText {
		t.Errorf("Format() = %v, want %v", logger.Format(), FormatText)
	}

	logger.Debug("hidden")
	logger.Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("debug record written at info level: %q", out)
	}

	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "level=INFO") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestZeroLogger(t *testing.T) {
	var logger Logger

	// must not panic
	logger.Trace("x")
	logger.ErrorContext(context.Background(), "x", slog.Int("n", 1))

	if logger.With(slog.String("k", "v")).Logger != nil {
		t.Error("With on the zero Logger allocated a handler")
	}

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger reports enabled")
	}
}

func TestTraceLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace), WithTimeLayout(""))
	logger.Trace("production", slog.String("rule", "comparison"))

	if got := buf.String(); !strings.Contains(got, "level=TRACE") ||
		!strings.Contains(got, "rule=comparison") {
		t.Errorf("unexpected trace output: %q", got)
	}

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("empty layout still wrote a timestamp: %q", buf.String())
	}
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON)).With(slog.String("component", "filter"))
	logger.Warn("bad value", slog.Int("code", 64))

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v: %q", err, buf.String())
	}

	for key, want := range map[string]any{
		"level":     "WARN",
		"msg":       "bad value",
		"component": "filter",
		"code":      float64(64),
	} {
		if rec[key] != want {
			t.Errorf("rec[%q] = %v, want %v", key, rec[key], want)
		}
	}
}

func TestPrettyHandler(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithPretty(true), WithTimeLayout("none"), WithLevel(LevelDebug))
	logger = logger.With(slog.String("pkg", "lang"))
	logger.Debug("parsed", slog.Group("pos", slog.Int("line", 1), slog.Int("column", 5)))

	want := "DEBUG  parsed pkg=lang pos.line=1 pos.column=5\n"
	if got := buf.String(); got != want {
		t.Errorf("pretty output = %q, want %q", got, want)
	}
}

func TestCaller(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true)).Info("here")

	if !strings.Contains(buf.String(), "log_test.go:") {
		t.Errorf("caller not reported: %q", buf.String())
	}
}

func TestWrap(t *testing.T) {
	var first, second bytes.Buffer

	base := Make(&first, WithLevel(LevelError))
	wrapped := base.Wrap(WithOutput(&second), WithLevel(LevelDebug))

	wrapped.Debug("moved")

	if first.Len() != 0 {
		t.Errorf("wrapped logger wrote to the original output: %q", first.String())
	}

	if !strings.Contains(second.String(), "moved") {
		t.Errorf("wrapped logger did not write: %q", second.String())
	}

	if base.Level() != LevelError {
		t.Errorf("Wrap modified the receiver level: %v", base.Level())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"TRACE", LevelTrace, false},
		{"debug", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"WARN", LevelWarn, false},
		{"error", LevelError, false},
		{"loud", DefaultLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v", tt.in, err)
			}

			if err != nil && !errors.Is(err, pkg.ErrInvalidFormat) {
				t.Errorf("error %v is not ErrInvalidFormat", err)
			}

			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for name, want := range map[string]Format{"json": FormatJSON, "Text": FormatText, "": FormatText} {
		got, err := ParseFormat(name)
		if err != nil || got != want {
			t.Errorf("ParseFormat(%q) = %v, %v", name, got, err)
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("ParseFormat(xml) succeeded")
	}
}

func TestLevelsAndFormats(t *testing.T) {
	var levels, formats []string
	for l := range Levels() {
		levels = append(levels, l)
	}

	for f := range Formats() {
		formats = append(formats, f)
	}

	if strings.Join(levels, ",") != "trace,debug,info,warn,error" {
		t.Errorf("Levels() = %v", levels)
	}

	if strings.Join(formats, ",") != "text,json" {
		t.Errorf("Formats() = %v", formats)
	}
}

func TestDefault(t *testing.T) {
	saved := Default()
	t.Cleanup(func() { SetDefault(saved) })

	var buf bytes.Buffer

	Config(WithOutput(&buf), WithLevel(LevelInfo), WithTimeLayout(""))
	Info("from default", slog.Bool("ok", true))
	Debug("suppressed")

	got := buf.String()
	if !strings.Contains(got, "from default") || !strings.Contains(got, "ok=true") {
		t.Errorf("default logger output = %q", got)
	}

	if strings.Contains(got, "suppressed") {
		t.Errorf("default logger ignored its level: %q", got)
	}
}
