package log

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func TestMake_DefaultLevel(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug message should be discarded at default level, got: %s", buf.String())
	}

	logger.Info("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Errorf("expected info message in output, got: %s", buf.String())
	}
}

func TestMake_JSONFormat(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON))
	logger.Info("hello", slog.String("key", "value"))

	out := buf.String()
	if !strings.Contains(out, `"msg":"hello"`) {
		t.Errorf("expected JSON message field, got: %s", out)
	}

	if !strings.Contains(out, `"key":"value"`) {
		t.Errorf("expected JSON attribute, got: %s", out)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelWarn))

	logger.Info("dropped")
	logger.Warn("kept")

	out := buf.String()
	if strings.Contains(out, "dropped") {
		t.Errorf("info message should be filtered, got: %s", out)
	}

	if !strings.Contains(out, "kept") {
		t.Errorf("warn message should pass, got: %s", out)
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelTrace))
	logger.Trace("tracing")

	out := buf.String()
	if !strings.Contains(out, "TRACE") {
		t.Errorf("expected TRACE level name, got: %s", out)
	}
}

func TestLogger_Wrap(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	debug := logger.Wrap(WithLevel(LevelDebug))
	debug.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("wrapped logger should log at debug, got: %s", buf.String())
	}

	// The original logger keeps its level.
	if logger.Level() != DefaultLevel {
		t.Errorf("expected original level unchanged, got %s", logger.Level())
	}
}

func TestLogger_With(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatJSON)).
		With(slog.String("component", "engine"))

	logger.Info("tagged")

	if !strings.Contains(buf.String(), `"component":"engine"`) {
		t.Errorf("expected persistent attribute, got: %s", buf.String())
	}
}

func TestLogger_ZeroValueIsSilent(t *testing.T) {
	var logger Logger

	// Must not panic.
	logger.Info("nowhere")
	logger.Error("nowhere")

	if logger.Level() != DefaultLevel {
		t.Errorf("zero logger reports default level, got %s", logger.Level())
	}
}

func TestLogger_NoTimestamp(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithTimeLayout(""))
	logger.Info("bare")

	if strings.Contains(buf.String(), "time=") {
		t.Errorf("expected no timestamp, got: %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{in: "trace", want: LevelTrace},
		{in: "DEBUG", want: LevelDebug},
		{in: "info", want: LevelInfo},
		{in: "Warn", want: LevelWarn},
		{in: "error", want: LevelError},
		{in: "bogus", want: DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	if got := ParseFormat(" JSON "); got != FormatJSON {
		t.Errorf("expected json, got %s", got)
	}

	if got := ParseFormat("text"); got != FormatText {
		t.Errorf("expected text, got %s", got)
	}

	if got := ParseFormat("???"); got != DefaultFormat {
		t.Errorf("expected default, got %s", got)
	}
}

func TestConfig_ConcurrentWithLogging(t *testing.T) {
	original := defaultLogger()
	defer setDefaultLogger(original)

	setDefaultLogger(Make(io.Discard))

	var wg sync.WaitGroup

	// Reconfiguring while other goroutines log must be race-free. The race
	// detector flags unsynchronized access to the default logger here.
	for range 4 {
		wg.Add(2)

		go func() {
			defer wg.Done()

			for range 100 {
				Config(WithLevel(LevelWarn))
				Config(WithLevel(DefaultLevel))
			}
		}()

		go func() {
			defer wg.Done()

			for range 100 {
				Info("concurrent")
				Warn("concurrent")
			}
		}()
	}

	wg.Wait()
}

func TestPackageLevelFunctions(t *testing.T) {
	original := defaultLogger()
	defer setDefaultLogger(original)

	var buf bytes.Buffer

	setDefaultLogger(Make(&buf, WithLevel(LevelDebug), WithFormat(FormatJSON)))

	tests := []struct {
		name  string
		fn    func(string, ...slog.Attr)
		level string
	}{
		{name: "Debug", fn: Debug, level: "DEBUG"},
		{name: "Info", fn: Info, level: "INFO"},
		{name: "Warn", fn: Warn, level: "WARN"},
		{name: "Error", fn: Error, level: "ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf.Reset()
			tt.fn("message", slog.String("key", "value"))

			out := buf.String()
			if !strings.Contains(out, tt.level) {
				t.Errorf("expected level %q in output, got: %s", tt.level, out)
			}

			if !strings.Contains(out, `"key":"value"`) {
				t.Errorf("expected attribute in output, got: %s", out)
			}
		})
	}
}
