package logging

import (
	"io"
	"log/slog"
	"os"
	"testing"

	"git.home.luguber.info/inful/faviconbuilder/internal/foundation/normalization"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

var formatNormalizer = normalization.NewEnumNormalizer("log format", map[string]Format{
	"text": FormatText,
	"json": FormatJSON,
}, FormatText)

var levelNormalizer = normalization.NewEnumNormalizer("log level", map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}, slog.LevelInfo)

// ParseFormat resolves a user supplied format name. Empty means text.
func ParseFormat(raw string) (Format, error) {
	return formatNormalizer.NormalizeWithValidation(raw)
}

// ParseLevel resolves a user supplied level name. Empty means info.
func ParseLevel(raw string) (slog.Level, error) {
	return levelNormalizer.NormalizeWithValidation(raw)
}

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level.
	Level slog.Level
	// Format specifies the output format (text or JSON).
	Format Format
	// Output defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger with the given configuration.
func New(cfg Config) *slog.Logger {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	switch cfg.Format {
	case FormatJSON:
		handler = slog.NewJSONHandler(output, opts)
	default:
		handler = NewHandler(output, opts)
	}
	return slog.New(handler)
}

// Default returns the CLI logger: info level, text, stderr.
func Default() *slog.Logger {
	return New(Config{Level: slog.LevelInfo, Format: FormatText, Output: os.Stderr})
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	msg := string(p)
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a debug-level logger that writes to the test's log output.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{Level: slog.LevelDebug, Format: FormatText, Output: &testWriter{t: t}})
}
