// Package logging configures the structured logger shared by venvboot's
// binaries.
//
// Logs are JSON lines on stderr carrying the module name and build version.
// The level comes from LOG_LEVEL when set; otherwise a non-empty DEBUG
// selects debug, and the configured level applies last. Debug logs include
// the source location.
//
//	logging.SetDefaultStructuredLogger("venvboot", version.String(), cfg.LogLevel)
//	slog.Debug("step started", "step", "install dependencies")
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// ParseLevel maps a case-insensitive level name to a slog level. Unknown
// names yield info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromEnv resolves the effective level name.
func LevelFromEnv(configured string) string {
	return levelFrom(os.LookupEnv, configured)
}

func levelFrom(lookup func(string) (string, bool), configured string) string {
	if v, ok := lookup("LOG_LEVEL"); ok && strings.TrimSpace(v) != "" {
		return v
	}
	if v, ok := lookup("DEBUG"); ok && v != "" {
		return "debug"
	}
	return configured
}

// NewStructuredLogger builds a JSON logger on stderr.
func NewStructuredLogger(module, version, level string) *slog.Logger {
	return newLogger(os.Stderr, module, version, ParseLevel(level))
}

// SetDefaultStructuredLogger installs a JSON logger as the slog default,
// honoring LOG_LEVEL and DEBUG over level.
func SetDefaultStructuredLogger(module, version, level string) *slog.Logger {
	logger := NewStructuredLogger(module, version, LevelFromEnv(level))
	slog.SetDefault(logger)
	return logger
}

func newLogger(w io.Writer, module, version string, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler).With("module", module, "version", version)
}
