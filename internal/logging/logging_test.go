package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"DEBUG":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"Warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "ParseLevel(%q)", in)
	}
}

func TestLevelFrom(t *testing.T) {
	env := func(kv map[string]string) func(string) (string, bool) {
		return func(k string) (string, bool) {
			v, ok := kv[k]
			return v, ok
		}
	}

	assert.Equal(t, "warn", levelFrom(env(nil), "warn"))
	assert.Equal(t, "debug", levelFrom(env(map[string]string{"DEBUG": "1"}), "warn"))
	assert.Equal(t, "error", levelFrom(env(map[string]string{"DEBUG": "1", "LOG_LEVEL": "error"}), "warn"))
	assert.Equal(t, "warn", levelFrom(env(map[string]string{"DEBUG": ""}), "warn"))
}

func TestNewLoggerWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "venvboot", "v1.2.3", slog.LevelInfo)

	logger.Debug("hidden")
	logger.Info("creating environment", "dir", "/repo/.venv")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "creating environment", rec["msg"])
	assert.Equal(t, "venvboot", rec["module"])
	assert.Equal(t, "v1.2.3", rec["version"])
	assert.Equal(t, "/repo/.venv", rec["dir"])
	assert.NotContains(t, rec, "source")
}

func TestDebugLoggerAddsSource(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "venvboot", "(devel)", slog.LevelDebug)
	logger.Debug("step started", "step", "dispatch")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "DEBUG", rec["level"])
	assert.Contains(t, rec, "source")
}
