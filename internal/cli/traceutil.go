package cli

import (
	"log/slog"
	"os"
	"runtime/trace"
)

// TraceEnv names a file that receives a runtime execution trace of the
// bootstrap steps, for `go tool trace`.
const TraceEnv = "VENVBOOT_TRACE"

// startTrace begins tracing when TraceEnv is set and returns the function
// that flushes it. Tracing problems are logged, never fatal.
func startTrace() func() {
	path := os.Getenv(TraceEnv)
	if path == "" {
		return func() {}
	}
	f, err := os.Create(path)
	if err != nil {
		slog.Warn("trace disabled", "path", path, "error", err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		slog.Warn("trace disabled", "path", path, "error", err)
		f.Close()
		return func() {}
	}
	return func() {
		trace.Stop()
		f.Close()
	}
}
