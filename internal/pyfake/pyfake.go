// Package pyfake writes a hermetic stand-in for the `python3` binary used by
// tests. It is a POSIX shell script, so tests using it skip on Windows.
//
// Supported invocations:
//   - `python --version` prints "Python $PYFAKE_VERSION" (default 3.11.4)
//   - `python -m venv [flags] DIR` copies itself to DIR/bin/python and writes
//     DIR/pyvenv.cfg; exits $PYFAKE_VENV_EXIT
//   - `python -m venv --help` succeeds
//   - `python -m pip install ...` logs the call; with `-r FILE` every listed
//     requirement becomes an empty file under $VIRTUAL_ENV/site-packages;
//     exits $PYFAKE_PIP_EXIT, or kills itself with $PYFAKE_PIP_SIGNAL
//   - anything else logs one "arg:<value>" line per argument plus the
//     VIRTUAL_ENV it saw, then exits $PYFAKE_EXIT
//
// Calls are appended to $PYFAKE_LOG when set.
package pyfake

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

const script = `#!/bin/sh
log="${PYFAKE_LOG:-/dev/null}"

if [ "$1" = "--version" ]; then
  echo "Python ${PYFAKE_VERSION:-3.11.4}"
  exit 0
fi

if [ "$1" = "-m" ] && [ "$2" = "venv" ]; then
  shift 2
  if [ "$1" = "--help" ]; then
    exit 0
  fi
  echo "venv $*" >> "$log"
  code="${PYFAKE_VENV_EXIT:-0}"
  if [ "$code" != "0" ]; then
    echo "Error: venv failed" >&2
    exit "$code"
  fi
  for dir; do :; done
  mkdir -p "$dir/bin" || exit 1
  cp "$0" "$dir/bin/python" || exit 1
  chmod +x "$dir/bin/python"
  echo "home = $(dirname "$0")" > "$dir/pyvenv.cfg"
  exit 0
fi

if [ "$1" = "-m" ] && [ "$2" = "pip" ]; then
  shift 2
  echo "pip $* VIRTUAL_ENV=$VIRTUAL_ENV" >> "$log"
  if [ -n "$PYFAKE_PIP_SIGNAL" ]; then
    kill -"$PYFAKE_PIP_SIGNAL" $$
  fi
  code="${PYFAKE_PIP_EXIT:-0}"
  if [ "$code" != "0" ]; then
    echo "ERROR: pip failed" >&2
    exit "$code"
  fi
  while [ $# -gt 0 ]; do
    if [ "$1" = "-r" ]; then
      shift
      if [ ! -f "$1" ]; then
        echo "ERROR: Could not open requirements file: $1" >&2
        exit 1
      fi
      mkdir -p "$VIRTUAL_ENV/site-packages"
      while IFS= read -r line || [ -n "$line" ]; do
        case "$line" in
          ''|'#'*) continue ;;
        esac
        name="${line%%[=<>!~ ]*}"
        : > "$VIRTUAL_ENV/site-packages/$name"
      done < "$1"
    fi
    shift
  done
  exit 0
fi

echo "run VIRTUAL_ENV=$VIRTUAL_ENV" >> "$log"
for a; do
  echo "arg:$a" >> "$log"
done
exit "${PYFAKE_EXIT:-0}"
`

// Install writes the fake interpreter into dir as python3 and returns its
// path. The test is skipped on platforms without /bin/sh.
func Install(t testing.TB, dir string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("pyfake requires a POSIX shell")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", dir, err)
	}
	path := filepath.Join(dir, "python3")
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write fake python: %v", err)
	}
	return path
}

// ReadLog returns the lines appended to the log file at path.
func ReadLog(t testing.TB, path string) []string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		t.Fatalf("read %s: %v", path, err)
	}
	s := strings.TrimSuffix(string(b), "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// Args extracts the "arg:" lines of a dispatched run from log lines.
func Args(lines []string) []string {
	var args []string
	for _, line := range lines {
		if v, ok := strings.CutPrefix(line, "arg:"); ok {
			args = append(args, v)
		}
	}
	return args
}
