// Package python runs the real interpreter, venv and pip on behalf of
// package bootstrap.
package python

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/brandonbloom/venvboot/internal/pyversion"
)

// VenvOptions mirrors the `python -m venv` flags venvboot exposes.
type VenvOptions struct {
	SystemSitePackages bool
	Prompt             string
}

// Interpreter is the system Python used to check versions and create
// environments.
type Interpreter struct {
	Path string
	Venv VenvOptions
	// Output receives the tool's stdout and stderr. Nil means os.Stderr.
	Output io.Writer
}

// FindInterpreter resolves name on PATH.
func FindInterpreter(name string) (*Interpreter, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return nil, fmt.Errorf("interpreter %s not found on PATH: %w", name, err)
	}
	return &Interpreter{Path: path}, nil
}

func (i *Interpreter) output() io.Writer {
	if i.Output != nil {
		return i.Output
	}
	return os.Stderr
}

// InterpreterVersion runs `python --version`. Python 2 prints the banner on
// stderr, so both streams are read.
func (i *Interpreter) InterpreterVersion(ctx context.Context) (pyversion.Version, error) {
	out, err := exec.CommandContext(ctx, i.Path, "--version").CombinedOutput()
	if err != nil {
		return pyversion.Version{}, fmt.Errorf("%s --version: %w\n%s", i.Path, err, strings.TrimSpace(string(out)))
	}
	return pyversion.ParseInterpreterOutput(string(out))
}

// CreateEnvironment runs `python -m venv dir`.
func (i *Interpreter) CreateEnvironment(ctx context.Context, dir string) error {
	args := []string{"-m", "venv"}
	if i.Venv.SystemSitePackages {
		args = append(args, "--system-site-packages")
	}
	if i.Venv.Prompt != "" {
		args = append(args, "--prompt", i.Venv.Prompt)
	}
	args = append(args, dir)

	cmd := exec.CommandContext(ctx, i.Path, args...)
	cmd.Stdout = i.output()
	cmd.Stderr = i.output()
	if err := cmd.Run(); err != nil {
		return toolError(i.Path+" -m venv", err)
	}
	return nil
}

// HasVenvModule reports whether the interpreter ships the venv module.
// Some distributions split it into a separate package.
func (i *Interpreter) HasVenvModule(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, i.Path, "-m", "venv", "--help")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("%s -m venv unavailable: %w", i.Path, err)
	}
	return nil
}
