// Package bootstrap gates on an interpreter version, provisions a virtual
// environment, installs the dependency manifest into it, and dispatches to
// the environment's interpreter.
//
// The steps run strictly in order and the version gate always comes first,
// so a too-old interpreter never causes any filesystem mutation. Every
// external tool is reached through a small capability interface; package
// python provides the exec-backed implementations.
package bootstrap

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"runtime/trace"
	"time"

	"github.com/brandonbloom/venvboot/internal/activation"
	"github.com/brandonbloom/venvboot/internal/pyversion"
)

// VersionProvider reports the system interpreter's version.
type VersionProvider interface {
	InterpreterVersion(ctx context.Context) (pyversion.Version, error)
}

// EnvironmentProvisioner creates a fresh virtual environment at dir.
type EnvironmentProvisioner interface {
	CreateEnvironment(ctx context.Context, dir string) error
}

// PackageInstaller manages packages inside an activated environment.
type PackageInstaller interface {
	UpgradeInstaller(ctx context.Context, act activation.Context) error
	InstallManifest(ctx context.Context, act activation.Context, manifest string) error
}

// Dispatcher runs the environment interpreter and reports its exit status.
type Dispatcher interface {
	Dispatch(ctx context.Context, act activation.Context, args []string) (int, error)
}

// Options holds the fixed inputs of a bootstrap run.
type Options struct {
	Required         pyversion.Version
	EnvDir           string
	Manifest         string
	Entry            []string
	UpgradeInstaller bool
	// Environ is the base environment activation builds on.
	// Nil means os.Environ().
	Environ []string
}

// Bootstrapper sequences the provisioning steps.
type Bootstrapper struct {
	Options

	Versions    VersionProvider
	Provisioner EnvironmentProvisioner
	Installer   PackageInstaller
	Dispatcher  Dispatcher
	Logger      *slog.Logger
}

// Environment is the result of a successful Prepare.
type Environment struct {
	activation.Context

	Interpreter pyversion.Version
	Created     bool
}

func (b *Bootstrapper) logger() *slog.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return slog.Default()
}

func (b *Bootstrapper) step(ctx context.Context, name string, fn func() error) error {
	var err error
	start := time.Now()
	trace.WithRegion(ctx, name, func() {
		b.logger().Debug("step started", "step", name)
		err = fn()
	})
	if err != nil {
		b.logger().Debug("step failed", "step", name, "error", err)
		return err
	}
	b.logger().Debug("step finished", "step", name, "duration", time.Since(start))
	return nil
}

// Check resolves the interpreter version and enforces the minimum.
func (b *Bootstrapper) Check(ctx context.Context) (pyversion.Version, error) {
	var found pyversion.Version
	err := b.step(ctx, StepVersion, func() error {
		v, err := b.Versions.InterpreterVersion(ctx)
		if err != nil {
			return &StepError{Step: StepVersion, Err: err}
		}
		found = v
		return nil
	})
	if err != nil {
		return pyversion.Version{}, err
	}
	if found.Less(b.Required) {
		return found, &VersionMismatchError{Required: b.Required, Found: found}
	}
	return found, nil
}

// Prepare runs every step up to, but not including, dispatch.
func (b *Bootstrapper) Prepare(ctx context.Context) (*Environment, error) {
	found, err := b.Check(ctx)
	if err != nil {
		return nil, err
	}

	created, err := b.ensureEnvironment(ctx)
	if err != nil {
		return nil, err
	}

	base := b.Environ
	if base == nil {
		base = os.Environ()
	}
	act := activation.New(b.EnvDir, base)

	if b.UpgradeInstaller {
		err := b.step(ctx, StepUpgrade, func() error {
			return b.Installer.UpgradeInstaller(ctx, act)
		})
		if err != nil {
			return nil, &StepError{Step: StepUpgrade, Err: err}
		}
	}

	err = b.step(ctx, StepInstall, func() error {
		return b.Installer.InstallManifest(ctx, act, b.Manifest)
	})
	if err != nil {
		return nil, &StepError{Step: StepInstall, Err: err}
	}

	return &Environment{Context: act, Interpreter: found, Created: created}, nil
}

func (b *Bootstrapper) ensureEnvironment(ctx context.Context) (bool, error) {
	info, err := os.Stat(b.EnvDir)
	switch {
	case err == nil && info.IsDir():
		b.logger().Debug("reusing environment", "dir", b.EnvDir)
		return false, nil
	case err == nil:
		return false, &StepError{Step: StepCreate, Err: ErrNotDirectory}
	case !errors.Is(err, fs.ErrNotExist):
		return false, &StepError{Step: StepCreate, Err: err}
	}

	b.logger().Info("creating environment", "dir", b.EnvDir)
	err = b.step(ctx, StepCreate, func() error {
		return b.Provisioner.CreateEnvironment(ctx, b.EnvDir)
	})
	if err != nil {
		return false, &StepError{Step: StepCreate, Err: err}
	}
	return true, nil
}

// Run prepares the environment and dispatches args to its interpreter.
// The returned code is the dispatched process's exit status, or the status
// venvboot should exit with when err is non-nil.
func (b *Bootstrapper) Run(ctx context.Context, args []string) (int, error) {
	env, err := b.Prepare(ctx)
	if err != nil {
		return ExitCode(err), err
	}

	argv := make([]string, 0, len(b.Entry)+len(args))
	argv = append(argv, b.Entry...)
	argv = append(argv, args...)

	var code int
	err = b.step(ctx, StepDispatch, func() error {
		var derr error
		code, derr = b.Dispatcher.Dispatch(ctx, env.Context, argv)
		return derr
	})
	if err != nil {
		return 1, &StepError{Step: StepDispatch, Err: err}
	}
	b.logger().Debug("dispatched process exited", "code", code)
	return code, nil
}
