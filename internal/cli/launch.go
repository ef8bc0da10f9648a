package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/venvboot/internal/bootstrap"
	"github.com/brandonbloom/venvboot/internal/config"
	"github.com/brandonbloom/venvboot/internal/project"
	"github.com/brandonbloom/venvboot/internal/python"
)

type launchOptions struct {
	// replace overrides the configured exec_mode when set.
	replace *bool
}

func runLaunch(cmd *cobra.Command, args []string, opts launchOptions) error {
	proj, err := loadProjectFromWD()
	if err != nil {
		return err
	}
	b, err := newBootstrapper(cmd, proj, opts)
	if err != nil {
		return err
	}

	code, err := b.Run(cmd.Context(), args)
	if err != nil {
		return reportMismatch(cmd, err)
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}

func newBootstrapper(cmd *cobra.Command, proj *project.Project, opts launchOptions) (*bootstrap.Bootstrapper, error) {
	cfg := proj.Config
	interp, err := python.FindInterpreter(cfg.Interpreter)
	if err != nil {
		return nil, &bootstrap.StepError{Step: bootstrap.StepVersion, Err: err}
	}
	interp.Venv = python.VenvOptions{
		SystemSitePackages: cfg.Venv.SystemSitePackages,
		Prompt:             cfg.Venv.Prompt,
	}
	interp.Output = cmd.ErrOrStderr()

	replace := cfg.ExecMode == config.ExecReplace
	if opts.replace != nil {
		replace = *opts.replace
	}

	return &bootstrap.Bootstrapper{
		Options: bootstrap.Options{
			Required:         cfg.RequiredVersion(),
			EnvDir:           proj.EnvDir(),
			Manifest:         proj.ManifestPath(),
			Entry:            cfg.Entry,
			UpgradeInstaller: cfg.UpgradeInstaller,
		},
		Versions:    interp,
		Provisioner: interp,
		Installer: &python.Pip{
			IndexURL:      cfg.Pip.IndexURL,
			ExtraIndexURL: cfg.Pip.ExtraIndexURL,
			NoCache:       cfg.Pip.NoCache,
			Quiet:         cfg.Pip.Quiet,
			Output:        cmd.ErrOrStderr(),
		},
		Dispatcher: &python.Launcher{
			Replace: replace,
			Stdin:   cmd.InOrStdin(),
			Stdout:  cmd.OutOrStdout(),
			Stderr:  cmd.ErrOrStderr(),
		},
		Logger: slog.Default().With("root", proj.Root),
	}, nil
}

// commandContext cancels on interrupt for subcommands that never dispatch.
// The launcher leaves signal handling to python.Launcher.
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt)
}
