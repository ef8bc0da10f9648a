package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/venvboot/internal/version"
)

// Execute runs the transparent launcher. Every argument is forwarded.
func Execute() error {
	defer startTrace()()
	return runLauncher(context.Background(), newLauncherCommand(), os.Args[1:])
}

// ExecuteCtl runs the maintenance CLI.
func ExecuteCtl() error {
	defer startTrace()()
	return newCtlCommand().Execute()
}

// newLauncherCommand only carries the launcher's streams and context. It is
// never executed by cobra, which would claim "completion" and "__complete"
// as its own subcommands.
func newLauncherCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "venvboot [args...]",
		Short: "Provision a Python virtual environment and run its interpreter",
	}
}

func runLauncher(ctx context.Context, cmd *cobra.Command, args []string) error {
	cmd.SetContext(ctx)
	return runLaunch(cmd, args, launchOptions{})
}

func newCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "venvbootctl",
		Short:         "Inspect and maintain venvboot environments",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringVarP(&chdir, "chdir", "C", "", "run as if started in `dir`")

	cmd.AddCommand(
		newRunCommand(),
		newCheckCommand(),
		newPrepareCommand(),
		newDoctorCommand(),
		newEnvCommand(),
		newConfigCommand(),
		newInitCommand(),
		newVersionCommand(),
	)

	return cmd
}
