package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the interpreter meets the minimum version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProjectFromWD()
			if err != nil {
				return err
			}
			b, err := newBootstrapper(cmd, proj, launchOptions{})
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			found, err := b.Check(ctx)
			if err != nil {
				return reportMismatch(cmd, err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Python %s satisfies >= %s\n", paint(out, colorGood, "✓"), found, b.Required)
			return nil
		},
	}
}

func newPrepareCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prepare",
		Short: "Create the environment and install dependencies without running anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProjectFromWD()
			if err != nil {
				return err
			}
			b, err := newBootstrapper(cmd, proj, launchOptions{})
			if err != nil {
				return err
			}
			ctx, cancel := commandContext(cmd)
			defer cancel()

			env, err := b.Prepare(ctx)
			if err != nil {
				return reportMismatch(cmd, err)
			}
			verb := "Reused"
			if env.Created {
				verb = "Created"
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s environment %s %s\n", verb, env.EnvDir, paint(out, colorDetail, "(Python "+env.Interpreter.String()+")"))
			return nil
		},
	}
}
