package cli

import (
	"github.com/spf13/cobra"
)

func newRunCommand() *cobra.Command {
	var replace bool
	cmd := &cobra.Command{
		Use:   "run [args...]",
		Short: "Provision the environment and run its interpreter",
		Long: `Run provisions the project environment exactly like the venvboot launcher
and then runs the environment interpreter with args. Flags after the first
argument are passed through untouched.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := launchOptions{}
			if cmd.Flags().Changed("replace") {
				opts.replace = &replace
			}
			return runLaunch(cmd, args, opts)
		},
	}
	cmd.Flags().SetInterspersed(false)
	cmd.Flags().BoolVar(&replace, "replace", false, "replace venvbootctl with the interpreter instead of running a child")
	return cmd
}
