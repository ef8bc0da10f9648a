package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/venvboot/internal/activation"
)

func newEnvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "env",
		Short: "Print shell commands that activate the project environment",
		Long: `Env prints POSIX shell statements equivalent to sourcing the environment's
activate script. venvboot itself never modifies the calling shell; use
  eval "$(venvbootctl env)"
to opt in.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProjectFromWD()
			if err != nil {
				return err
			}
			act := activation.New(proj.EnvDir(), os.Environ())
			if _, err := os.Stat(act.Python); err != nil {
				return fmt.Errorf("environment %s is not provisioned; run `venvbootctl prepare`", act.EnvDir)
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), act.Exports())
			return err
		},
	}
}
