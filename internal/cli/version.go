package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/venvboot/internal/version"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the venvboot build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", cmd.Root().DisplayName(), version.Read().Long())
			return err
		},
	}
}
