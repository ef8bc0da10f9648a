package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/brandonbloom/venvboot/internal/config"
)

func newConfigCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProjectFromWD()
			if err != nil {
				return err
			}
			data, err := config.Marshal(proj.Config)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			src := proj.ConfigPath
			if src == "" {
				src = "built-in defaults"
			}
			fmt.Fprintln(out, paint(out, colorDetail, "# root: "+proj.Root))
			fmt.Fprintln(out, paint(out, colorDetail, "# source: "+src))
			_, err = out.Write(data)
			return err
		},
	}
}

func newInitCommand() *cobra.Command {
	var (
		force      bool
		minVersion string
		manifest   string
	)
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a .venvboot.toml for the current project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, err := loadProjectFromWD()
			if err != nil {
				return err
			}
			path := proj.DefaultConfigPath()
			existing := proj.ConfigPath
			if existing == "" {
				if _, err := os.Stat(path); err == nil {
					existing = path
				} else if !errors.Is(err, fs.ErrNotExist) {
					return err
				}
			}
			if existing != "" && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", existing)
			}

			cfg := proj.Config
			if minVersion != "" {
				cfg.MinVersion = minVersion
			}
			if manifest != "" {
				cfg.Manifest = manifest
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing config file")
	cmd.Flags().StringVar(&minVersion, "min-version", "", "minimum interpreter version")
	cmd.Flags().StringVar(&manifest, "manifest", "", "dependency manifest path")
	return cmd
}
