package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/brandonbloom/venvboot/internal/activation"
	"github.com/brandonbloom/venvboot/internal/bootstrap"
	"github.com/brandonbloom/venvboot/internal/project"
	"github.com/brandonbloom/venvboot/internal/python"
	"github.com/brandonbloom/venvboot/internal/timefmt"
)

func newDoctorCommand() *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose interpreter and environment problems",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDoctor(cmd, verbose)
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show passing checks too")
	return cmd
}

type doctorContext struct {
	ctx         context.Context
	Project     *project.Project
	Interpreter *python.Interpreter
	now         time.Time
}

type doctorCheck struct {
	Name string
	// Fn returns a detail for a passing check.
	Fn func(*doctorContext) (string, error)
}

type doctorResult struct {
	name   string
	detail string
	err    error
}

var errSkipped = errors.New("skipped")

func runDoctor(cmd *cobra.Command, verbose bool) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()
	dc := &doctorContext{ctx: ctx, now: time.Now()}

	checks := []doctorCheck{
		{Name: "configuration", Fn: checkConfig},
		{Name: "interpreter on PATH", Fn: checkInterpreterPath},
		{Name: "interpreter version", Fn: checkInterpreterVersion},
		{Name: "venv module", Fn: checkVenvModule},
		{Name: "dependency manifest", Fn: checkManifest},
		{Name: "environment", Fn: checkEnvironment},
	}

	var results []doctorResult
	failures := 0
	for _, check := range checks {
		detail, err := check.Fn(dc)
		if err != nil && !errors.Is(err, errSkipped) {
			failures++
		}
		results = append(results, doctorResult{name: check.Name, detail: detail, err: err})
	}

	printDoctorResults(cmd.OutOrStdout(), cmd.ErrOrStderr(), results, verbose)
	if failures > 0 {
		return fmt.Errorf("%d doctor checks failed", failures)
	}
	fmt.Fprintln(cmd.OutOrStdout(), "healthy!")
	return nil
}

func printDoctorResults(out, errOut io.Writer, results []doctorResult, verbose bool) {
	width := 0
	for _, r := range results {
		if w := runewidth.StringWidth(r.name); w > width {
			width = w
		}
	}
	for _, r := range results {
		name := runewidth.FillRight(r.name, width)
		switch {
		case errors.Is(r.err, errSkipped):
			if verbose {
				fmt.Fprintf(out, "- %s  %s\n", name, paint(out, colorDetail, "skipped"))
			}
		case r.err != nil:
			fmt.Fprintf(errOut, "%s %s  %v\n", paint(errOut, colorFail, "✗"), name, r.err)
		case verbose:
			fmt.Fprintf(out, "%s %s  %s\n", paint(out, colorGood, "✓"), name, paint(out, colorDetail, r.detail))
		}
	}
}

func checkConfig(dc *doctorContext) (string, error) {
	proj, err := loadProjectFromWD()
	if err != nil {
		return "", err
	}
	dc.Project = proj
	if proj.ConfigPath == "" {
		return "defaults (no .venvboot file under " + proj.Root + ")", nil
	}
	return proj.ConfigPath, nil
}

func checkInterpreterPath(dc *doctorContext) (string, error) {
	if dc.Project == nil {
		return "", errSkipped
	}
	interp, err := python.FindInterpreter(dc.Project.Config.Interpreter)
	if err != nil {
		return "", err
	}
	dc.Interpreter = interp
	return interp.Path, nil
}

func checkInterpreterVersion(dc *doctorContext) (string, error) {
	if dc.Interpreter == nil {
		return "", errSkipped
	}
	found, err := dc.Interpreter.InterpreterVersion(dc.ctx)
	if err != nil {
		return "", err
	}
	required := dc.Project.Config.RequiredVersion()
	if found.Less(required) {
		return "", &bootstrap.VersionMismatchError{Required: required, Found: found}
	}
	return fmt.Sprintf("%s >= %s", found, required), nil
}

func checkVenvModule(dc *doctorContext) (string, error) {
	if dc.Interpreter == nil {
		return "", errSkipped
	}
	if err := dc.Interpreter.HasVenvModule(dc.ctx); err != nil {
		return "", err
	}
	return "available", nil
}

func checkManifest(dc *doctorContext) (string, error) {
	if dc.Project == nil {
		return "", errSkipped
	}
	path := dc.Project.ManifestPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%s: pip will fail to install it", describeFileError(path, err))
	}
	return fmt.Sprintf("%s (%d requirements)", path, countRequirements(string(data))), nil
}

func checkEnvironment(dc *doctorContext) (string, error) {
	if dc.Project == nil {
		return "", errSkipped
	}
	act := activation.New(dc.Project.EnvDir(), nil)
	info, err := os.Stat(act.EnvDir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return "not created yet", nil
	case err != nil:
		return "", err
	case !info.IsDir():
		return "", fmt.Errorf("%s exists but is not a directory", act.EnvDir)
	}
	if _, err := os.Stat(act.Python); err != nil {
		return "", fmt.Errorf("%s: environment is incomplete; delete it and rerun", describeFileError(act.Python, err))
	}
	age := "unknown"
	if cfg, err := os.Stat(filepath.Join(act.EnvDir, "pyvenv.cfg")); err == nil {
		age = timefmt.Age(cfg.ModTime(), dc.now)
	}
	return fmt.Sprintf("%s (created %s)", act.EnvDir, age), nil
}

func describeFileError(path string, err error) string {
	if errors.Is(err, os.ErrNotExist) {
		return path + " does not exist"
	}
	return err.Error()
}

// countRequirements counts requirement lines, ignoring comments and blanks.
func countRequirements(manifest string) int {
	n := 0
	for _, line := range strings.Split(manifest, "\n") {
		line = strings.TrimSpace(line)
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line != "" {
			n++
		}
	}
	return n
}
