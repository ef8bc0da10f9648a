package cli

import (
	"log/slog"
	"os"

	"github.com/brandonbloom/venvboot/internal/logging"
	"github.com/brandonbloom/venvboot/internal/project"
	"github.com/brandonbloom/venvboot/internal/version"
)

// chdir is venvbootctl's -C flag.
var chdir string

func loadProjectFromWD() (*project.Project, error) {
	wd := chdir
	if wd == "" {
		var err error
		wd, err = os.Getwd()
		if err != nil {
			return nil, err
		}
	}
	proj, err := project.Discover(wd)
	if err != nil {
		return nil, err
	}
	logging.SetDefaultStructuredLogger("venvboot", version.String(), proj.Config.LogLevel)
	slog.Debug("project loaded", "root", proj.Root, "config", proj.ConfigPath)
	return proj, nil
}
