package project

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/brandonbloom/venvboot/internal/config"
	"github.com/brandonbloom/venvboot/internal/gitutil"
)

// Project is a directory venvboot provisions an environment for.
type Project struct {
	Root string
	// ConfigPath is the project-level config file, empty when none exists.
	ConfigPath string
	Config     config.Config
}

// Discover locates the project root from start and loads its configuration.
//
// The root is the nearest ancestor holding a .venvboot config file, else the
// enclosing git worktree, else start itself.
func Discover(start string) (*Project, error) {
	start, err := filepath.Abs(start)
	if err != nil {
		return nil, err
	}
	root, cfgPath := locateRoot(start)
	if root == "" {
		top, err := gitutil.TopLevel(start)
		switch {
		case err == nil:
			root = top
		case errors.Is(err, gitutil.ErrNoGit), gitutil.IsNotRepository(err):
			root = start
		default:
			slog.Warn("git root lookup failed; using working directory", "dir", start, "error", err)
			root = start
		}
	}
	return Load(root, cfgPath)
}

// Load reads the layered configuration for a known root.
func Load(root, cfgPath string) (*Project, error) {
	cfg, err := config.Load(config.SearchPaths(root)...)
	if err != nil {
		return nil, err
	}
	return &Project{
		Root:       root,
		ConfigPath: cfgPath,
		Config:     cfg,
	}, nil
}

func locateRoot(start string) (string, string) {
	cur := start
	for {
		for _, path := range config.ProjectPaths(cur) {
			if isFile(path) {
				return cur, path
			}
		}
		next := filepath.Dir(cur)
		if next == cur {
			return "", ""
		}
		cur = next
	}
}

// EnvDir returns the absolute environment directory.
func (p *Project) EnvDir() string {
	return p.resolve(p.Config.EnvDir)
}

// ManifestPath returns the absolute dependency manifest path.
func (p *Project) ManifestPath() string {
	return p.resolve(p.Config.Manifest)
}

func (p *Project) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(p.Root, path)
}

// DefaultConfigPath is where `venvbootctl init` writes a new config.
func (p *Project) DefaultConfigPath() string {
	return filepath.Join(p.Root, config.ProjectFileBase+".toml")
}

func isFile(path string) bool {
	fi, err := os.Stat(path)
	if err != nil {
		return false
	}
	return fi.Mode().IsRegular()
}
