package config

import (
	"os"
	"path/filepath"
)

// ProjectFileBase is the project-level config file name without suffix.
const ProjectFileBase = ".venvboot"

// XDGConfigHome returns $XDG_CONFIG_HOME, falling back to ~/.config.
func XDGConfigHome() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config")
}

// UserPaths lists candidate user-level config files.
func UserPaths() []string {
	base := XDGConfigHome()
	if base == "" {
		return nil
	}
	paths := make([]string, 0, len(Extensions))
	for _, ext := range Extensions {
		paths = append(paths, filepath.Join(base, "venvboot", "config"+ext))
	}
	return paths
}

// ProjectPaths lists candidate project-level config files under root.
func ProjectPaths(root string) []string {
	paths := make([]string, 0, len(Extensions))
	for _, ext := range Extensions {
		paths = append(paths, filepath.Join(root, ProjectFileBase+ext))
	}
	return paths
}

// SearchPaths returns user paths followed by project paths, the order Load
// layers them in.
func SearchPaths(root string) []string {
	return append(UserPaths(), ProjectPaths(root)...)
}
