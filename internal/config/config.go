package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/brandonbloom/venvboot/internal/pyversion"
)

// Config captures the settings read from .venvboot.toml and friends.
type Config struct {
	Interpreter      string    `toml:"interpreter"`
	MinVersion       string    `toml:"min_version"`
	EnvDir           string    `toml:"env_dir"`
	Manifest         string    `toml:"manifest"`
	Entry            []string  `toml:"entry"`
	UpgradeInstaller bool      `toml:"upgrade_installer"`
	ExecMode         string    `toml:"exec_mode"`
	LogLevel         string    `toml:"log_level"`
	Venv             VenvBlock `toml:"venv"`
	Pip              PipBlock  `toml:"pip"`
}

// VenvBlock configures environment creation.
type VenvBlock struct {
	SystemSitePackages bool   `toml:"system_site_packages"`
	Prompt             string `toml:"prompt"`
}

// PipBlock configures package installation.
type PipBlock struct {
	IndexURL      string `toml:"index_url"`
	ExtraIndexURL string `toml:"extra_index_url"`
	NoCache       bool   `toml:"no_cache"`
	Quiet         bool   `toml:"quiet"`
}

// Exec modes.
const (
	ExecChild   = "child"
	ExecReplace = "replace"
)

var (
	// ErrMissingInterpreter indicates the interpreter name was blank.
	ErrMissingInterpreter = errors.New("config.interpreter must be set")
	// ErrMissingEnvDir indicates the environment directory was blank.
	ErrMissingEnvDir = errors.New("config.env_dir must be set")
	// ErrMissingManifest indicates the manifest path was blank.
	ErrMissingManifest = errors.New("config.manifest must be set")
	// ErrInvalidExecMode indicates exec_mode is not recognized.
	ErrInvalidExecMode = errors.New("config.exec_mode must be child or replace")
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Interpreter:      "python3",
		MinVersion:       "3.6.0",
		EnvDir:           ".venv",
		Manifest:         "requirements.txt",
		UpgradeInstaller: true,
		ExecMode:         ExecChild,
		LogLevel:         "warn",
	}
}

func (c *Config) normalize() {
	c.Interpreter = strings.TrimSpace(c.Interpreter)
	c.MinVersion = strings.TrimSpace(c.MinVersion)
	c.ExecMode = strings.ToLower(strings.TrimSpace(c.ExecMode))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate ensures the configuration can drive a bootstrap run.
func (c Config) Validate() error {
	if c.Interpreter == "" {
		return ErrMissingInterpreter
	}
	if _, err := pyversion.Parse(c.MinVersion); err != nil {
		return fmt.Errorf("config.min_version: %w", err)
	}
	if c.EnvDir == "" {
		return ErrMissingEnvDir
	}
	if c.Manifest == "" {
		return ErrMissingManifest
	}
	switch c.ExecMode {
	case ExecChild, ExecReplace:
	default:
		return ErrInvalidExecMode
	}
	return nil
}

// RequiredVersion returns the parsed minimum version. Call Validate first.
func (c Config) RequiredVersion() pyversion.Version {
	v, err := pyversion.Parse(c.MinVersion)
	if err != nil {
		return pyversion.Version{}
	}
	return v
}

// Load layers every file in paths over the defaults, in order, then applies
// environment overrides. Missing files are skipped.
func Load(paths ...string) (Config, error) {
	cfg := Default()
	for _, path := range paths {
		layer, err := readLayer(path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return Config{}, err
		}
		layer.apply(&cfg)
	}
	applyEnv(&cfg, os.LookupEnv)
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	overrides := []struct {
		key string
		dst *string
	}{
		{"VENVBOOT_INTERPRETER", &cfg.Interpreter},
		{"VENVBOOT_MIN_VERSION", &cfg.MinVersion},
		{"VENVBOOT_ENV_DIR", &cfg.EnvDir},
		{"VENVBOOT_MANIFEST", &cfg.Manifest},
		{"VENVBOOT_EXEC_MODE", &cfg.ExecMode},
		{"VENVBOOT_LOG_LEVEL", &cfg.LogLevel},
	}
	for _, o := range overrides {
		if v, ok := lookup(o.key); ok && strings.TrimSpace(v) != "" {
			*o.dst = v
		}
	}
}
