package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Extensions lists the config file suffixes Load understands, in lookup
// order.
var Extensions = []string{".toml", ".yaml", ".yml", ".json"}

// ErrUnsupportedFormat indicates a config file suffix Load cannot parse.
var ErrUnsupportedFormat = errors.New("unsupported config file format")

// layer is one config file. Nil fields leave earlier values untouched.
type layer struct {
	Interpreter      *string    `toml:"interpreter" yaml:"interpreter" json:"interpreter"`
	MinVersion       *string    `toml:"min_version" yaml:"min_version" json:"min_version"`
	EnvDir           *string    `toml:"env_dir" yaml:"env_dir" json:"env_dir"`
	Manifest         *string    `toml:"manifest" yaml:"manifest" json:"manifest"`
	Entry            *[]string  `toml:"entry" yaml:"entry" json:"entry"`
	UpgradeInstaller *bool      `toml:"upgrade_installer" yaml:"upgrade_installer" json:"upgrade_installer"`
	ExecMode         *string    `toml:"exec_mode" yaml:"exec_mode" json:"exec_mode"`
	LogLevel         *string    `toml:"log_level" yaml:"log_level" json:"log_level"`
	Venv             *venvLayer `toml:"venv" yaml:"venv" json:"venv"`
	Pip              *pipLayer  `toml:"pip" yaml:"pip" json:"pip"`
}

type venvLayer struct {
	SystemSitePackages *bool   `toml:"system_site_packages" yaml:"system_site_packages" json:"system_site_packages"`
	Prompt             *string `toml:"prompt" yaml:"prompt" json:"prompt"`
}

type pipLayer struct {
	IndexURL      *string `toml:"index_url" yaml:"index_url" json:"index_url"`
	ExtraIndexURL *string `toml:"extra_index_url" yaml:"extra_index_url" json:"extra_index_url"`
	NoCache       *bool   `toml:"no_cache" yaml:"no_cache" json:"no_cache"`
	Quiet         *bool   `toml:"quiet" yaml:"quiet" json:"quiet"`
}

func readLayer(path string) (layer, error) {
	var l layer
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".toml", ".yaml", ".yml", ".json":
	default:
		return l, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return l, err
	}

	switch ext {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		err = dec.Decode(&l)
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		err = dec.Decode(&l)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case ".json":
		clean := jsonc.ToJSON(data)
		if len(bytes.TrimSpace(clean)) == 0 {
			break
		}
		dec := json.NewDecoder(bytes.NewReader(clean))
		dec.DisallowUnknownFields()
		err = dec.Decode(&l)
	}
	if err != nil {
		return layer{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return l, nil
}

func (l layer) apply(cfg *Config) {
	setString(&cfg.Interpreter, l.Interpreter)
	setString(&cfg.MinVersion, l.MinVersion)
	setString(&cfg.EnvDir, l.EnvDir)
	setString(&cfg.Manifest, l.Manifest)
	setString(&cfg.ExecMode, l.ExecMode)
	setString(&cfg.LogLevel, l.LogLevel)
	if l.Entry != nil {
		cfg.Entry = append([]string(nil), (*l.Entry)...)
	}
	setBool(&cfg.UpgradeInstaller, l.UpgradeInstaller)
	if v := l.Venv; v != nil {
		setBool(&cfg.Venv.SystemSitePackages, v.SystemSitePackages)
		setString(&cfg.Venv.Prompt, v.Prompt)
	}
	if p := l.Pip; p != nil {
		setString(&cfg.Pip.IndexURL, p.IndexURL)
		setString(&cfg.Pip.ExtraIndexURL, p.ExtraIndexURL)
		setBool(&cfg.Pip.NoCache, p.NoCache)
		setBool(&cfg.Pip.Quiet, p.Quiet)
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

// Marshal renders cfg as TOML.
func Marshal(cfg Config) ([]byte, error) {
	return toml.Marshal(cfg)
}

// Save writes cfg to path as TOML, creating parent directories as needed.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
