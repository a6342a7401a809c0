// Package config loads the optional relnotes YAML config file and folds its
// values into the parsed flags. Flags always win over file values.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/thirukguru/relnotes/model"
	"gopkg.in/yaml.v3"
)

const defaultConfigName = ".relnotes.yaml"

// File is the on-disk shape of the config file.
type File struct {
	ReleasesDir string `yaml:"releases_dir,omitempty"`
	DBPath      string `yaml:"db_path,omitempty"`
	GitHubRepo  string `yaml:"github_repo,omitempty"`
	Output      string `yaml:"output,omitempty"`
	Top         int    `yaml:"top,omitempty"`
}

// NewService creates a new config service.
func NewService() Service {
	return &service{}
}

type service struct{}

// Service resolves the effective configuration for a run.
type Service interface {
	Load(path string) (File, error)
	Apply(flags model.Flags, file File, explicit map[string]bool) model.Flags
}

// Load reads the config file at path, or the default location when path is
// empty. A missing default file is not an error.
func (s *service) Load(path string) (File, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		path = defaultConfigName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return File{}, nil
		}
		return File{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file File
	if err := yaml.Unmarshal(data, &file); err != nil {
		return File{}, fmt.Errorf("failed to parse config %s: %w", filepath.Clean(path), err)
	}
	if file.Output != "" && file.Output != "table" && file.Output != "json" && file.Output != "markdown" {
		return File{}, fmt.Errorf("config %s: unsupported output format: %s", path, file.Output)
	}
	return file, nil
}

// Apply overlays file values onto flags the user did not set explicitly.
// The explicit set carries pflag's Changed state keyed by flag name.
func (s *service) Apply(flags model.Flags, file File, explicit map[string]bool) model.Flags {
	if file.ReleasesDir != "" && !explicit["dir"] {
		flags.Dir = file.ReleasesDir
	}
	if file.DBPath != "" && !explicit["db-path"] {
		flags.DBPath = file.DBPath
	}
	if file.Output != "" && !explicit["output"] {
		flags.Output = file.Output
	}
	if file.Top > 0 && !explicit["top"] {
		flags.Top = file.Top
	}
	return flags
}
