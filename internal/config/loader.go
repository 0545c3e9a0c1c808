package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default project file name.
const DefaultConfigFile = ".anyfix"

// XDGConfigFile is the user-wide project file name inside XDGConfigDir.
// The directory already names the tool, so the file is not a dotfile.
const XDGConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the project file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .anyfix project file.
//
//	catalog: tools/any-fixes.yaml
//	root: .
//	concurrency: 4
type File struct {
	// Catalog is a catalog file used instead of the built-in catalog.
	Catalog string `yaml:"catalog,omitempty"`

	// Root is the project root catalog paths are relative to.
	Root string `yaml:"root,omitempty"`

	// Concurrency is the number of records verified at once.
	Concurrency int `yaml:"concurrency,omitempty"`

	// DBDir overrides the history database directory.
	DBDir string `yaml:"dbDir,omitempty"`
}

// LoadConfigFile loads a project file.
// If the file does not exist, it returns ErrConfigNotFound.
// Relative paths in the file are resolved against the file's directory, so
// the same file works from any working directory.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	cf.Catalog = resolve(dir, cf.Catalog)
	cf.Root = resolve(dir, cf.Root)
	cf.DBDir = resolve(dir, cf.DBDir)

	return &cf, nil
}

// resolve makes p relative to dir unless it is empty or absolute.
func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// FindConfigFile searches for the project file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .anyfix in the current directory
// 3. Look for .anyfix in the user's home directory
// 4. Look for XDGConfigFile in the XDG config directory (~/.config/anyfix/config.yaml)
//
// Returns the path to the project file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	// If explicit path is provided, use it
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	// Check current directory
	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	// Check home directory
	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	// Check XDG config directory
	xdgConfig := filepath.Join(XDGConfigDir(), XDGConfigFile)
	if _, err := os.Stat(xdgConfig); err == nil {
		return xdgConfig
	}

	return ""
}
