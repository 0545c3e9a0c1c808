package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// AppName is the application name used for XDG directory paths.
	AppName = "anyfix"

	// DefaultRoot is the project root catalog paths are resolved against.
	// The catalog paths start with "apps/web", so this is the monorepo root.
	DefaultRoot = "."

	// DefaultConcurrency is the number of records verified at once.
	// Verification is file I/O bound, so a small pool is enough.
	DefaultConcurrency = 8

	// DefaultHistoryLimit is the number of verification runs listed by history.
	DefaultHistoryLimit = 20
)

// Config holds all configuration options for anyfix.
// This struct is populated from the project file and CLI flags and passed
// through the application rather than kept as global state.
type Config struct {
	// Verbose enables detailed log output using slog.LevelDebug.
	// When false, only warnings and errors are logged.
	Verbose bool

	// LogJSON switches log output on stderr from text to JSON lines.
	LogJSON bool

	// ConfigFilePath is the path to the project file.
	// If empty, the tool searches for .anyfix in the current directory
	// and then in the user's home directory.
	ConfigFilePath string

	// CatalogFile is a YAML catalog to use instead of the built-in one.
	CatalogFile string

	// JSONReport enables JSON output.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport enables Markdown output.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file path for the report.
	// When set, the report is written to this file instead of stdout.
	ReportFile string

	// Root is the project root that catalog paths are relative to.
	Root string

	// Concurrency is the number of records verified at once.
	Concurrency int

	// AllowDrift makes verification succeed when records only drifted.
	AllowDrift bool

	// SaveToDB persists verification results to the history database.
	SaveToDB bool

	// DBDir is the directory holding the history database.
	// Defaults to the XDG data directory (~/.local/share/anyfix on Linux).
	DBDir string

	// HistoryLimit is the number of runs listed by the history command.
	HistoryLimit int
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Root:         DefaultRoot,
		Concurrency:  DefaultConcurrency,
		DBDir:        XDGDataDir(),
		HistoryLimit: DefaultHistoryLimit,
	}
}

// Apply copies the values set in a project file onto the config.
// Zero values in the file leave the config unchanged.
func (c *Config) Apply(f *File) {
	if f == nil {
		return
	}
	if f.Catalog != "" {
		c.CatalogFile = f.Catalog
	}
	if f.Root != "" {
		c.Root = f.Root
	}
	if f.Concurrency != 0 {
		c.Concurrency = f.Concurrency
	}
	if f.DBDir != "" {
		c.DBDir = f.DBDir
	}
}

// XDGDataDir returns the XDG data directory for anyfix.
// On Linux: ~/.local/share/anyfix
// On macOS: ~/Library/Application Support/anyfix
// On Windows: %LOCALAPPDATA%\anyfix
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for anyfix.
// On Linux: ~/.config/anyfix
// On macOS: ~/Library/Application Support/anyfix
// On Windows: %APPDATA%\anyfix
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first violated rule; fixing one often makes others irrelevant.
func (c *Config) Validate() error {
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}

	if c.Root == "" {
		return ErrEmptyRoot
	}

	if c.Concurrency <= 0 {
		return ErrInvalidConcurrency
	}

	if c.HistoryLimit <= 0 {
		return ErrInvalidHistoryLimit
	}

	return nil
}
