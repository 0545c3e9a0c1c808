package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/anyfix/internal/catalog"
	"github.com/nao1215/anyfix/internal/config"
	"github.com/nao1215/anyfix/internal/log"
	"github.com/nao1215/anyfix/internal/model"
)

// projectLookup controls where buildConfig looks for a project file.
type projectLookup int

const (
	// explicitProjectOnly loads a project file only when --config names one.
	explicitProjectOnly projectLookup = iota
	// discoverProject also searches the usual locations (see config.FindConfigFile).
	discoverProject
)

// buildConfig creates a Config from the project file and cobra command flags.
// Flags the user set on the command line take precedence over the project
// file, which takes precedence over the defaults. Flags a command does not
// define are skipped.
func buildConfig(cmd *cobra.Command, lookup projectLookup) (*config.Config, error) {
	cfg := config.NewConfig()

	var err error
	if cfg.Verbose, err = boolFlag(cmd, "verbose"); err != nil {
		return nil, err
	}
	if cfg.LogJSON, err = boolFlag(cmd, "log-json"); err != nil {
		return nil, err
	}
	if cfg.ConfigFilePath, err = stringFlag(cmd, "config"); err != nil {
		return nil, err
	}

	// If user explicitly specified a project file path, error if not found.
	// If no path specified, silently use defaults if no file found.
	var configPath string
	if cfg.ConfigFilePath != "" || lookup == discoverProject {
		configPath = config.FindConfigFile(cfg.ConfigFilePath)
	}
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.Apply(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		f := flags.Lookup(name)
		return f != nil && f.Changed
	}

	if changed("catalog") {
		if cfg.CatalogFile, err = flags.GetString("catalog"); err != nil {
			return nil, err
		}
	}
	if changed("root") {
		if cfg.Root, err = flags.GetString("root"); err != nil {
			return nil, err
		}
	}
	if changed("concurrency") {
		if cfg.Concurrency, err = flags.GetInt("concurrency"); err != nil {
			return nil, err
		}
	}
	if changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}
	if changed("limit") {
		if cfg.HistoryLimit, err = flags.GetInt("limit"); err != nil {
			return nil, err
		}
	}

	if cfg.JSONReport, err = boolFlag(cmd, "json"); err != nil {
		return nil, err
	}
	if cfg.MarkdownReport, err = boolFlag(cmd, "markdown"); err != nil {
		return nil, err
	}
	if cfg.ReportFile, err = stringFlag(cmd, "output"); err != nil {
		return nil, err
	}
	if cfg.SaveToDB, err = boolFlag(cmd, "save"); err != nil {
		return nil, err
	}
	if cfg.AllowDrift, err = boolFlag(cmd, "allow-drift"); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration error: %w", err)
	}
	return cfg, nil
}

// boolFlag returns a bool flag from the command or its parents.
// It returns false when no command defines the flag.
func boolFlag(cmd *cobra.Command, name string) (bool, error) {
	if cmd.Flags().Lookup(name) == nil {
		return false, nil
	}
	return cmd.Flags().GetBool(name)
}

// stringFlag returns a string flag from the command or its parents.
// It returns "" when no command defines the flag.
func stringFlag(cmd *cobra.Command, name string) (string, error) {
	if cmd.Flags().Lookup(name) == nil {
		return "", nil
	}
	return cmd.Flags().GetString(name)
}

// setupLogger creates the structured logger for cfg and makes it the default.
func setupLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	logger := log.NewLogger(w, cfg.Verbose)
	if cfg.LogJSON {
		logger = log.NewJSONLogger(w, cfg.Verbose)
	}
	slog.SetDefault(logger)
	return logger
}

// loadCatalog returns the catalog selected by cfg: the catalog file when one
// is configured, the built-in catalog otherwise.
func loadCatalog(cfg *config.Config, logger *slog.Logger) (*model.Catalog, error) {
	if cfg.CatalogFile == "" {
		c := catalog.Builtin()
		logger.Debug("using built-in catalog", "fixes", c.Len())
		return c, nil
	}

	c, err := catalog.LoadFile(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Debug("loaded catalog file", "path", cfg.CatalogFile, "fixes", c.Len())
	return c, nil
}

// openOutput returns the report destination: stdout, or cfg.ReportFile when
// set. The returned close function must always be called.
func openOutput(cmd *cobra.Command, cfg *config.Config) (io.Writer, func() error, error) {
	if cfg.ReportFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}

	// Create directories if they don't exist
	dir := filepath.Dir(cfg.ReportFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.OpenFile(cfg.ReportFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
