package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nao1215/anyfix/internal/config"
	"github.com/nao1215/anyfix/internal/report"
)

// runReportCmd prints the fix report. It is the root command's action.
// It never searches for a project file: a bare invocation always prints the
// built-in catalog.
func runReportCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, explicitProjectOnly)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr())

	c, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	out, closeOut, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}

	n, err := report.NewWriter(reportFormat(cfg), out).Write(c)
	if cerr := closeOut(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	logger.Debug("report written", "fixes", c.Len(), "bytes", n, "file", cfg.ReportFile)
	return nil
}

// reportFormat returns the report format selected by cfg.
func reportFormat(cfg *config.Config) report.Format {
	switch {
	case cfg.JSONReport:
		return report.FormatJSON
	case cfg.MarkdownReport:
		return report.FormatMarkdown
	default:
		return report.FormatText
	}
}
