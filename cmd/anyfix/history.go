package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/anyfix/internal/config"
	"github.com/nao1215/anyfix/internal/database"
	"github.com/nao1215/anyfix/internal/verify"
)

// historyTimeFormat is the timestamp layout used in history listings.
const historyTimeFormat = "2006-01-02 15:04:05"

// NewHistoryCmd creates the history command.
// This command lists verification runs saved with 'anyfix verify --save'.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List saved verification runs",
		Long: `History lists verification runs saved with 'anyfix verify --save',
newest first, so drift in the web app can be followed over time.

Examples:
  # List the last 20 runs
  anyfix history

  # List the last 5 runs as JSON
  anyfix history -n 5 --json

  # Show every fix of one run
  anyfix history --run 3f1c9a52-8d7e-4b0a-9d51-2f6f0e8b7c11`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().IntP("limit", "n", config.DefaultHistoryLimit,
		"Maximum number of runs to list")
	cmd.Flags().String("run", "",
		"Show the outcome of every fix in the run with this ID")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, discoverProject)
	if err != nil {
		return err
	}
	setupLogger(cfg, cmd.ErrOrStderr())

	runID, err := cmd.Flags().GetString("run")
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	// Reading history never creates the database.
	if _, err := os.Stat(filepath.Join(cfg.DBDir, database.FileName)); os.IsNotExist(err) {
		if runID != "" {
			return fmt.Errorf("failed to load run %s: %w", runID, database.ErrRunNotFound)
		}
		return listRuns(out, cfg, nil)
	}

	db, err := database.Open(cfg.DBDir, database.Options{})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if runID != "" {
		outcomes, err := db.GetOutcomes(ctx, runID)
		if err != nil {
			return fmt.Errorf("failed to load run %s: %w", runID, err)
		}
		if cfg.JSONReport {
			return writeHistoryJSON(out, outcomes)
		}
		printOutcomes(out, runID, outcomes)
		return nil
	}

	runs, err := db.ListRuns(ctx, cfg.HistoryLimit)
	if err != nil {
		return err
	}
	return listRuns(out, cfg, runs)
}

// listRuns writes runs in the configured format.
func listRuns(w io.Writer, cfg *config.Config, runs []database.RunSummary) error {
	if cfg.JSONReport {
		if runs == nil {
			runs = []database.RunSummary{}
		}
		return writeHistoryJSON(w, runs)
	}
	printRuns(w, runs)
	return nil
}

// writeHistoryJSON writes v as indented JSON.
func writeHistoryJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printRuns prints a table of runs.
func printRuns(w io.Writer, runs []database.RunSummary) {
	if len(runs) == 0 {
		fmt.Fprintln(w, "No verification runs found.")
		fmt.Fprintln(w, "\nUse 'anyfix verify --save' to record a run.")
		return
	}

	fmt.Fprintf(w, "Verification history (%d runs):\n\n", len(runs))
	fmt.Fprintf(w, "  %-36s  %-19s  %7s  %7s  %7s  %7s  %s\n",
		"ID", "Date", "Matched", "Drifted", "Applied", "Missing", "Root")
	fmt.Fprintln(w, "  "+strings.Repeat("-", 110))
	for _, r := range runs {
		fmt.Fprintf(w, "  %-36s  %-19s  %7d  %7d  %7d  %7d  %s\n",
			r.ID,
			r.StartedAt.Local().Format(historyTimeFormat),
			r.Matched, r.Drifted, r.Applied, r.Failures(),
			r.Root,
		)
	}
	fmt.Fprintln(w, "\nUse 'anyfix history --run <id>' to see every fix of a run.")
}

// printOutcomes prints the stored outcomes of one run.
func printOutcomes(w io.Writer, runID string, outcomes []database.StoredOutcome) {
	fmt.Fprintf(w, "Verification run %s (%d fixes):\n\n", runID, len(outcomes))
	for _, o := range outcomes {
		line := fmt.Sprintf("  %-14s %s:%d", "["+string(o.Status)+"]", o.File, o.Line)
		switch {
		case o.Status == verify.StatusDrifted:
			line += fmt.Sprintf(" -> line %d", o.ActualLine)
		case o.Error != "":
			line += ": " + o.Error
		}
		fmt.Fprintln(w, line)
	}
}

// formatRunDelta describes how result differs from a previous run,
// e.g. "drifted +2, missing -1". It returns "no change" when the counts match.
func formatRunDelta(previous database.RunSummary, result *verify.Result) string {
	counts := []struct {
		name      string
		prev, cur int
	}{
		{"matched", previous.Matched, result.Count(verify.StatusMatched)},
		{"drifted", previous.Drifted, result.Count(verify.StatusDrifted)},
		{"applied", previous.Applied, result.Count(verify.StatusApplied)},
		{"missing", previous.Missing, result.Count(verify.StatusMissing)},
		{"file-missing", previous.FileMissing, result.Count(verify.StatusFileMissing)},
	}

	var parts []string
	for _, c := range counts {
		if d := c.cur - c.prev; d != 0 {
			parts = append(parts, fmt.Sprintf("%s %+d", c.name, d))
		}
	}
	if len(parts) == 0 {
		return "no change"
	}
	return strings.Join(parts, ", ")
}
