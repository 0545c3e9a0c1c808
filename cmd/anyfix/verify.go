package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/nao1215/anyfix/internal/config"
	"github.com/nao1215/anyfix/internal/database"
	"github.com/nao1215/anyfix/internal/report"
	"github.com/nao1215/anyfix/internal/verify"
)

// errVerificationFailed is returned when a verification run is not OK.
var errVerificationFailed = errors.New("verification failed")

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check the catalog against a checkout of the web app",
		Long: `Verify reads every file named in the catalog under the project root and
checks whether each fix still applies at its recorded line.

Each fix is reported as one of:
  matched       the 'before' text is at the recorded line
  drifted       the 'before' text moved to another line
  applied       the 'after' text is already in place
  missing       neither text was found
  file-missing  the file could not be read

Files are only read, never modified. The command exits with status 1 when any
fix drifted or could not be found. With --allow-drift, drifted fixes are
reported but do not fail the run.

Examples:
  # Verify the built-in catalog against the current directory
  anyfix verify

  # Verify a checkout elsewhere and record the run
  anyfix verify --root ~/src/web --save

  # Machine-readable result
  anyfix verify --json -o verify.json`,
		Args: cobra.NoArgs,
		RunE: runVerifyCmd,
	}

	addCatalogFlag(cmd)
	cmd.Flags().StringP("root", "r", config.DefaultRoot,
		"Project root that catalog paths are relative to")
	cmd.Flags().IntP("concurrency", "n", config.DefaultConcurrency,
		"Number of fixes verified at once")
	cmd.Flags().Bool("allow-drift", false,
		"Succeed when fixes only drifted to other lines")
	cmd.Flags().BoolP("save", "s", false,
		"Save the result to the history database")
	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().BoolP("json", "j", false, "Output JSON result")
	cmd.Flags().StringP("output", "o", "",
		"Write result to specified file path (creates directories if needed)")

	return cmd
}

// runVerifyCmd executes the verify command.
func runVerifyCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd, discoverProject)
	if err != nil {
		return err
	}
	logger := setupLogger(cfg, cmd.ErrOrStderr())

	// Set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return runVerify(ctx, cmd, cfg, logger)
}

// runVerify verifies the configured catalog and reports the result.
func runVerify(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	c, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	if info, err := os.Stat(root); err != nil {
		return fmt.Errorf("failed to open project root: %w", err)
	} else if !info.IsDir() {
		return fmt.Errorf("project root is not a directory: %s", root)
	}

	v, err := verify.New(root,
		verify.WithConcurrency(cfg.Concurrency),
		verify.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	result, err := v.Run(ctx, c)
	if err != nil {
		return fmt.Errorf("verification interrupted: %w", err)
	}

	if err := writeVerifyResult(cmd, cfg, result); err != nil {
		return err
	}

	if cfg.SaveToDB {
		if err := saveVerifyRun(ctx, cmd.ErrOrStderr(), cfg, result, logger); err != nil {
			return err
		}
	}

	return verifyStatus(cfg, result)
}

// writeVerifyResult writes result in the configured format.
func writeVerifyResult(cmd *cobra.Command, cfg *config.Config, result *verify.Result) error {
	out, closeOut, err := openOutput(cmd, cfg)
	if err != nil {
		return err
	}

	if cfg.JSONReport {
		_, err = report.NewJSONWriter(out, report.WithPrettyPrint()).WriteVerify(result)
	} else {
		_, err = report.NewVerifyWriter(out, report.WithVerbose(cfg.Verbose)).Write(result)
	}
	if cerr := closeOut(); err == nil && cerr != nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("failed to write verification result: %w", err)
	}
	return nil
}

// saveVerifyRun stores result in the history database and reports how it
// differs from the previous run for the same root.
func saveVerifyRun(ctx context.Context, w io.Writer, cfg *config.Config, result *verify.Result, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	previous, err := db.LatestRun(ctx, result.Root)
	if err != nil && !errors.Is(err, database.ErrRunNotFound) {
		return err
	}

	id, err := db.SaveVerifyRun(ctx, result)
	if err != nil {
		return err
	}
	logger.Info("verification run saved", "id", id, "db", db.Path())

	fmt.Fprintf(w, "Saved verification run %s\n", id)
	if previous != nil {
		fmt.Fprintf(w, "Since %s: %s\n",
			previous.StartedAt.Local().Format("2006-01-02 15:04:05"),
			formatRunDelta(*previous, result))
	}
	return nil
}

// verifyStatus returns errVerificationFailed unless result passes.
func verifyStatus(cfg *config.Config, result *verify.Result) error {
	failures := result.Failures()
	drifted := result.Count(verify.StatusDrifted)

	if result.OK() || (cfg.AllowDrift && failures == 0) {
		return nil
	}
	return fmt.Errorf("%w: %d drifted, %d not found", errVerificationFailed, drifted, failures)
}
