package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/anyfix/internal/verify"
)

// FileName is the name of the database file inside the database directory.
const FileName = "anyfix.db"

// timeLayout is a fixed-width UTC layout, so stored timestamps sort
// lexically in chronological order.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// ErrRunNotFound is returned when no run matches a query.
var ErrRunNotFound = errors.New("verification run not found")

// HistoryDB stores verification runs and their per-record outcomes.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a HistoryDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s (use CreateIfNotExists option to create)", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return hdb, nil
}

// Path returns the database file path.
func (hdb *HistoryDB) Path() string {
	return hdb.dbPath
}

// Close closes the database connection.
func (hdb *HistoryDB) Close() error {
	return hdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (hdb *HistoryDB) createTables() error {
	schema := `
	-- One row per verify invocation
	CREATE TABLE IF NOT EXISTS verify_runs (
		id TEXT PRIMARY KEY,
		root TEXT NOT NULL,
		catalog_digest TEXT NOT NULL,
		started_at TEXT NOT NULL,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		total INTEGER NOT NULL,
		matched INTEGER NOT NULL,
		drifted INTEGER NOT NULL,
		applied INTEGER NOT NULL,
		missing INTEGER NOT NULL,
		file_missing INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON verify_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_runs_root ON verify_runs(root);

	-- One row per record checked in a run
	CREATE TABLE IF NOT EXISTS verify_outcomes (
		run_id TEXT NOT NULL REFERENCES verify_runs(id) ON DELETE CASCADE,
		idx INTEGER NOT NULL,
		file TEXT NOT NULL,
		line INTEGER NOT NULL,
		status TEXT NOT NULL,
		actual_line INTEGER NOT NULL DEFAULT 0,
		error TEXT,
		PRIMARY KEY (run_id, idx)
	);
	`

	_, err := hdb.db.ExecContext(context.Background(), schema)
	return err
}

// RunSummary is a stored verification run without its outcomes.
type RunSummary struct {
	ID            string        `json:"id"`
	Root          string        `json:"root"`
	CatalogDigest string        `json:"catalog_digest"`
	StartedAt     time.Time     `json:"started_at"`
	Duration      time.Duration `json:"duration"`
	Total         int           `json:"total"`
	Matched       int           `json:"matched"`
	Drifted       int           `json:"drifted"`
	Applied       int           `json:"applied"`
	Missing       int           `json:"missing"`
	FileMissing   int           `json:"file_missing"`
}

// Failures returns the number of records that could not be located.
func (s RunSummary) Failures() int {
	return s.Missing + s.FileMissing
}

// StoredOutcome is one stored record outcome.
type StoredOutcome struct {
	Index      int           `json:"index"`
	File       string        `json:"file"`
	Line       int           `json:"line"`
	Status     verify.Status `json:"status"`
	ActualLine int           `json:"actual_line,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// SaveVerifyRun stores a verification result and returns the new run ID.
// The run and its outcomes are written in one transaction.
func (hdb *HistoryDB) SaveVerifyRun(ctx context.Context, result *verify.Result) (string, error) {
	id := uuid.NewString()

	tx, err := hdb.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback after Commit is a no-op

	_, err = tx.ExecContext(ctx, `
	INSERT INTO verify_runs (id, root, catalog_digest, started_at, duration_ms,
		total, matched, drifted, applied, missing, file_missing)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		result.Root,
		result.CatalogDigest,
		result.StartedAt.UTC().Format(timeLayout),
		result.Duration.Milliseconds(),
		len(result.Outcomes),
		result.Count(verify.StatusMatched),
		result.Count(verify.StatusDrifted),
		result.Count(verify.StatusApplied),
		result.Count(verify.StatusMissing),
		result.Count(verify.StatusFileMissing),
	)
	if err != nil {
		return "", fmt.Errorf("failed to save verification run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO verify_outcomes (run_id, idx, file, line, status, actual_line, error)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return "", fmt.Errorf("failed to prepare outcome insert: %w", err)
	}
	defer stmt.Close()

	for _, o := range result.Outcomes {
		var errText sql.NullString
		if o.Err != nil {
			errText = sql.NullString{String: o.Err.Error(), Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, id, o.Index, o.Fix.File, o.Fix.Line,
			string(o.Status), o.ActualLine, errText); err != nil {
			return "", fmt.Errorf("failed to save outcome %d: %w", o.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit verification run: %w", err)
	}
	return id, nil
}

// runColumns is the column list scanned by scanRun.
const runColumns = `id, root, catalog_digest, started_at, duration_ms,
	total, matched, drifted, applied, missing, file_missing`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRun reads one verify_runs row.
func scanRun(row rowScanner) (RunSummary, error) {
	var (
		s          RunSummary
		startedAt  string
		durationMS int64
	)
	err := row.Scan(&s.ID, &s.Root, &s.CatalogDigest, &startedAt, &durationMS,
		&s.Total, &s.Matched, &s.Drifted, &s.Applied, &s.Missing, &s.FileMissing)
	if err != nil {
		return RunSummary{}, err
	}
	s.StartedAt = parseTimestamp(startedAt)
	s.Duration = time.Duration(durationMS) * time.Millisecond
	return s, nil
}

// ListRuns returns up to limit runs, newest first.
func (hdb *HistoryDB) ListRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	rows, err := hdb.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM verify_runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunSummary
	for rows.Next() {
		s, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, s)
	}
	return runs, rows.Err()
}

// LatestRun returns the most recent run for root.
// If there is none, it returns ErrRunNotFound.
func (hdb *HistoryDB) LatestRun(ctx context.Context, root string) (*RunSummary, error) {
	row := hdb.db.QueryRowContext(ctx,
		`SELECT `+runColumns+` FROM verify_runs WHERE root = ? ORDER BY started_at DESC, rowid DESC LIMIT 1`, root)

	s, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest run: %w", err)
	}
	return &s, nil
}

// GetOutcomes returns the stored outcomes of a run in catalog order.
// If the run does not exist, it returns ErrRunNotFound.
func (hdb *HistoryDB) GetOutcomes(ctx context.Context, runID string) ([]StoredOutcome, error) {
	var exists int
	err := hdb.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM verify_runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	if exists == 0 {
		return nil, ErrRunNotFound
	}

	rows, err := hdb.db.QueryContext(ctx, `
	SELECT idx, file, line, status, actual_line, error
	FROM verify_outcomes WHERE run_id = ? ORDER BY idx
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query outcomes: %w", err)
	}
	defer rows.Close()

	var outcomes []StoredOutcome
	for rows.Next() {
		var (
			o       StoredOutcome
			status  string
			errText sql.NullString
		)
		if err := rows.Scan(&o.Index, &o.File, &o.Line, &status, &o.ActualLine, &errText); err != nil {
			return nil, fmt.Errorf("failed to scan outcome: %w", err)
		}
		o.Status = verify.Status(status)
		o.Error = errText.String
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// timestampFormats contains the timestamp formats that may be stored.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	timeLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05", // SQLite default datetime format
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
