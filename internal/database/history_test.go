package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/anyfix/internal/model"
	"github.com/nao1215/anyfix/internal/verify"
)

func openTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func sampleResult(root string, startedAt time.Time) *verify.Result {
	fix := func(file string, line int) model.FixRecord {
		return model.FixRecord{File: file, Line: line, Before: "any", After: "string"}
	}
	return &verify.Result{
		Root:          root,
		CatalogDigest: "0123456789abcdef",
		StartedAt:     startedAt,
		Duration:      1500 * time.Millisecond,
		Outcomes: []verify.Outcome{
			{Index: 0, Fix: fix("a.ts", 1), Status: verify.StatusMatched, ActualLine: 1},
			{Index: 1, Fix: fix("a.ts", 5), Status: verify.StatusDrifted, ActualLine: 7},
			{Index: 2, Fix: fix("b.ts", 3), Status: verify.StatusApplied, ActualLine: 3},
			{Index: 3, Fix: fix("c.ts", 9), Status: verify.StatusMissing},
			{Index: 4, Fix: fix("gone.ts", 2), Status: verify.StatusFileMissing, Err: errors.New("no such file")},
		},
	}
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates the database file", func(t *testing.T) {
		t.Parallel()

		dir := filepath.Join(t.TempDir(), "nested", "data")
		db, err := Open(dir, DefaultOptions())
		require.NoError(t, err)
		defer db.Close()

		assert.Equal(t, filepath.Join(dir, FileName), db.Path())
		_, err = os.Stat(db.Path())
		assert.NoError(t, err)
	})

	t.Run("refuses a missing database without CreateIfNotExists", func(t *testing.T) {
		t.Parallel()

		_, err := Open(t.TempDir(), Options{})
		assert.Error(t, err)
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		require.NoError(t, err)
		require.NoError(t, db.Close())

		db, err = Open(dir, Options{EnableWAL: true})
		require.NoError(t, err)
		assert.NoError(t, db.Close())
	})
}

func TestSaveVerifyRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)

	startedAt := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)
	id, err := db.SaveVerifyRun(ctx, sampleResult("/work", startedAt))
	require.NoError(t, err)
	assert.Len(t, id, 36)

	runs, err := db.ListRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "/work", got.Root)
	assert.Equal(t, "0123456789abcdef", got.CatalogDigest)
	assert.True(t, got.StartedAt.Equal(startedAt), "started_at %v", got.StartedAt)
	assert.Equal(t, 1500*time.Millisecond, got.Duration)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 1, got.Matched)
	assert.Equal(t, 1, got.Drifted)
	assert.Equal(t, 1, got.Applied)
	assert.Equal(t, 1, got.Missing)
	assert.Equal(t, 1, got.FileMissing)
	assert.Equal(t, 2, got.Failures())

	outcomes, err := db.GetOutcomes(ctx, id)
	require.NoError(t, err)
	require.Len(t, outcomes, 5)

	assert.Equal(t, StoredOutcome{Index: 1, File: "a.ts", Line: 5, Status: verify.StatusDrifted, ActualLine: 7}, outcomes[1])
	assert.Equal(t, "no such file", outcomes[4].Error)
	assert.Equal(t, verify.StatusFileMissing, outcomes[4].Status)
	assert.Empty(t, outcomes[0].Error)
}

func TestListRuns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := range 5 {
		// Sub-second offsets check that ordering is chronological, not lexical.
		at := base.Add(time.Duration(i)*time.Second + time.Duration(i)*100*time.Millisecond)
		id, err := db.SaveVerifyRun(ctx, sampleResult("/work", at))
		require.NoError(t, err)
		ids = append(ids, id)
	}

	runs, err := db.ListRuns(ctx, 3)
	require.NoError(t, err)
	require.Len(t, runs, 3)
	assert.Equal(t, ids[4], runs[0].ID)
	assert.Equal(t, ids[3], runs[1].ID)
	assert.Equal(t, ids[2], runs[2].ID)

	t.Run("empty database", func(t *testing.T) {
		t.Parallel()

		runs, err := openTestDB(t).ListRuns(ctx, 10)
		require.NoError(t, err)
		assert.Empty(t, runs)
	})
}

func TestLatestRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	db := openTestDB(t)

	_, err := db.LatestRun(ctx, "/work")
	require.ErrorIs(t, err, ErrRunNotFound)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = db.SaveVerifyRun(ctx, sampleResult("/work", base))
	require.NoError(t, err)
	want, err := db.SaveVerifyRun(ctx, sampleResult("/work", base.Add(time.Minute)))
	require.NoError(t, err)
	_, err = db.SaveVerifyRun(ctx, sampleResult("/other", base.Add(time.Hour)))
	require.NoError(t, err)

	got, err := db.LatestRun(ctx, "/work")
	require.NoError(t, err)
	assert.Equal(t, want, got.ID)
}

func TestGetOutcomesUnknownRun(t *testing.T) {
	t.Parallel()

	_, err := openTestDB(t).GetOutcomes(context.Background(), "no-such-run")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "fixed layout",
			input: "2026-03-01T12:30:00.250000000Z",
			want:  time.Date(2026, 3, 1, 12, 30, 0, 250000000, time.UTC),
		},
		{
			name:  "RFC3339",
			input: "2026-03-01T12:30:00Z",
			want:  time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		{
			name:  "SQLite datetime",
			input: "2026-03-01 12:30:00",
			want:  time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC),
		},
		{name: "garbage", input: "yesterday", want: time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.True(t, tt.want.Equal(parseTimestamp(tt.input)), "got %v", parseTimestamp(tt.input))
		})
	}
}
