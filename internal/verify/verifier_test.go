package verify

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nao1215/anyfix/internal/model"
)

// writeTree creates files under a temporary root and returns the root.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
			t.Fatalf("failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}
	return root
}

// newTestVerifier creates a Verifier that discards logs.
func newTestVerifier(t *testing.T, root string, opts ...Option) *Verifier {
	t.Helper()

	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	v, err := New(root, opts...)
	if err != nil {
		t.Fatalf("failed to create verifier: %v", err)
	}
	return v
}

const pageSource = `import { useState } from "react";

export default function Page() {
  const [trips, setTrips] = useState<any[]>([]);
  const [blogs, setBlogs] = useState<Blog[]>([]);
  const categoryTrips = allTrips.filter(
    (t: any) =>
      t.category === c,
  );
}
`

// TestVerifierRun tests classification of each record status.
func TestVerifierRun(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{
		"src/page.tsx": pageSource,
	})

	tests := []struct {
		name       string
		fix        model.FixRecord
		wantStatus Status
		wantLine   int
	}{
		{
			name: "before text at recorded line is matched",
			fix: model.FixRecord{
				File:   "src/page.tsx",
				Line:   4,
				Before: "  const [trips, setTrips] = useState<any[]>([]);",
				After:  "  const [trips, setTrips] = useState<Trip[]>([]);",
			},
			wantStatus: StatusMatched,
			wantLine:   4,
		},
		{
			name: "before text at another line is drifted",
			fix: model.FixRecord{
				File:   "src/page.tsx",
				Line:   1,
				Before: "  const [trips, setTrips] = useState<any[]>([]);",
				After:  "  const [trips, setTrips] = useState<Trip[]>([]);",
			},
			wantStatus: StatusDrifted,
			wantLine:   4,
		},
		{
			name: "after text present is applied",
			fix: model.FixRecord{
				File:   "src/page.tsx",
				Line:   5,
				Before: "  const [blogs, setBlogs] = useState<any[]>([]);",
				After:  "  const [blogs, setBlogs] = useState<Blog[]>([]);",
			},
			wantStatus: StatusApplied,
			wantLine:   5,
		},
		{
			name: "unknown text is missing",
			fix: model.FixRecord{
				File:   "src/page.tsx",
				Line:   2,
				Before: "const nothing: any = 1;",
				After:  "const nothing: number = 1;",
			},
			wantStatus: StatusMissing,
		},
		{
			name: "multi-line before text is matched across lines",
			fix: model.FixRecord{
				File:   "src/page.tsx",
				Line:   6,
				Before: "  const categoryTrips = allTrips.filter(\n    (t: any) =>",
				After:  "  const categoryTrips = allTrips.filter(\n    (t: Trip) =>",
			},
			wantStatus: StatusMatched,
			wantLine:   6,
		},
		{
			name: "multi-line before text must be contiguous",
			fix: model.FixRecord{
				File:   "src/page.tsx",
				Line:   6,
				Before: "  const categoryTrips = allTrips.filter(\n      t.category === c,",
				After:  "x",
			},
			wantStatus: StatusMissing,
		},
		{
			name: "unreadable file is file-missing",
			fix: model.FixRecord{
				File:   "src/gone.tsx",
				Line:   1,
				Before: "x",
				After:  "y",
			},
			wantStatus: StatusFileMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			v := newTestVerifier(t, root)
			result, err := v.Run(context.Background(), model.MustNewCatalog([]model.FixRecord{tt.fix}))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(result.Outcomes) != 1 {
				t.Fatalf("expected 1 outcome, got %d", len(result.Outcomes))
			}

			got := result.Outcomes[0]
			if got.Status != tt.wantStatus {
				t.Errorf("status = %q, want %q", got.Status, tt.wantStatus)
			}
			if got.ActualLine != tt.wantLine {
				t.Errorf("actual line = %d, want %d", got.ActualLine, tt.wantLine)
			}
		})
	}
}

func TestVerifierNormalization(t *testing.T) {
	t.Parallel()

	t.Run("CRLF files compare equal", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"a.ts": "line one\r\nconst x: any = 1;\r\n",
		})
		v := newTestVerifier(t, root)

		result, err := v.Run(context.Background(), model.MustNewCatalog([]model.FixRecord{
			{File: "a.ts", Line: 2, Before: "const x: any = 1;", After: "const x: number = 1;"},
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcomes[0].Status != StatusMatched {
			t.Errorf("expected matched, got %q", result.Outcomes[0].Status)
		}
	})

	t.Run("trailing whitespace is ignored", func(t *testing.T) {
		t.Parallel()

		root := writeTree(t, map[string]string{
			"a.tsx": "<Card\n  trip={trip as any} \n/>\n",
		})
		v := newTestVerifier(t, root)

		result, err := v.Run(context.Background(), model.MustNewCatalog([]model.FixRecord{
			{File: "a.tsx", Line: 2, Before: "  trip={trip as any}", After: "  trip={trip}"},
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcomes[0].Status != StatusMatched {
			t.Errorf("expected matched, got %q", result.Outcomes[0].Status)
		}
	})

	t.Run("decomposed unicode matches composed", func(t *testing.T) {
		t.Parallel()

		// "é" as e + combining acute accent in the file, precomposed in the fix.
		root := writeTree(t, map[string]string{
			"a.ts": "const cafe\u0301: any = 1;\n",
		})
		v := newTestVerifier(t, root)

		result, err := v.Run(context.Background(), model.MustNewCatalog([]model.FixRecord{
			{File: "a.ts", Line: 1, Before: "const caf\u00e9: any = 1;", After: "const caf\u00e9: number = 1;"},
		}))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Outcomes[0].Status != StatusMatched {
			t.Errorf("expected matched, got %q", result.Outcomes[0].Status)
		}
	})
}

func TestVerifierNearest(t *testing.T) {
	t.Parallel()

	src := &sourceFile{lines: []string{"x", "a", "x", "b", "c", "x"}}

	tests := []struct {
		name string
		line int
		want int
	}{
		{name: "exact at first line", line: 1, want: 1},
		{name: "exact", line: 3, want: 3},
		{name: "closest above", line: 5, want: 6},
		{name: "tie prefers earlier", line: 2, want: 1},
		{name: "past end", line: 100, want: 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := src.nearest([]string{"x"}, tt.line); got != tt.want {
				t.Errorf("nearest(x, %d) = %d, want %d", tt.line, got, tt.want)
			}
		})
	}

	if got := src.nearest([]string{"nope"}, 1); got != 0 {
		t.Errorf("expected 0 for absent text, got %d", got)
	}
	if src.matchAt([]string{"c", "x", "y"}, 5) {
		t.Error("expected match past end of file to fail")
	}
}

func TestVerifierPaths(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.ts": "x\n"})
	v := newTestVerifier(t, root)

	result, err := v.Run(context.Background(), model.MustNewCatalog([]model.FixRecord{
		{File: "../outside.ts", Line: 1, Before: "x", After: "y"},
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := result.Outcomes[0]
	if got.Status != StatusFileMissing {
		t.Errorf("expected file-missing, got %q", got.Status)
	}
	if !errors.Is(got.Err, ErrOutsideRoot) {
		t.Errorf("expected ErrOutsideRoot, got %v", got.Err)
	}
}

// TestVerifierManyRecords checks ordering and counts under concurrency.
func TestVerifierManyRecords(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	records := make([]model.FixRecord, 0, 200)
	for i := 1; i <= 200; i++ {
		line := "const v" + strings.Repeat("x", i) + ": any = 1;"
		sb.WriteString(line + "\n")
		records = append(records, model.FixRecord{
			File:   "big.ts",
			Line:   i,
			Before: line,
			After:  strings.Replace(line, "any", "number", 1),
		})
	}
	root := writeTree(t, map[string]string{"big.ts": sb.String()})
	v := newTestVerifier(t, root, WithConcurrency(16), WithCacheSize(1))

	catalog := model.MustNewCatalog(records)
	result, err := v.Run(context.Background(), catalog)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := result.Count(StatusMatched); got != 200 {
		t.Errorf("expected 200 matched, got %d", got)
	}
	for i, o := range result.Outcomes {
		if o.Index != i || o.Fix.Line != i+1 {
			t.Fatalf("outcome %d out of order: index=%d line=%d", i, o.Index, o.Fix.Line)
		}
	}
	if !result.OK() {
		t.Error("expected OK result")
	}
	if result.CatalogDigest != catalog.Digest() {
		t.Error("expected result to carry the catalog digest")
	}
}

func TestVerifierCancelled(t *testing.T) {
	t.Parallel()

	root := writeTree(t, map[string]string{"a.ts": "x\n"})
	v := newTestVerifier(t, root)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.Run(ctx, model.MustNewCatalog([]model.FixRecord{
		{File: "a.ts", Line: 1, Before: "x", After: "y"},
	}))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestResult(t *testing.T) {
	t.Parallel()

	fix := model.FixRecord{File: "a.ts", Line: 10, Before: "x", After: "y"}
	r := &Result{Outcomes: []Outcome{
		{Fix: fix, Status: StatusMatched, ActualLine: 10},
		{Fix: fix, Status: StatusDrifted, ActualLine: 13},
		{Fix: fix, Status: StatusApplied, ActualLine: 10},
		{Fix: fix, Status: StatusMissing},
	}}

	if r.Count(StatusDrifted) != 1 {
		t.Errorf("expected 1 drifted, got %d", r.Count(StatusDrifted))
	}
	if r.Failures() != 1 {
		t.Errorf("expected 1 failure, got %d", r.Failures())
	}
	if r.OK() {
		t.Error("expected result not to be OK")
	}
	if got := r.Outcomes[1].Offset(); got != 3 {
		t.Errorf("expected offset 3, got %d", got)
	}
	if got := r.Outcomes[0].Offset(); got != 0 {
		t.Errorf("expected offset 0 for matched, got %d", got)
	}
}
