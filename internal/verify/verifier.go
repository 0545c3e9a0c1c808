package verify

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nao1215/anyfix/internal/model"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultConcurrency is the number of records checked at once.
	DefaultConcurrency = 8

	// DefaultCacheSize is the number of parsed files kept in memory.
	// The built-in catalog touches a dozen files.
	DefaultCacheSize = 64
)

// cachedSource is a cache entry. Read errors are cached too, so a missing
// file is only stat'ed once per run.
type cachedSource struct {
	file *sourceFile
	err  error
}

// Verifier checks catalog records against files under a project root.
// A Verifier is safe for concurrent use.
type Verifier struct {
	// root is the directory catalog paths are resolved against.
	root string

	// concurrency is the maximum number of records checked at once.
	concurrency int

	// cacheSize bounds the number of parsed files held in memory.
	cacheSize int

	// logger is used for per-record debug logging.
	logger *slog.Logger

	// cache holds parsed files keyed by catalog path.
	cache *lru.Cache[string, cachedSource]

	// loads collapses concurrent reads of the same file into one.
	loads singleflight.Group
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithConcurrency sets the maximum number of records checked at once.
// Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.concurrency = n
		}
	}
}

// WithCacheSize sets how many parsed files are kept in memory.
// Values below 1 are ignored.
func WithCacheSize(n int) Option {
	return func(v *Verifier) {
		if n > 0 {
			v.cacheSize = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(v *Verifier) {
		v.logger = logger
	}
}

// New creates a Verifier for the project at root.
func New(root string, opts ...Option) (*Verifier, error) {
	v := &Verifier{
		root:        root,
		concurrency: DefaultConcurrency,
		cacheSize:   DefaultCacheSize,
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.logger == nil {
		v.logger = slog.Default()
	}

	cache, err := lru.New[string, cachedSource](v.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create file cache: %w", err)
	}
	v.cache = cache

	return v, nil
}

// Run verifies every record of catalog.
//
// A record whose file cannot be read is an outcome (StatusFileMissing), not
// an error. Run only fails when ctx is cancelled, in which case the partial
// result is discarded.
func (v *Verifier) Run(ctx context.Context, catalog *model.Catalog) (*Result, error) {
	result := &Result{
		Root:          v.root,
		CatalogDigest: catalog.Digest(),
		StartedAt:     time.Now(),
		Outcomes:      make([]Outcome, catalog.Len()),
	}

	v.logger.Info("starting verification",
		"root", v.root,
		"fixes", catalog.Len(),
		"files", len(catalog.Files()),
		"concurrency", v.concurrency,
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(v.concurrency)

	for i, fix := range catalog.Records() {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			// Each goroutine owns its own slot, so no lock is needed.
			result.Outcomes[i] = v.check(i, fix)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(result.StartedAt)
	v.logger.Info("verification complete",
		"matched", result.Count(StatusMatched),
		"drifted", result.Count(StatusDrifted),
		"applied", result.Count(StatusApplied),
		"failures", result.Failures(),
		"elapsed", result.Duration,
	)

	return result, nil
}

// check classifies a single record.
func (v *Verifier) check(index int, fix model.FixRecord) Outcome {
	out := Outcome{Index: index, Fix: fix}

	src, err := v.source(fix.File)
	if err != nil {
		out.Status = StatusFileMissing
		out.Err = err
		v.logger.Warn("cannot read target file", "file", fix.File, "error", err)
		return out
	}

	before := splitLines(fix.Before)
	after := splitLines(fix.After)

	if src.matchAt(before, fix.Line) {
		out.Status = StatusMatched
		out.ActualLine = fix.Line
	} else if line := src.nearest(before, fix.Line); line > 0 {
		out.Status = StatusDrifted
		out.ActualLine = line
	} else if line := src.nearest(after, fix.Line); line > 0 {
		out.Status = StatusApplied
		out.ActualLine = line
	} else {
		out.Status = StatusMissing
	}

	v.logger.Debug("checked fix",
		"location", fix.Location(),
		"status", out.Status,
		"actual_line", out.ActualLine,
		"before", fix.Before,
	)

	return out
}

// source returns the parsed file, reading it at most once per cache lifetime.
func (v *Verifier) source(file string) (*sourceFile, error) {
	if cached, ok := v.cache.Get(file); ok {
		return cached.file, cached.err
	}

	res, _, _ := v.loads.Do(file, func() (any, error) {
		src, err := readSource(v.root, file)
		entry := cachedSource{file: src, err: err}
		v.cache.Add(file, entry)
		return entry, nil
	})

	entry := res.(cachedSource) //nolint:forcetypeassert // Do only ever stores cachedSource
	return entry.file, entry.err
}
