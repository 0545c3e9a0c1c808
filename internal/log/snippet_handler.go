package log

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"unicode/utf8"
)

// MaxSnippetLen is the maximum number of runes kept from a snippet value.
const MaxSnippetLen = 120

// newlineMarker replaces line breaks inside snippet values.
const newlineMarker = "⏎"

// snippetKeys contains attribute keys whose values are source text.
var snippetKeys = map[string]bool{
	"before":    true,
	"after":     true,
	"line_text": true,
	"snippet":   true,
}

// SnippetHandler wraps an slog.Handler to keep source snippets on one line.
// It rewrites string attributes whose key names a snippet and passes every
// other attribute through untouched.
//
// Design decision: We use a handler wrapper rather than a custom logger so it
// works with any underlying handler (text, JSON) and standard slog APIs.
type SnippetHandler struct {
	// handler is the underlying slog handler that receives rewritten records.
	handler slog.Handler
}

// NewSnippetHandler creates a new SnippetHandler wrapping the given handler.
// If handler is nil, the returned SnippetHandler will use slog.Default().Handler().
func NewSnippetHandler(handler slog.Handler) *SnippetHandler {
	if handler == nil {
		handler = slog.Default().Handler()
	}
	return &SnippetHandler{handler: handler}
}

// Enabled reports whether the handler handles records at the given level.
// It delegates to the underlying handler.
func (h *SnippetHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

// Handle rewrites the record's snippet attributes and passes it on.
func (h *SnippetHandler) Handle(ctx context.Context, r slog.Record) error {
	rewritten := slog.NewRecord(r.Time, r.Level, r.Message, r.PC)

	r.Attrs(func(a slog.Attr) bool {
		rewritten.AddAttrs(h.rewriteAttr(a))
		return true
	})

	return h.handler.Handle(ctx, rewritten)
}

// WithAttrs returns a new handler with the given attributes added.
// Attributes are rewritten before being added.
func (h *SnippetHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	rewritten := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		rewritten[i] = h.rewriteAttr(a)
	}
	return &SnippetHandler{handler: h.handler.WithAttrs(rewritten)}
}

// WithGroup returns a new handler with the given group name.
func (h *SnippetHandler) WithGroup(name string) slog.Handler {
	return &SnippetHandler{handler: h.handler.WithGroup(name)}
}

// rewriteAttr rewrites a single attribute, recursively handling groups.
func (h *SnippetHandler) rewriteAttr(a slog.Attr) slog.Attr {
	if a.Value.Kind() == slog.KindGroup {
		attrs := a.Value.Group()
		rewritten := make([]slog.Attr, len(attrs))
		for i, groupAttr := range attrs {
			rewritten[i] = h.rewriteAttr(groupAttr)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(rewritten...)}
	}

	if a.Value.Kind() != slog.KindString || !snippetKeys[strings.ToLower(a.Key)] {
		return a
	}
	return slog.String(a.Key, FlattenSnippet(a.Value.String()))
}

// FlattenSnippet returns s on a single line, truncated to MaxSnippetLen runes.
func FlattenSnippet(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\n", newlineMarker)

	if utf8.RuneCountInString(s) <= MaxSnippetLen {
		return s
	}
	runes := []rune(s)
	return string(runes[:MaxSnippetLen-1]) + "…"
}

// NewLogger creates a new slog.Logger that writes single-line records.
//
// Parameters:
//   - w: The io.Writer to write log output to (typically os.Stderr)
//   - verbose: If true, sets log level to Debug; otherwise Warn
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSnippetHandler(slog.NewTextHandler(w, handlerOptions(verbose))))
}

// NewJSONLogger creates a new slog.Logger that outputs JSON.
// Useful for structured log aggregation in CI.
func NewJSONLogger(w io.Writer, verbose bool) *slog.Logger {
	return slog.New(NewSnippetHandler(slog.NewJSONHandler(w, handlerOptions(verbose))))
}

// handlerOptions returns the level configuration shared by both loggers.
func handlerOptions(verbose bool) *slog.HandlerOptions {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return &slog.HandlerOptions{Level: level}
}
