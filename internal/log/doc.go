// Package log provides logging for anyfix, built on the standard slog
// package.
//
// Fix records carry source text that often spans several lines. Logged as-is
// it would break the one-record-per-line shape of the text handler, so
// SnippetHandler rewrites snippet attributes before they reach the
// underlying handler:
//   - newlines become a visible "⏎" marker
//   - values longer than MaxSnippetLen runes are truncated with "…"
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("checked fix", "before", fix.Before) // single line
//	slog.SetDefault(logger)
package log
