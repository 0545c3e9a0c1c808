// Package verify checks a fix catalog against the source tree it targets.
//
// The catalog's line numbers and "before" text were accurate when the
// catalog was written, but files keep changing. A Verifier reads every target
// file once and classifies each record:
//
//   - matched: the "before" text is still at the recorded line
//   - drifted: the "before" text is somewhere else in the file
//   - applied: the "after" text is present and the "before" text is gone
//   - missing: neither text is present
//   - file-missing: the file cannot be read
//
// Verification is read-only. Nothing in this package edits files.
//
// Records are checked concurrently using errgroup with a concurrency limit.
// Results keep catalog order.
package verify
