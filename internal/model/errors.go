package model

import (
	"errors"
	"fmt"
)

// Record validation errors.
// These are wrapped by ValidationError so callers can use errors.Is to find
// the violated rule and errors.As to find the offending record.
var (
	// ErrEmptyFile is returned when a record has no target file.
	ErrEmptyFile = errors.New("file must not be empty")

	// ErrInvalidLine is returned when a record's line number is not positive.
	ErrInvalidLine = errors.New("line must be 1 or greater")

	// ErrEmptyBefore is returned when a record has no "before" text.
	ErrEmptyBefore = errors.New("before text must not be empty")

	// ErrEmptyAfter is returned when a record has no "after" text.
	ErrEmptyAfter = errors.New("after text must not be empty")
)

// ValidationError reports a malformed record and its position in the catalog.
type ValidationError struct {
	// Index is the zero-based position of the record in the input sequence.
	Index int

	// Record is a copy of the offending record.
	Record FixRecord

	// Err is the violated rule, one of the Err* sentinels.
	Err error
}

// Error implements the error interface.
// The position is printed 1-based because it is shown to people editing a file.
func (e *ValidationError) Error() string {
	if e.Record.File != "" {
		return fmt.Sprintf("invalid fix #%d (%s): %v", e.Index+1, e.Record.File, e.Err)
	}
	return fmt.Sprintf("invalid fix #%d: %v", e.Index+1, e.Err)
}

// Unwrap returns the violated rule.
func (e *ValidationError) Unwrap() error {
	return e.Err
}
