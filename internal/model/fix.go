package model

import (
	"strconv"
	"strings"
)

// FixRecord is one suggested edit: replace Before with After at Line of File.
//
// Before and After are opaque source text. They may span several physical
// lines joined with "\n" and are never parsed.
type FixRecord struct {
	// File is the path of the target source file, relative to the project root.
	// It is not checked for existence.
	File string `json:"file" yaml:"file"`

	// Line is the 1-based line number of the first line of Before at the
	// time the record was authored. It may drift as the file changes.
	Line int `json:"line" yaml:"line"`

	// Before is the literal text expected to occupy Line.
	Before string `json:"before" yaml:"before"`

	// After is the literal replacement text.
	After string `json:"after" yaml:"after"`
}

// Location returns the "file:line" form used in reports.
func (f FixRecord) Location() string {
	return f.File + ":" + strconv.Itoa(f.Line)
}

// BeforeLines returns Before split into physical lines.
func (f FixRecord) BeforeLines() []string {
	return strings.Split(f.Before, "\n")
}

// AfterLines returns After split into physical lines.
func (f FixRecord) AfterLines() []string {
	return strings.Split(f.After, "\n")
}

// Validate checks the record invariants and returns the first violation.
// The returned error is one of the Err* sentinels in this package.
func (f FixRecord) Validate() error {
	switch {
	case strings.TrimSpace(f.File) == "":
		return ErrEmptyFile
	case f.Line < 1:
		return ErrInvalidLine
	case f.Before == "":
		return ErrEmptyBefore
	case f.After == "":
		return ErrEmptyAfter
	}
	return nil
}
