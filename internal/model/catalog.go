package model

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/sha3"
)

// Catalog is an ordered, read-only collection of fix records.
//
// A Catalog is built once with NewCatalog and never changes afterwards.
// Accessors hand out copies, so it is safe to share between goroutines.
// Order is presentation order only; records do not depend on each other.
type Catalog struct {
	records []FixRecord
}

// NewCatalog validates records and returns a catalog holding a copy of them.
// It fails fast on the first malformed record with a *ValidationError, so a
// partially valid input never yields a catalog.
func NewCatalog(records []FixRecord) (*Catalog, error) {
	for i, r := range records {
		if err := r.Validate(); err != nil {
			return nil, &ValidationError{Index: i, Record: r, Err: err}
		}
	}
	copied := make([]FixRecord, len(records))
	copy(copied, records)
	return &Catalog{records: copied}, nil
}

// MustNewCatalog is like NewCatalog but panics on invalid input.
// It is intended for literal tables compiled into the binary.
func MustNewCatalog(records []FixRecord) *Catalog {
	c, err := NewCatalog(records)
	if err != nil {
		panic(err)
	}
	return c
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.records)
}

// Records returns a copy of the records in catalog order.
func (c *Catalog) Records() []FixRecord {
	if c == nil {
		return nil
	}
	out := make([]FixRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Files returns the distinct target files in first-seen order.
func (c *Catalog) Files() []string {
	if c == nil {
		return nil
	}
	seen := make(map[string]bool)
	files := make([]string, 0)
	for _, r := range c.records {
		if seen[r.File] {
			continue
		}
		seen[r.File] = true
		files = append(files, r.File)
	}
	return files
}

// ByFile returns the records targeting file, in catalog order.
func (c *Catalog) ByFile(file string) []FixRecord {
	if c == nil {
		return nil
	}
	var out []FixRecord
	for _, r := range c.records {
		if r.File == file {
			out = append(out, r)
		}
	}
	return out
}

// Digest returns a SHA3-256 hex digest identifying the catalog content.
// Two catalogs with the same records in the same order share a digest.
func (c *Catalog) Digest() string {
	h := sha3.New256()
	if c != nil {
		for _, r := range c.records {
			// Length prefixes keep field boundaries unambiguous.
			fmt.Fprintf(h, "%d:%s|%d|%d:%s|%d:%s\n",
				len(r.File), r.File, r.Line, len(r.Before), r.Before, len(r.After), r.After)
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}
