package verify

import (
	"time"

	"github.com/nao1215/anyfix/internal/model"
)

// Status is the verification outcome of one fix record.
type Status string

const (
	// StatusMatched means the "before" text is at the recorded line.
	StatusMatched Status = "matched"
	// StatusDrifted means the "before" text was found at a different line.
	StatusDrifted Status = "drifted"
	// StatusApplied means the "after" text is present and "before" is not.
	StatusApplied Status = "applied"
	// StatusMissing means neither text was found in the file.
	StatusMissing Status = "missing"
	// StatusFileMissing means the target file could not be read.
	StatusFileMissing Status = "file-missing"
)

// Statuses lists every status in report order.
var Statuses = []Status{
	StatusMatched,
	StatusDrifted,
	StatusApplied,
	StatusMissing,
	StatusFileMissing,
}

// IsFailure reports whether the status means the fix can no longer be
// located. Drift is not a failure: the fix still applies, at another line.
func (s Status) IsFailure() bool {
	return s == StatusMissing || s == StatusFileMissing
}

// Outcome is the verification result for one record.
type Outcome struct {
	// Index is the record's position in the catalog.
	Index int `json:"index"`

	// Fix is the verified record.
	Fix model.FixRecord `json:"fix"`

	// Status is the classification.
	Status Status `json:"status"`

	// ActualLine is the 1-based line where the "before" text (or, for
	// StatusApplied, the "after" text) was found. Zero when not found.
	ActualLine int `json:"actual_line,omitempty"`

	// Err is the read error for StatusFileMissing.
	Err error `json:"-"`
}

// Offset returns how far the text moved from the recorded line.
// It is zero unless the record drifted.
func (o Outcome) Offset() int {
	if o.Status != StatusDrifted {
		return 0
	}
	return o.ActualLine - o.Fix.Line
}

// Result is the outcome of one verification run.
type Result struct {
	// Root is the directory the catalog paths were resolved against.
	Root string `json:"root"`

	// CatalogDigest identifies the verified catalog.
	CatalogDigest string `json:"catalog_digest"`

	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is how long the run took.
	Duration time.Duration `json:"duration"`

	// Outcomes holds one entry per record, in catalog order.
	Outcomes []Outcome `json:"outcomes"`
}

// Count returns the number of outcomes with the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Failures returns the number of records that could not be located.
func (r *Result) Failures() int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status.IsFailure() {
			n++
		}
	}
	return n
}

// OK reports whether every record is either matched or already applied.
func (r *Result) OK() bool {
	return r.Failures() == 0 && r.Count(StatusDrifted) == 0
}
