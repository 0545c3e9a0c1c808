package report

import (
	"io"

	"github.com/nao1215/anyfix/internal/model"
)

// Title is the heading printed at the top of every fix report.
const Title = "EXACT LINE-BY-LINE 'ANY' TYPE FIXES FOR WEB APP"

// Writer defines the interface for report output.
// Implementations write a fix catalog in various formats.
type Writer interface {
	// Write outputs the catalog to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(catalog *model.Catalog) (int, error)
}

// Format names an output format selectable from the CLI.
type Format string

const (
	// FormatText is the plain-text fix report.
	FormatText Format = "text"
	// FormatJSON is the JSON fix report.
	FormatJSON Format = "json"
	// FormatMarkdown is the Markdown fix report.
	FormatMarkdown Format = "markdown"
)

// NewWriter returns the Writer for format, writing to output.
// Unknown formats fall back to the plain-text report.
func NewWriter(format Format, output io.Writer) Writer {
	switch format {
	case FormatJSON:
		return NewJSONWriter(output, WithPrettyPrint())
	case FormatMarkdown:
		return NewMarkdownWriter(output)
	default:
		return NewSimpleWriter(output)
	}
}

// baseWriter provides common functionality for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
