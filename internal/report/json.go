package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/anyfix/internal/model"
)

// JSONWriter outputs reports in JSON format.
// This format is designed for tool integration and programmatic processing.
type JSONWriter struct {
	baseWriter
	// indent enables pretty-printed JSON output.
	// When false, output is compact (no extra whitespace).
	indent bool
	// indentPrefix is the prefix for each line in indented output.
	indentPrefix string
	// indentString is the indentation string (typically "  " or "\t").
	indentString string
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithIndent enables pretty-printed JSON output.
// The prefix is prepended to each line, and indent is used for each level.
func WithIndent(prefix, indent string) JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
		w.indentPrefix = prefix
		w.indentString = indent
	}
}

// WithPrettyPrint enables pretty-printed JSON with default indentation.
// This is a convenience wrapper for WithIndent("", "  ").
func WithPrettyPrint() JSONWriterOption {
	return WithIndent("", "  ")
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// JSONReport is the JSON document written by JSONWriter.
type JSONReport struct {
	// Title is the report heading.
	Title string `json:"title"`
	// Total is the number of fixes.
	Total int `json:"total"`
	// Fixes are the catalog records in catalog order.
	Fixes []model.FixRecord `json:"fixes"`
}

// NewJSONReport builds the JSON document for catalog.
func NewJSONReport(catalog *model.Catalog) *JSONReport {
	fixes := catalog.Records()
	if fixes == nil {
		fixes = []model.FixRecord{}
	}
	return &JSONReport{
		Title: Title,
		Total: len(fixes),
		Fixes: fixes,
	}
}

// Write outputs the catalog in JSON format.
func (w *JSONWriter) Write(catalog *model.Catalog) (int, error) {
	return w.writeJSON(NewJSONReport(catalog))
}

// writeJSON marshals the given value to JSON and writes it to the output.
func (w *JSONWriter) writeJSON(v any) (int, error) {
	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(v, w.indentPrefix, w.indentString)
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return 0, err
	}

	// Add trailing newline for better terminal output
	data = append(data, '\n')
	return w.output.Write(data)
}
