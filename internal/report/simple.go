package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/anyfix/internal/model"
)

// bannerWidth is the width of the "=" rules around the header and summary.
const bannerWidth = 80

// SimpleWriter outputs the plain-text fix report.
//
// The layout is fixed: a title between "=" banners, one block per fix
// ("file:line", "Before: ...", "After:  ...", blank line), then the total
// between banners. Fix text is written verbatim, including any embedded
// newlines.
type SimpleWriter struct {
	baseWriter
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer) *SimpleWriter {
	return &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the catalog as a plain-text report.
func (w *SimpleWriter) Write(catalog *model.Catalog) (int, error) {
	return io.WriteString(w.output, Render(catalog))
}

// Render returns the plain-text report for catalog.
// The result depends only on the catalog: the same records always render to
// the same bytes. Records appear in catalog order.
func Render(catalog *model.Catalog) string {
	var sb strings.Builder
	banner := strings.Repeat("=", bannerWidth)

	// Header
	sb.WriteString(banner + "\n")
	sb.WriteString(Title + "\n")
	sb.WriteString(banner + "\n")
	sb.WriteString("\n")

	// Body
	for _, fix := range catalog.Records() {
		writeFix(&sb, fix)
	}

	// Summary
	sb.WriteString(banner + "\n")
	sb.WriteString("Total fixes: " + strconv.Itoa(catalog.Len()) + "\n")
	sb.WriteString(banner + "\n")

	return sb.String()
}

// writeFix writes one fix block.
func writeFix(sb *strings.Builder, fix model.FixRecord) {
	sb.WriteString(fix.Location() + "\n")
	sb.WriteString("Before: " + fix.Before + "\n")
	sb.WriteString("After:  " + fix.After + "\n")
	sb.WriteString("\n")
}
