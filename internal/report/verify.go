package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/anyfix/internal/verify"
)

// VerifyTitle is the heading printed at the top of a verification report.
const VerifyTitle = "VERIFICATION OF 'ANY' TYPE FIXES"

// VerifyWriter outputs verification results as plain text.
type VerifyWriter struct {
	baseWriter
	// verbose includes matched records, which are hidden by default.
	verbose bool
}

// VerifyWriterOption configures a VerifyWriter.
type VerifyWriterOption func(*VerifyWriter)

// WithVerbose lists every record, including matched ones.
func WithVerbose(verbose bool) VerifyWriterOption {
	return func(w *VerifyWriter) {
		w.verbose = verbose
	}
}

// NewVerifyWriter creates a VerifyWriter that outputs to the given writer.
func NewVerifyWriter(output io.Writer, opts ...VerifyWriterOption) *VerifyWriter {
	w := &VerifyWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the verification result.
func (w *VerifyWriter) Write(result *verify.Result) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, result)
	w.writeOutcomes(&sb, result)
	w.writeSummary(&sb, result)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the title and run information.
func (w *VerifyWriter) writeHeader(sb *strings.Builder, result *verify.Result) {
	sb.WriteString(strings.Repeat("=", bannerWidth) + "\n")
	sb.WriteString(VerifyTitle + "\n")
	sb.WriteString(strings.Repeat("=", bannerWidth) + "\n\n")

	sb.WriteString(fmt.Sprintf("Root:    %s\n", result.Root))
	sb.WriteString(fmt.Sprintf("Catalog: %s\n\n", shortDigest(result.CatalogDigest)))
}

// writeOutcomes writes one line per record that needs attention.
func (w *VerifyWriter) writeOutcomes(sb *strings.Builder, result *verify.Result) {
	written := 0
	for _, o := range result.Outcomes {
		if o.Status == verify.StatusMatched && !w.verbose {
			continue
		}
		sb.WriteString(formatOutcome(o) + "\n")
		written++
	}
	if written == 0 {
		sb.WriteString("All fixes are at their recorded lines.\n")
	}
	sb.WriteString("\n")
}

// formatOutcome renders a single outcome line.
func formatOutcome(o verify.Outcome) string {
	label := fmt.Sprintf("%-14s", "["+string(o.Status)+"]")
	line := label + " " + o.Fix.Location()

	switch o.Status {
	case verify.StatusDrifted:
		line += fmt.Sprintf(" -> line %d (%+d)", o.ActualLine, o.Offset())
	case verify.StatusApplied:
		line += fmt.Sprintf(" (after text at line %d)", o.ActualLine)
	case verify.StatusFileMissing:
		if o.Err != nil {
			line += ": " + o.Err.Error()
		}
	case verify.StatusMatched, verify.StatusMissing:
	}
	return line
}

// writeSummary writes per-status counts.
func (w *VerifyWriter) writeSummary(sb *strings.Builder, result *verify.Result) {
	sb.WriteString(strings.Repeat("-", bannerWidth) + "\n")
	for _, status := range verify.Statuses {
		sb.WriteString(fmt.Sprintf("  %-14s%d\n", string(status)+":", result.Count(status)))
	}
	sb.WriteString(fmt.Sprintf("  %-14s%d fixes\n", "TOTAL:", len(result.Outcomes)))
	sb.WriteString(strings.Repeat("=", bannerWidth) + "\n")
}

// shortDigest abbreviates a catalog digest for display.
func shortDigest(digest string) string {
	if len(digest) <= 12 {
		return digest
	}
	return digest[:12]
}

// WriteVerify outputs a verification result in JSON format.
func (w *JSONWriter) WriteVerify(result *verify.Result) (int, error) {
	return w.writeJSON(result)
}
