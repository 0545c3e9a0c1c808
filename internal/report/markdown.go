package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/anyfix/internal/model"
	"github.com/nao1215/markdown"
)

// syntaxDiff renders before/after pairs as a unified-diff style code block.
const syntaxDiff markdown.SyntaxHighlight = "diff"

// MarkdownWriter outputs reports in Markdown format.
// This format is designed for pasting into pull requests and issues.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation, which gives us tables, code blocks and GitHub alerts without
// hand-escaping.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the catalog in Markdown format.
func (w *MarkdownWriter) Write(catalog *model.Catalog) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, catalog)
	w.writeFiles(md, catalog)
	w.writeFooter(md, catalog)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the per-file summary table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, catalog *model.Catalog) {
	md.H1(Title)
	md.PlainText("")

	if catalog.Len() == 0 {
		md.Tip("No fixes in catalog.")
		md.PlainText("")
		return
	}

	files := catalog.Files()
	rows := make([][]string, 0, len(files)+1)
	for _, file := range files {
		rows = append(rows, []string{"`" + file + "`", strconv.Itoa(len(catalog.ByFile(file)))})
	}
	rows = append(rows, []string{"**Total**", "**" + strconv.Itoa(catalog.Len()) + "**"})

	md.Table(markdown.TableSet{
		Header: []string{"File", "Fixes"},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeFiles writes one section per file, one diff block per fix.
func (w *MarkdownWriter) writeFiles(md *markdown.Markdown, catalog *model.Catalog) {
	for _, file := range catalog.Files() {
		md.H2(file)
		md.PlainText("")

		for _, fix := range catalog.ByFile(file) {
			md.PlainTextf("**Line %d**", fix.Line)
			md.PlainText("")
			md.CodeBlocks(syntaxDiff, diffBlock(fix))
			md.PlainText("")
		}
	}
}

// writeFooter writes the total and the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown, catalog *model.Catalog) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainTextf("Total fixes: %d", catalog.Len())
}

// diffBlock renders a fix as removed and added lines.
func diffBlock(fix model.FixRecord) string {
	var sb strings.Builder
	for _, line := range fix.BeforeLines() {
		sb.WriteString("-" + line + "\n")
	}
	for i, line := range fix.AfterLines() {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString("+" + line)
	}
	return sb.String()
}
