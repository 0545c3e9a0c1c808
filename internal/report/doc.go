// Package report provides report generation and output functionality.
//
// This package contains writers for different output formats:
//   - SimpleWriter: The plain-text fix report (the default output)
//   - JSONWriter: Structured JSON output for tool integration
//   - MarkdownWriter: Markdown output for pull requests and issues
//   - VerifyWriter: Plain-text results of a verification run
//
// Design decision: We separate report writing from the catalog data
// structures (which are in the model package). Formatting is a pure function
// of its input and never decides where the bytes go, so it can be tested
// without touching stdout.
//
// Writers implement the Writer interface, allowing them to be used
// interchangeably by the CLI.
package report
