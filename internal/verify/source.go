package verify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// ErrOutsideRoot is returned for a catalog path that escapes the project root.
var ErrOutsideRoot = errors.New("path escapes project root")

// sourceFile is a target file split into normalized lines.
type sourceFile struct {
	lines []string
}

// readSource reads file relative to root.
// The catalog always uses forward slashes, whatever the host OS.
func readSource(root, file string) (*sourceFile, error) {
	rel := filepath.FromSlash(file)
	if !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %s", ErrOutsideRoot, file)
	}

	data, err := os.ReadFile(filepath.Join(root, rel)) //nolint:gosec // Paths are confined to root above
	if err != nil {
		return nil, err
	}
	return &sourceFile{lines: splitLines(string(data))}, nil
}

// splitLines normalizes text and splits it into comparable lines.
func splitLines(text string) []string {
	return strings.Split(normalize(text), "\n")
}

// normalize converts CRLF line endings to LF and text to Unicode NFC so a file
// saved on another platform or editor still compares equal.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return norm.NFC.String(text)
}

// sameLine compares two lines ignoring trailing whitespace, which editors
// add and strip freely.
func sameLine(a, b string) bool {
	return strings.TrimRight(a, " \t") == strings.TrimRight(b, " \t")
}

// matchAt reports whether want occurs in the file starting at 1-based line.
func (s *sourceFile) matchAt(want []string, line int) bool {
	start := line - 1
	if start < 0 || start+len(want) > len(s.lines) {
		return false
	}
	for i, w := range want {
		if !sameLine(s.lines[start+i], w) {
			return false
		}
	}
	return true
}

// nearest returns the 1-based line of the occurrence of want closest to line,
// preferring the earlier one on a tie. It returns 0 when want does not occur.
func (s *sourceFile) nearest(want []string, line int) int {
	best := 0
	bestDist := -1
	for start := 1; start+len(want)-1 <= len(s.lines); start++ {
		if !s.matchAt(want, start) {
			continue
		}
		dist := start - line
		if dist < 0 {
			dist = -dist
		}
		if bestDist < 0 || dist < bestDist {
			best = start
			bestDist = dist
		}
	}
	return best
}
