// Package patch applies line-addressed edits to text buffers.
//
// All functions are pure and total: line indexes are 1-based, out-of-range
// values are clamped rather than rejected, and no input can produce an error.
// This is deliberate — the line numbers come from an AI model and are only
// approximately trustworthy, so the applicator degrades instead of failing.
package patch

import (
	"fmt"
	"strings"
)

// LineCount returns the number of newline-separated lines in content.
// An empty string counts as one (empty) line, matching strings.Split.
func LineCount(content string) int {
	return len(strings.Split(content, "\n"))
}

// NumberLines renders content with 1-based "N: " prefixes so a language
// model can reference lines unambiguously when choosing an edit location.
func NumberLines(content string) string {
	lines := strings.Split(content, "\n")
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%d: %s", i+1, line)
		if i < len(lines)-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ApplyInsert inserts insertion into original after the given 1-based line.
//
//   - afterLine <= 0 prepends: insertion, newline, original.
//   - afterLine >= the line count appends: original, newline, insertion.
//   - Otherwise the insertion lands between line afterLine and the rest.
func ApplyInsert(original string, afterLine int, insertion string) string {
	lines := strings.Split(original, "\n")

	if afterLine <= 0 {
		return insertion + "\n" + original
	}
	if afterLine >= len(lines) {
		return original + "\n" + insertion
	}

	head := strings.Join(lines[:afterLine], "\n")
	tail := strings.Join(lines[afterLine:], "\n")
	return head + "\n" + insertion + "\n" + tail
}

// ApplyReplace replaces the inclusive 1-based line range [startLine, endLine]
// of original with replacement. The range is clamped to the document, so a
// full-range replace yields exactly the replacement with no stray blank
// lines. A degenerate range (start past end) removes nothing and inserts the
// replacement at start.
func ApplyReplace(original string, startLine, endLine int, replacement string) string {
	lines := strings.Split(original, "\n")
	start, end := clampRange(startLine, endLine, len(lines))

	segments := make([]string, 0, 3)
	if start > 0 {
		segments = append(segments, strings.Join(lines[:start], "\n"))
	}
	if replacement != "" {
		segments = append(segments, replacement)
	}
	if end < len(lines) {
		segments = append(segments, strings.Join(lines[end:], "\n"))
	}
	return strings.Join(segments, "\n")
}

// ExtractRange returns the text occupying the inclusive 1-based line range
// [startLine, endLine], clamped the same way ApplyReplace clamps. A
// degenerate range yields the empty string.
func ExtractRange(original string, startLine, endLine int) string {
	lines := strings.Split(original, "\n")
	start, end := clampRange(startLine, endLine, len(lines))
	if start >= end {
		return ""
	}
	return strings.Join(lines[start:end], "\n")
}

// clampRange converts an inclusive 1-based range to an exclusive half-open
// index pair bounded by [0, n], with end never before start.
func clampRange(startLine, endLine, n int) (start, end int) {
	start = startLine - 1
	if start < 0 {
		start = 0
	}
	if start > n {
		start = n
	}
	end = endLine
	if end < start {
		end = start
	}
	if end > n {
		end = n
	}
	return start, end
}
