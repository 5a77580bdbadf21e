// ABOUTME: SplitLines breaks raw text into logical lines on page and newline separators
// ABOUTME: Page breaks insert a synthetic empty line; trailing carriage returns are stripped

package text

import "strings"

// pageSeparators split text into pages; a synthetic empty line is
// inserted between consecutive pages.
var pageSeparators = []rune{'\f', ' '}

// lineSeparators split a page into lines. The separators themselves are
// discarded; a trailing '\r' on each resulting line is stripped, so
// "\r\n" collapses to a single break.
var lineSeparators = []rune{'\n', '', ' '}

// SplitLines breaks s into logical lines. Empty input yields no lines.
// The split is deterministic but lossy: separators are not preserved.
func SplitLines(s string) []string {
	if s == "" {
		return nil
	}

	var lines []string
	for i, page := range splitOn(s, isPageSeparator) {
		if i > 0 {
			lines = append(lines, "")
		}
		for _, line := range splitOn(page, isLineSeparator) {
			lines = append(lines, strings.TrimSuffix(line, "\r"))
		}
	}
	return lines
}

// splitOn splits s at every rune matched by sep, keeping empty pieces.
func splitOn(s string, sep func(rune) bool) []string {
	var out []string
	start := 0
	for i, r := range s {
		if sep(r) {
			out = append(out, s[start:i])
			start = i + len(string(r))
		}
	}
	out = append(out, s[start:])
	return out
}

func isPageSeparator(r rune) bool {
	for _, p := range pageSeparators {
		if r == p {
			return true
		}
	}
	return false
}

func isLineSeparator(r rune) bool {
	for _, l := range lineSeparators {
		if r == l {
			return true
		}
	}
	return false
}
