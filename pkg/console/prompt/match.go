// ABOUTME: Anchored wildcard matching for input filters: '*' any run, '?' one character.
// ABOUTME: Also extracts the literal (non-wildcard) characters of a pattern for the legal set.

package prompt

import (
	"strings"
	"unicode"
)

// wildcardMatch reports whether s matches pattern in full. '*' matches
// any run of characters (including none), '?' matches exactly one.
// There is no escaping; every other character matches itself.
func wildcardMatch(pattern, s string, caseSensitive bool) bool {
	if !caseSensitive {
		pattern = strings.Map(unicode.ToLower, pattern)
		s = strings.Map(unicode.ToLower, s)
	}
	return matchRunes([]rune(pattern), []rune(s))
}

// matchRunes is a backtracking matcher over rune slices. The single
// backtrack point is the most recent '*', which is sufficient for
// glob semantics.
func matchRunes(pattern, s []rune) bool {
	pi, si := 0, 0
	star, starMatch := -1, 0

	for si < len(s) {
		switch {
		case pi < len(pattern) && (pattern[pi] == '?' || pattern[pi] == s[si]):
			pi++
			si++
		case pi < len(pattern) && pattern[pi] == '*':
			star = pi
			starMatch = si
			pi++
		case star >= 0:
			// Mismatch: widen what the last '*' consumed.
			starMatch++
			pi = star + 1
			si = starMatch
		default:
			return false
		}
	}
	for pi < len(pattern) && pattern[pi] == '*' {
		pi++
	}
	return pi == len(pattern)
}

// filterLiterals returns the non-wildcard characters of pattern; these
// join the explicit legal-character set during validation.
func filterLiterals(pattern string) string {
	var b strings.Builder
	for _, r := range pattern {
		if r != '*' && r != '?' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
