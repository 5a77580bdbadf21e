// ABOUTME: Ordered commit validation: literals, illegal characters, legal set, wildcard filter,
// ABOUTME: length bounds, and value conversion. First failure rejects; success may record history.

package prompt

import (
	"strings"
	"unicode"
)

// Style-specific illegal characters. Filename additionally rejects the
// path separators; path inputs may contain them.
const (
	filenameIllegal = `/\:*?"<>|`
	pathIllegal     = `*?"<>|`
)

// tryCommit runs the ordered validation pipeline against the edit
// buffer. It returns the accepted string and the resulting status, or
// ok=false leaving the editor in place. No state is mutated on failure.
func (p *Prompter) tryCommit() (accepted string, st Status, ok bool) {
	s := string(p.buf)

	// 1. Confirm style matches its literals and nothing else.
	if p.style == StyleConfirm {
		trimmed := strings.TrimSpace(s)
		switch {
		case strings.EqualFold(trimmed, p.yesLiteral):
			return p.yesLiteral, StatusYes, true
		case strings.EqualFold(trimmed, p.noLiteral):
			return p.noLiteral, StatusNo, true
		}
		return "", StatusWaiting, false
	}

	// 2. Space denial.
	if p.denySpaces && strings.ContainsRune(s, ' ') {
		return "", StatusWaiting, false
	}

	// 3. Style-specific illegal characters.
	if illegal := p.illegalChars(); illegal != "" && strings.ContainsAny(s, illegal) {
		return "", StatusWaiting, false
	}

	// 4. Legal-character set: explicit allow-list plus the literal
	// characters of the filter pattern.
	if !p.legalCharsOK(s) {
		return "", StatusWaiting, false
	}

	// 5. Wildcard filter.
	if p.filter != "" && !wildcardMatch(p.filter, s, p.caseSensitive) {
		return "", StatusWaiting, false
	}

	// 6. Length bounds. Path-like styles measure the trimmed input.
	measured := s
	if p.style == StyleFilename || p.style == StylePath {
		measured = strings.TrimSpace(s)
	}
	if n := len([]rune(measured)); n < p.minLen || n > p.maxLen {
		return "", StatusWaiting, false
	}

	// 7. Target type convertibility.
	if _, ok := Convert(s, p.kind, p.enumNames); !ok {
		return "", StatusWaiting, false
	}

	return s, StatusEntered, true
}

// illegalChars returns the style's forbidden character set, if any.
func (p *Prompter) illegalChars() string {
	switch p.style {
	case StyleFilename:
		return filenameIllegal
	case StylePath:
		return pathIllegal
	}
	return ""
}

// legalCharsOK checks every buffer character against the combined
// legal set: the explicit allow-list extended by the filter's literal
// characters. Without an explicit allow-list everything is admitted;
// wildcard positions in the filter carry no character restriction.
func (p *Prompter) legalCharsOK(s string) bool {
	if p.legalChars == "" {
		return true
	}
	set := p.legalChars + filterLiterals(p.filter)
	if !p.caseSensitive {
		set = strings.Map(unicode.ToLower, set)
		s = strings.Map(unicode.ToLower, s)
	}
	for _, r := range s {
		if !strings.ContainsRune(set, r) {
			return false
		}
	}
	return true
}
