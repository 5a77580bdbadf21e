// ABOUTME: Commit-time value conversion: integers (decimal and 0x hex), floats, bools, enums.
// ABOUTME: Conversion failure rejects the buffer; success yields the typed value.

package prompt

import (
	"strconv"
	"strings"
)

// Kind identifies the target value type a committed input must convert to.
type Kind int

const (
	// KindString accepts any committed input unchanged.
	KindString Kind = iota
	KindInt
	KindUint
	KindFloat
	KindBool
	// KindEnum matches case-insensitively against a configured name set.
	KindEnum
)

// Convert parses s into the target kind. enums is consulted only for
// KindEnum, which returns the canonical (configured) spelling.
// Integer kinds accept a 0x prefix for hexadecimal input. Floats accept
// a decimal comma as well as a decimal point, so locale-formatted
// numbers pass.
func Convert(s string, kind Kind, enums []string) (any, bool) {
	s = strings.TrimSpace(s)
	switch kind {
	case KindString:
		return s, true

	case KindInt:
		if v, ok := parseInt(s); ok {
			return v, true
		}
		return nil, false

	case KindUint:
		if rest, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
			if v, err := strconv.ParseUint(rest, 16, 64); err == nil {
				return v, true
			}
			return nil, false
		}
		if v, err := strconv.ParseUint(s, 10, 64); err == nil {
			return v, true
		}
		return nil, false

	case KindFloat:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v, true
		}
		if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
			if v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64); err == nil {
				return v, true
			}
		}
		return nil, false

	case KindBool:
		switch strings.ToLower(s) {
		case "true", "1":
			return true, true
		case "false", "0":
			return false, true
		}
		return nil, false

	case KindEnum:
		for _, name := range enums {
			if strings.EqualFold(name, s) {
				return name, true
			}
		}
		return nil, false
	}
	return nil, false
}

// parseInt handles signed decimal and 0x-prefixed hexadecimal input.
func parseInt(s string) (int64, bool) {
	neg := false
	body := s
	if rest, ok := strings.CutPrefix(body, "-"); ok {
		neg = true
		body = rest
	}
	if rest, ok := strings.CutPrefix(strings.ToLower(body), "0x"); ok {
		v, err := strconv.ParseUint(rest, 16, 63)
		if err != nil {
			return 0, false
		}
		if neg {
			return -int64(v), true
		}
		return int64(v), true
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// kindName is the placeholder text substituted for {type} in prompt prefixes.
func kindName(k Kind) string {
	switch k {
	case KindInt:
		return "integer"
	case KindUint:
		return "unsigned integer"
	case KindFloat:
		return "number"
	case KindBool:
		return "boolean"
	case KindEnum:
		return "choice"
	}
	return "text"
}
