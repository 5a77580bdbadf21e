// ABOUTME: Fixed-width string truncation with plain-cut and ellipsis placement modes
// ABOUTME: Center mode keeps head and tail split as left = maxLen/2 - 1

package text

// TruncateMode selects where truncation removes characters.
type TruncateMode int

const (
	// TruncateSimple hard-cuts the string at the length limit.
	TruncateSimple TruncateMode = iota
	// TruncateEllipsesEnd keeps the head and appends "...".
	TruncateEllipsesEnd
	// TruncateEllipsesCenter keeps head and tail around a "..." middle.
	TruncateEllipsesCenter
)

// Truncate shortens s to at most maxLen characters using the given mode.
// Strings that already fit are returned unchanged. Modes whose ellipsis
// cannot fit fall back: center -> end -> simple.
func Truncate(s string, maxLen int, mode TruncateMode) string {
	if s == "" {
		return s
	}
	if maxLen <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	switch mode {
	case TruncateEllipsesEnd:
		if maxLen > 3 {
			return string(runes[:maxLen-3]) + "..."
		}
	case TruncateEllipsesCenter:
		if maxLen > 4 {
			// Head gets maxLen/2-1 characters; the tail takes whatever
			// remains after the three-dot middle, so even targets keep
			// one extra character on the right half.
			left := maxLen/2 - 1
			right := maxLen - 3 - left
			return string(runes[:left]) + "..." + string(runes[len(runes)-right:])
		}
		if maxLen > 3 {
			return string(runes[:maxLen-3]) + "..."
		}
	}
	return string(runes[:maxLen])
}
