// ABOUTME: Wrap engine: tab expansion plus word/block width breaking of one logical line
// ABOUTME: Word mode prefers whitespace breaks, then pretty punctuation, then a hard cut

package text

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/conterm/conterm/pkg/console/format"
)

// prettyBreaks are secondary break characters for word wrapping. The
// exact membership is load-bearing: wrap output is compared byte-for-byte
// in golden tests.
const prettyBreaks = `-:=./\~)|}]`

// MaxWrapDepth bounds the number of fragments produced from one logical
// line, guarding pathological inputs such as unbroken runs spanning many
// widths.
const MaxWrapDepth = 100

// WrapLine expands tabs in line and, when width > 0, splits it at the
// width limit.
//
// Columns are absolute terminal columns: the output band occupies
// [startCol, startCol+width) and the line begins at leftCol (>= startCol,
// mid-row when appending to earlier output). Tab stops are multiples of
// tabSize measured from startCol.
//
// frag fits the band; rest is the remainder to wrap again (empty when
// the whole line fit). changed reports that tab expansion or a break
// rewrote the line, so callers must print frag instead of line.
func WrapLine(line string, leftCol, startCol, width, tabSize int, mode format.Wrap) (frag, rest string, changed bool) {
	if line == "" {
		return "", "", false
	}
	if tabSize < 2 {
		tabSize = 2
	}
	limit := startCol + width
	breaking := width > 0 && mode != format.WrapNone

	var b strings.Builder
	col := leftCol
	primary := -1   // byte offset in b before the latest whitespace run
	secondary := -1 // byte offset in b after the latest pretty break
	tabbed := false

	remaining := line
	state := -1
	for len(remaining) > 0 {
		cluster, next, _, nextState := uniseg.FirstGraphemeClusterInString(remaining, state)
		r, _ := utf8.DecodeRuneInString(cluster)

		var w int
		if r == '\t' {
			w = tabSize - (col-startCol)%tabSize
		} else {
			w = graphemeWidth(cluster)
		}

		if breaking && col+w > limit && b.Len() > 0 {
			// An overflowing whitespace cluster is itself the most
			// recent primary break: the full row stays intact.
			if mode == format.WrapWord && (r == '\t' || r == ' ' || r < 0x20) {
				primary = b.Len()
			}
			// The break keeps the built-up row; the unconsumed tail
			// (including this cluster) joins the remainder.
			frag, rest = splitRow(b.String(), primary, secondary, mode)
			rest += remaining
			if mode == format.WrapWord {
				frag = strings.TrimRight(frag, " ")
				rest = strings.TrimLeft(rest, " \t")
			}
			return frag, rest, true
		}

		if mode == format.WrapWord {
			if r == '\t' || r == ' ' || r < 0x20 {
				primary = b.Len()
			} else if strings.ContainsRune(prettyBreaks, r) {
				secondary = b.Len() + len(cluster)
			}
		}

		if r == '\t' {
			b.WriteString(strings.Repeat(" ", w))
			tabbed = true
		} else {
			b.WriteString(cluster)
		}
		col += w
		remaining, state = next, nextState
	}

	return b.String(), "", tabbed
}

// splitRow cuts the built-up row at the preferred break position:
// the latest whitespace, else the latest pretty break, else the full row
// (a mid-token cut exactly at the limit). A break at offset zero would
// produce an empty fragment and is never taken.
func splitRow(s string, primary, secondary int, mode format.Wrap) (frag, rest string) {
	at := len(s)
	if mode == format.WrapWord {
		switch {
		case primary > 0:
			at = primary
		case secondary > 0 && secondary < len(s):
			at = secondary
		}
	}
	return s[:at], s[at:]
}

// WrapAll applies WrapLine repeatedly, one physical fragment per entry.
// The first fragment starts at leftCol; continuations start at startCol.
func WrapAll(line string, leftCol, startCol, width, tabSize int, mode format.Wrap) []string {
	var out []string
	col := leftCol
	for depth := 0; ; depth++ {
		frag, rest, _ := WrapLine(line, col, startCol, width, tabSize, mode)
		out = append(out, frag)
		if rest == "" {
			return out
		}
		if depth >= MaxWrapDepth {
			return append(out, rest)
		}
		line = rest
		col = startCol
	}
}
