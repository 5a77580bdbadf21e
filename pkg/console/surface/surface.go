// ABOUTME: Screen surface: cursor accounting, aligned width bands, wrapped printing,
// ABOUTME: escape-key cancellation, and scroll-break pagination of long output.

package surface

import (
	"context"
	"strings"
	"time"

	"github.com/conterm/conterm/pkg/console"
	"github.com/conterm/conterm/pkg/console/format"
	"github.com/conterm/conterm/pkg/console/key"
	"github.com/conterm/conterm/pkg/console/terminal"
	"github.com/conterm/conterm/pkg/console/text"
	"github.com/conterm/conterm/pkg/console/theme"
)

// Outcome reports how a print call ended. Cancellation is expected
// control flow, not an error: callers stop issuing prints for the
// current render pass and move on.
type Outcome int

const (
	OutcomeCompleted Outcome = iota
	OutcomeCancelled
)

const (
	// Configured output widths below this threshold are ignored in
	// favor of the terminal width.
	minFormatWidth = 10

	// escPollGate rate-limits escape-key detection during long prints.
	escPollGate = 100 * time.Millisecond

	cancelledMarker = "[Cancelled]"
	moreMarker      = "-- More --  Space page | Enter all | Q quit"
)

// Surface maintains the print cursor over a terminal: current column,
// the remembered band start column for alignment, line accounting, and
// the cancellation and scroll-break state machines.
type Surface struct {
	ctx *console.Context

	col      int // absolute cursor column
	startCol int // band start for the current alignment
	termW    int // cached per print call
	termH    int

	totalLines    int
	cancelled     bool
	scrollRows    int
	scrollEscaped bool
	paging        bool // suppresses nested pagination prompts

	lastEscPoll time.Time
}

// New creates a Surface over the given context.
func New(ctx *console.Context) *Surface {
	return &Surface{ctx: ctx}
}

// Print writes text through the full pipeline: logical line splitting,
// case transform, tab expansion, and width wrapping. The cursor is left
// after the final fragment.
func (s *Surface) Print(t string, color theme.Color, f format.Format) Outcome {
	return s.print(t, color, f, false)
}

// PrintLine is Print with a trailing newline.
func (s *Surface) PrintLine(t string, color theme.Color, f format.Format) Outcome {
	return s.print(t, color, f, true)
}

// Plain prints a line in the normal color with the ambient format only.
func (s *Surface) Plain(t string) Outcome {
	return s.PrintLine(t, s.ctx.Palette.Normal, format.New())
}

// print is the core output operation described in the component design.
func (s *Surface) print(t string, color theme.Color, f format.Format, newline bool) Outcome {
	if s.cancelled {
		return OutcomeCancelled
	}

	// Terminal size, effective width, and band start are computed once
	// per call, not per character.
	s.cacheGeometry(f)

	eff := format.Merge(s.ctx.Settings.Base, f)
	width := s.effectiveWidth()

	lines := text.SplitLines(t)
	if len(lines) == 0 && newline {
		if !s.newline() {
			return OutcomeCancelled
		}
		return OutcomeCompleted
	}

	for i, line := range lines {
		if i > 0 {
			if !s.newline() {
				return OutcomeCancelled
			}
		}
		line = eff.ApplyCase(line, s.ctx.Settings.Locale)
		if !s.printLogicalLine(line, color, eff, width) {
			return OutcomeCancelled
		}
	}

	if newline {
		if !s.newline() {
			return OutcomeCancelled
		}
	}
	return OutcomeCompleted
}

// printLogicalLine wraps one logical line and writes each physical
// fragment. Returns false when printing was cancelled.
func (s *Surface) printLogicalLine(line string, color theme.Color, f format.Format, width int) bool {
	for depth := 0; ; depth++ {
		frag, rest, _ := text.WrapLine(line, max(s.col, s.startCol), s.startCol,
			width, s.ctx.Settings.TabSize, f.Wrap())
		s.writeFragment(frag, color)
		if rest == "" {
			return true
		}
		if depth >= text.MaxWrapDepth {
			s.writeFragment(rest, color)
			return true
		}
		if !s.newline() {
			return false
		}
		line = rest
	}
}

// writeFragment positions the cursor at the band start when needed,
// writes one physical fragment, and advances the column accounting.
// Fragments wider than the terminal (wrap mode none) are charged the
// extra rows they occupy.
func (s *Surface) writeFragment(frag string, color theme.Color) {
	if frag == "" {
		return
	}
	if s.col < s.startCol {
		_ = s.ctx.Term.SetCursorCol(s.startCol)
		s.col = s.startCol
	}
	_ = terminal.WriteString(s.ctx.Term, color.Apply(frag))

	s.col += text.VisibleWidth(frag)
	if s.termW > 0 && s.col >= s.termW {
		extra := s.col / s.termW
		s.col %= s.termW
		s.totalLines += extra
		s.scrollRows += extra
	}
}

// newline ends the current physical row, advances the counters, and
// runs the cancellation and scroll-break checks. Returns false when the
// print was cancelled.
func (s *Surface) newline() bool {
	_ = terminal.WriteString(s.ctx.Term, "\r\n")
	s.col = 0
	s.totalLines++
	s.scrollRows++

	if s.escapePending() {
		s.cancel()
		return false
	}

	if s.ctx.Settings.ScrollBreak && !s.paging && !s.scrollEscaped &&
		s.termH > 1 && s.scrollRows >= s.termH-1 {
		if !s.pageBreak() {
			s.cancel()
			return false
		}
	}
	return true
}

// cacheGeometry refreshes the cached terminal size and band start.
func (s *Surface) cacheGeometry(f format.Format) {
	w, h, err := s.ctx.Term.Size()
	if err != nil || w <= 0 {
		w, h = 80, 24
	}
	s.termW, s.termH = w, h

	eff := format.Merge(s.ctx.Settings.Base, f)
	width := s.effectiveWidth()
	switch eff.Align() {
	case format.AlignCenter:
		s.startCol = max((s.termW-1-width)/2, 0)
	case format.AlignRight:
		s.startCol = max(s.termW-1-width, 0)
	default:
		s.startCol = 0
	}
}

// effectiveWidth is the printable width: the configured cap clamped to
// the terminal, or the full terminal width minus one.
func (s *Surface) effectiveWidth() int {
	limit := s.termW - 1
	cfg := s.ctx.Settings.OutputWidth
	if cfg >= minFormatWidth && cfg < limit {
		return cfg
	}
	return limit
}

// escapePending polls for a pending Escape key, rate-limited so long
// prints do not hammer the queue. Other keys arriving mid-print are
// discarded.
func (s *Surface) escapePending() bool {
	if s.paging {
		return false
	}
	if time.Since(s.lastEscPoll) < escPollGate {
		return false
	}
	s.lastEscPoll = time.Now()

	for {
		k, ok := s.ctx.Keys.Poll()
		if !ok {
			return false
		}
		if k.Type == key.KeyEscape {
			return true
		}
	}
}

// cancel marks the surface cancelled and prints the cancellation marker.
func (s *Surface) cancel() {
	s.cancelled = true
	_ = terminal.WriteString(s.ctx.Term, s.ctx.Palette.Marker.Apply(cancelledMarker)+"\r\n")
}

// pageBreak presents the pagination prompt: Space or PageDown continue a
// page, Enter or End run free for the rest of the group, Escape or Q
// cancel printing, anything else advances exactly one row. Returns false
// to cancel. The prompt erases itself so it never interleaves with
// content, and its own output cannot trigger another pagination prompt.
func (s *Surface) pageBreak() bool {
	s.paging = true
	defer func() { s.paging = false }()

	_ = s.ctx.Term.SetCursorCol(0)
	_ = terminal.WriteString(s.ctx.Term, s.ctx.Palette.Marker.Apply(moreMarker))

	k, ok := s.ctx.Keys.Read(context.Background())

	_ = s.ctx.Term.SetCursorCol(0)
	_ = terminal.WriteString(s.ctx.Term, strings.Repeat(" ", len(moreMarker)))
	_ = s.ctx.Term.SetCursorCol(0)
	s.col = 0

	if !ok {
		// Key source is gone; nobody is there to answer, so run free
		// instead of re-prompting every page.
		s.scrollEscaped = true
		return true
	}
	switch {
	case k.Type == key.KeyEscape,
		k.Type == key.KeyRune && (k.Rune == 'q' || k.Rune == 'Q'):
		return false
	case k.Type == key.KeySpace, k.Type == key.KeyPageDown:
		s.scrollRows = 0
	case k.Type == key.KeyEnter, k.Type == key.KeyEnd:
		s.scrollEscaped = true
	default:
		// One more row, then prompt again.
		s.scrollRows = s.termH - 2
	}
	return true
}

// Clear wipes the screen and resets cursor and scroll accounting.
// The total line counter restarts as well.
func (s *Surface) Clear() {
	_ = s.ctx.Term.Clear()
	s.col = 0
	s.startCol = 0
	s.totalLines = 0
	s.scrollRows = 0
	s.scrollEscaped = false
}

// BeginGroup starts a new logical print group: the cancelled flag and
// scroll-break state are reset while the line counter keeps running.
func (s *Surface) BeginGroup() {
	s.cancelled = false
	s.scrollRows = 0
	s.scrollEscaped = false
}

// Cancelled reports whether the current print group was cancelled.
func (s *Surface) Cancelled() bool { return s.cancelled }

// LinesPrinted returns the number of physical rows written since the
// last Clear.
func (s *Surface) LinesPrinted() int { return s.totalLines }

// Col returns the current cursor column.
func (s *Surface) Col() int { return s.col }

// SetScrollSuppressed toggles the pagination suppression flag; prompts
// disable scroll-break while they own the cursor.
func (s *Surface) SetScrollSuppressed(suppressed bool) {
	s.paging = suppressed
}

// ScrollSuppressed reports whether pagination is currently suppressed.
func (s *Surface) ScrollSuppressed() bool { return s.paging }
