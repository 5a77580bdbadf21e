// ABOUTME: Format describes alignment, letter case, and wrap behavior for surface output.
// ABOUTME: Each category is tracked set/unset so call-site formats merge over an ambient base.

package format

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Alignment positions text within the effective output width.
type Alignment int

const (
	AlignNone Alignment = iota // Left edge of the output band
	AlignCenter
	AlignRight
)

// Case selects a letter-case transform applied before wrapping.
type Case int

const (
	CaseNone Case = iota
	CaseUpper
	CaseLower
)

// Wrap selects how logical lines are split at the width limit.
type Wrap int

const (
	WrapNone  Wrap = iota // Hard cut at the width limit
	WrapWord              // Break at whitespace or a pretty break character
	WrapBlock             // Break at the width limit without trimming
)

// Format is a partial formatting specification. A zero Format specifies
// nothing; each With* call pins one category. Unpinned categories fall
// through to the ambient base during Merge.
type Format struct {
	align    Alignment
	hasAlign bool

	letter  Case
	hasCase bool

	wrap    Wrap
	hasWrap bool
}

// New returns an empty Format with no categories set.
func New() Format {
	return Format{}
}

// WithAlign returns a copy of f with the alignment category pinned to a.
func (f Format) WithAlign(a Alignment) Format {
	f.align = a
	f.hasAlign = true
	return f
}

// WithCase returns a copy of f with the case category pinned to c.
func (f Format) WithCase(c Case) Format {
	f.letter = c
	f.hasCase = true
	return f
}

// WithWrap returns a copy of f with the wrap category pinned to w.
func (f Format) WithWrap(w Wrap) Format {
	f.wrap = w
	f.hasWrap = true
	return f
}

// Align returns the resolved alignment (AlignNone when unset).
func (f Format) Align() Alignment { return f.align }

// Case returns the resolved letter case (CaseNone when unset).
func (f Format) Case() Case { return f.letter }

// Wrap returns the resolved wrap mode (WrapNone when unset).
func (f Format) Wrap() Wrap { return f.wrap }

// HasAlign reports whether the alignment category is pinned.
func (f Format) HasAlign() bool { return f.hasAlign }

// HasCase reports whether the case category is pinned.
func (f Format) HasCase() bool { return f.hasCase }

// HasWrap reports whether the wrap category is pinned.
func (f Format) HasWrap() bool { return f.hasWrap }

// Merge resolves over against base: categories pinned in over win,
// anything else comes from base. The result has every category pinned,
// so exactly one effective value exists per category.
func Merge(base, over Format) Format {
	out := base
	if !out.hasAlign {
		out = out.WithAlign(AlignNone)
	}
	if !out.hasCase {
		out = out.WithCase(CaseNone)
	}
	if !out.hasWrap {
		out = out.WithWrap(WrapNone)
	}
	if over.hasAlign {
		out = out.WithAlign(over.align)
	}
	if over.hasCase {
		out = out.WithCase(over.letter)
	}
	if over.hasWrap {
		out = out.WithWrap(over.wrap)
	}
	return out
}

// Named presets used by callers instead of ad-hoc flag combinations.

// Centered returns a format that centers text within the output band.
func Centered() Format { return New().WithAlign(AlignCenter) }

// RightAligned returns a format that right-aligns text within the output band.
func RightAligned() Format { return New().WithAlign(AlignRight) }

// WordWrapped returns a format that word-wraps at the width limit.
func WordWrapped() Format { return New().WithWrap(WrapWord) }

// BlockWrapped returns a format that block-wraps at the width limit.
func BlockWrapped() Format { return New().WithWrap(WrapBlock) }

// Uppercased returns a format that upper-cases text before printing.
func Uppercased() Format { return New().WithCase(CaseUpper) }

// Lowercased returns a format that lower-cases text before printing.
func Lowercased() Format { return New().WithCase(CaseLower) }

// ApplyCase transforms s per the resolved case category using the
// case-mapping rules of the given locale.
func (f Format) ApplyCase(s string, loc language.Tag) string {
	switch f.letter {
	case CaseUpper:
		return cases.Upper(loc).String(s)
	case CaseLower:
		return cases.Lower(loc).String(s)
	default:
		return s
	}
}
