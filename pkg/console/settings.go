// ABOUTME: Mutable toolkit settings: width cap, tab size, ambient format, scroll-break, locale.
// ABOUTME: Optionally loaded from a YAML file; unset fields keep their defaults.

package console

import (
	"fmt"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/conterm/conterm/pkg/console/format"
)

// Tab size bounds; values outside are clamped by Normalize.
const (
	MinTabSize     = 2
	MaxTabSize     = 16
	DefaultTabSize = 4
)

// Settings holds the mutable configuration knobs of the toolkit.
type Settings struct {
	// OutputWidth caps the printable width; 0 means full terminal width.
	OutputWidth int
	// TabSize is the tab stop interval, within [MinTabSize, MaxTabSize].
	TabSize int
	// Base is the ambient format merged under every call-site format.
	Base format.Format
	// ScrollBreak pauses long output every screenful.
	ScrollBreak bool
	// CursorVisible is the cursor state outside of prompts.
	CursorVisible bool
	// Locale drives case transforms and value parsing.
	Locale language.Tag
}

// DefaultSettings returns the stock configuration.
func DefaultSettings() *Settings {
	return &Settings{
		TabSize:       DefaultTabSize,
		ScrollBreak:   true,
		CursorVisible: true,
		Locale:        language.Und,
	}
}

// Normalize clamps out-of-range values in place.
func (s *Settings) Normalize() {
	if s.TabSize < MinTabSize {
		s.TabSize = MinTabSize
	}
	if s.TabSize > MaxTabSize {
		s.TabSize = MaxTabSize
	}
	if s.OutputWidth < 0 {
		s.OutputWidth = 0
	}
}

// settingsFile is the YAML representation of Settings. Pointer fields
// distinguish "absent" from zero values.
type settingsFile struct {
	OutputWidth   *int   `yaml:"output_width"`
	TabSize       *int   `yaml:"tab_size"`
	Align         string `yaml:"align"` // none | center | right
	Case          string `yaml:"case"`  // none | upper | lower
	Wrap          string `yaml:"wrap"`  // none | word | block
	ScrollBreak   *bool  `yaml:"scroll_break"`
	CursorVisible *bool  `yaml:"cursor_visible"`
	Locale        string `yaml:"locale"`
}

// LoadSettingsFile reads a YAML settings file over the defaults.
func LoadSettingsFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings file: %w", err)
	}

	var sf settingsFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parsing settings file: %w", err)
	}

	s := DefaultSettings()
	if sf.OutputWidth != nil {
		s.OutputWidth = *sf.OutputWidth
	}
	if sf.TabSize != nil {
		s.TabSize = *sf.TabSize
	}
	if sf.ScrollBreak != nil {
		s.ScrollBreak = *sf.ScrollBreak
	}
	if sf.CursorVisible != nil {
		s.CursorVisible = *sf.CursorVisible
	}
	if sf.Locale != "" {
		tag, err := language.Parse(sf.Locale)
		if err != nil {
			return nil, fmt.Errorf("parsing locale %q: %w", sf.Locale, err)
		}
		s.Locale = tag
	}

	base, err := parseBaseFormat(sf.Align, sf.Case, sf.Wrap)
	if err != nil {
		return nil, err
	}
	s.Base = base

	s.Normalize()
	return s, nil
}

// parseBaseFormat builds the ambient format from the file's enum strings.
func parseBaseFormat(align, letter, wrap string) (format.Format, error) {
	f := format.New()

	switch align {
	case "", "none":
	case "center":
		f = f.WithAlign(format.AlignCenter)
	case "right":
		f = f.WithAlign(format.AlignRight)
	default:
		return f, fmt.Errorf("unknown align value %q", align)
	}

	switch letter {
	case "", "none":
	case "upper":
		f = f.WithCase(format.CaseUpper)
	case "lower":
		f = f.WithCase(format.CaseLower)
	default:
		return f, fmt.Errorf("unknown case value %q", letter)
	}

	switch wrap {
	case "", "none":
	case "word":
		f = f.WithWrap(format.WrapWord)
	case "block":
		f = f.WithWrap(format.WrapBlock)
	default:
		return f, fmt.Errorf("unknown wrap value %q", wrap)
	}

	return f, nil
}
