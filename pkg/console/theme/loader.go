// ABOUTME: JSON theme file loading with validation and default fallback
// ABOUTME: Unset palette fields inherit from DefaultPalette to ensure completeness

package theme

import (
	"encoding/json"
	"fmt"
	"os"
)

// jsonPalette is the JSON-friendly representation of a Palette.
// Fields hold raw ANSI escape codes; empty fields inherit defaults.
type jsonPalette struct {
	Normal   string `json:"normal"`
	Muted    string `json:"muted"`
	Emphasis string `json:"emphasis"`

	Prompt string `json:"prompt"`
	Input  string `json:"input"`

	Critical string `json:"critical"`
	Success  string `json:"success"`
	Warning  string `json:"warning"`
	Info     string `json:"info"`

	Marker string `json:"marker"`
}

type jsonTheme struct {
	Name    string      `json:"name"`
	Palette jsonPalette `json:"palette"`
}

// LoadFile reads a JSON theme file and returns a Theme.
// Missing palette fields fall back to DefaultPalette values.
func LoadFile(path string) (*Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading theme file: %w", err)
	}

	var jt jsonTheme
	if err := json.Unmarshal(data, &jt); err != nil {
		return nil, fmt.Errorf("parsing theme file: %w", err)
	}

	p := DefaultPalette()
	override(&p.Normal, jt.Palette.Normal)
	override(&p.Muted, jt.Palette.Muted)
	override(&p.Emphasis, jt.Palette.Emphasis)
	override(&p.Prompt, jt.Palette.Prompt)
	override(&p.Input, jt.Palette.Input)
	override(&p.Critical, jt.Palette.Critical)
	override(&p.Success, jt.Palette.Success)
	override(&p.Warning, jt.Palette.Warning)
	override(&p.Info, jt.Palette.Info)
	override(&p.Marker, jt.Palette.Marker)

	return &Theme{Name: jt.Name, Palette: p}, nil
}

// override replaces dst with a Color built from code when code is set.
func override(dst *Color, code string) {
	if code != "" {
		*dst = NewColor(code)
	}
}
