// ABOUTME: Tests for Color styling and the default palette
// ABOUTME: Verifies ANSI wrapping, empty-code passthrough, and modifiers

package theme

import "testing"

func TestColorApply(t *testing.T) {
	t.Parallel()

	c := NewColor("\x1b[32m")
	if got := c.Apply("ok"); got != "\x1b[32mok\x1b[0m" {
		t.Errorf("Apply = %q", got)
	}
}

func TestEmptyColorPassthrough(t *testing.T) {
	t.Parallel()

	var c Color
	if got := c.Apply("plain"); got != "plain" {
		t.Errorf("empty color altered text: %q", got)
	}
}

func TestColorModifiers(t *testing.T) {
	t.Parallel()

	c := NewColor("\x1b[31m")
	if got := c.Bold().Code(); got != "\x1b[1m\x1b[31m" {
		t.Errorf("Bold code = %q", got)
	}
	if got := c.Dim().Code(); got != "\x1b[2m\x1b[31m" {
		t.Errorf("Dim code = %q", got)
	}
}

func TestDefaultPaletteComplete(t *testing.T) {
	t.Parallel()

	p := DefaultPalette()
	colors := map[string]Color{
		"Normal": p.Normal, "Muted": p.Muted, "Emphasis": p.Emphasis,
		"Prompt": p.Prompt, "Input": p.Input,
		"Critical": p.Critical, "Success": p.Success,
		"Warning": p.Warning, "Info": p.Info, "Marker": p.Marker,
	}
	for name, c := range colors {
		if c.Code() == "" {
			t.Errorf("default palette leaves %s unset", name)
		}
	}
}
