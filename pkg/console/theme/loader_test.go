// ABOUTME: Tests for JSON theme loading
// ABOUTME: Verifies overrides, default inheritance, and error cases

package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTheme(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "theme.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing theme file: %v", err)
	}
	return path
}

func TestLoadFileOverridesAndInherits(t *testing.T) {
	t.Parallel()

	path := writeTheme(t, `{
		"name": "ocean",
		"palette": {
			"prompt": "\u001b[34m",
			"critical": "\u001b[45m"
		}
	}`)

	th, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if th.Name != "ocean" {
		t.Errorf("Name = %q, want \"ocean\"", th.Name)
	}
	if got := th.Palette.Prompt.Code(); got != "\x1b[34m" {
		t.Errorf("Prompt = %q, want override", got)
	}
	if got := th.Palette.Critical.Code(); got != "\x1b[45m" {
		t.Errorf("Critical = %q, want override", got)
	}

	// Unset fields inherit the defaults.
	def := DefaultPalette()
	if th.Palette.Input.Code() != def.Input.Code() {
		t.Errorf("Input = %q, want default %q", th.Palette.Input.Code(), def.Input.Code())
	}
	if th.Palette.Marker.Code() != def.Marker.Code() {
		t.Errorf("Marker = %q, want default %q", th.Palette.Marker.Code(), def.Marker.Code())
	}
}

func TestLoadFileEmptyObject(t *testing.T) {
	t.Parallel()

	th, err := LoadFile(writeTheme(t, `{}`))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	def := DefaultPalette()
	if th.Palette.Normal.Code() != def.Normal.Code() {
		t.Errorf("empty theme did not inherit defaults")
	}
}

func TestLoadFileErrors(t *testing.T) {
	t.Parallel()

	if _, err := LoadFile(filepath.Join(t.TempDir(), "absent.json")); err == nil {
		t.Errorf("expected error for missing file")
	}
	if _, err := LoadFile(writeTheme(t, `not json`)); err == nil {
		t.Errorf("expected error for malformed file")
	}
}
