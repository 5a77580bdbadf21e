// ABOUTME: Semantic color types for the console toolkit: Color and Palette
// ABOUTME: Color.Apply wraps text in ANSI codes; Palette maps output roles to colors

package theme

// Color represents a terminal color that can style text.
type Color struct {
	code string
}

// NewColor creates a Color from a raw ANSI escape code.
func NewColor(code string) Color {
	return Color{code: code}
}

// Apply wraps text with the ANSI color code and a reset suffix.
// If the color code is empty, the text is returned unchanged.
func (c Color) Apply(text string) string {
	if c.code == "" {
		return text
	}
	return c.code + text + "\x1b[0m"
}

// Code returns the raw ANSI escape code.
func (c Color) Code() string {
	return c.code
}

// Bold returns a new Color that prepends bold (\x1b[1m) to the code.
func (c Color) Bold() Color {
	return Color{code: "\x1b[1m" + c.code}
}

// Dim returns a new Color that prepends dim (\x1b[2m) to the code.
func (c Color) Dim() Color {
	return Color{code: "\x1b[2m" + c.code}
}

// Palette holds the semantic colors used by the surface and prompts.
type Palette struct {
	// Body text
	Normal   Color
	Muted    Color
	Emphasis Color

	// Prompt rendering
	Prompt Color // prefix text
	Input  Color // echoed user input

	// Feedback
	Critical Color // rejected input flash
	Success  Color
	Warning  Color
	Info     Color

	// Control markers ("-- More --", "[Cancelled]")
	Marker Color
}

// Theme holds a named palette.
type Theme struct {
	Name    string
	Palette Palette
}

// DefaultPalette returns the stock 16/256-color palette.
func DefaultPalette() Palette {
	return Palette{
		Normal:   NewColor("\x1b[0m"),
		Muted:    NewColor("\x1b[2m"),
		Emphasis: NewColor("\x1b[1m"),

		Prompt: NewColor("\x1b[1m"),
		Input:  NewColor("\x1b[36m"),

		Critical: NewColor("\x1b[41;97m"),
		Success:  NewColor("\x1b[32m"),
		Warning:  NewColor("\x1b[33m"),
		Info:     NewColor("\x1b[36m"),

		Marker: NewColor("\x1b[7m"),
	}
}
