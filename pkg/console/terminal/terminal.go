// ABOUTME: Defines the Terminal interface for raw mode, size, cursor control, and output.
// ABOUTME: Abstracts terminal operations so implementations can target real or virtual terminals.

package terminal

// Terminal abstracts low-level terminal operations: raw mode, size
// queries, cursor movement, and output writing. Implementations must
// degrade to no-ops when no real console is attached, so callers never
// have to handle a missing terminal as an error.
type Terminal interface {
	EnterRawMode() error
	ExitRawMode() error
	Size() (width, height int, err error)
	Write(p []byte) (n int, err error)

	// SetCursorCol moves the cursor to a zero-based column on the current row.
	SetCursorCol(col int) error
	SaveCursor() error
	RestoreCursor() error
	ShowCursor(visible bool) error
	Clear() error

	OnResize(fn func(width, height int))
}

// WriteString writes s to t.
func WriteString(t Terminal, s string) error {
	_, err := t.Write([]byte(s))
	return err
}
