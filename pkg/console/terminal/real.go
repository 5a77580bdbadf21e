// ABOUTME: Real terminal implementation over golang.org/x/term and ANSI control sequences.
// ABOUTME: Degrades to a writer-only mode with default size when stdout is not a TTY.

package terminal

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// Fallback dimensions reported when no real console is attached.
const (
	defaultWidth  = 80
	defaultHeight = 24
)

// Real is a Terminal backed by an actual console device.
type Real struct {
	in  *os.File
	out *os.File
	tty bool

	mu       sync.Mutex
	oldState *term.State
	resizeFn func(width, height int)
	stopCh   chan struct{}
}

// NewReal creates a Real terminal over the given input and output files
// (normally os.Stdin and os.Stdout). When out is not a terminal, size
// queries return 80x24 and all control sequences become no-ops; plain
// writes still pass through.
func NewReal(in, out *os.File) *Real {
	return &Real{
		in:  in,
		out: out,
		tty: term.IsTerminal(int(in.Fd())) && term.IsTerminal(int(out.Fd())),
	}
}

// IsTTY reports whether a real console is attached.
func (r *Real) IsTTY() bool {
	return r.tty
}

// EnterRawMode switches the input terminal into raw mode.
func (r *Real) EnterRawMode() error {
	if !r.tty {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.oldState != nil {
		return nil
	}
	state, err := term.MakeRaw(int(r.in.Fd()))
	if err != nil {
		return fmt.Errorf("entering raw mode: %w", err)
	}
	r.oldState = state
	return nil
}

// ExitRawMode restores the terminal state saved by EnterRawMode.
func (r *Real) ExitRawMode() error {
	if !r.tty {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.oldState == nil {
		return nil
	}
	if err := term.Restore(int(r.in.Fd()), r.oldState); err != nil {
		return fmt.Errorf("exiting raw mode: %w", err)
	}
	r.oldState = nil
	return nil
}

// Size returns the console dimensions, or 80x24 without a console.
func (r *Real) Size() (int, int, error) {
	if !r.tty {
		return defaultWidth, defaultHeight, nil
	}
	w, h, err := term.GetSize(int(r.out.Fd()))
	if err != nil {
		return defaultWidth, defaultHeight, nil
	}
	return w, h, nil
}

// Write writes raw bytes to the output.
func (r *Real) Write(p []byte) (int, error) {
	n, err := r.out.Write(p)
	if err != nil {
		return n, fmt.Errorf("writing to terminal: %w", err)
	}
	return n, nil
}

// SetCursorCol moves the cursor to a zero-based column on the current row.
func (r *Real) SetCursorCol(col int) error {
	return r.control(fmt.Sprintf("\x1b[%dG", col+1))
}

// SaveCursor saves the cursor position (DECSC).
func (r *Real) SaveCursor() error {
	return r.control("\x1b7")
}

// RestoreCursor restores the position saved by SaveCursor (DECRC).
func (r *Real) RestoreCursor() error {
	return r.control("\x1b8")
}

// ShowCursor toggles cursor visibility.
func (r *Real) ShowCursor(visible bool) error {
	if visible {
		return r.control("\x1b[?25h")
	}
	return r.control("\x1b[?25l")
}

// Clear erases the screen and homes the cursor.
func (r *Real) Clear() error {
	return r.control("\x1b[2J\x1b[H")
}

// OnResize registers a callback invoked on console size changes.
func (r *Real) OnResize(fn func(width, height int)) {
	r.mu.Lock()
	r.resizeFn = fn
	stop := r.stopCh
	r.mu.Unlock()

	if !r.tty || stop != nil {
		return
	}
	r.mu.Lock()
	r.stopCh = make(chan struct{})
	r.mu.Unlock()
	go r.watchResize()
}

// Close stops the resize watcher and leaves raw mode.
func (r *Real) Close() error {
	r.mu.Lock()
	if r.stopCh != nil {
		close(r.stopCh)
		r.stopCh = nil
	}
	r.mu.Unlock()
	return r.ExitRawMode()
}

// control writes a control sequence, suppressed without a console so
// piped output stays clean.
func (r *Real) control(seq string) error {
	if !r.tty {
		return nil
	}
	_, err := r.out.Write([]byte(seq))
	if err != nil {
		return fmt.Errorf("writing control sequence: %w", err)
	}
	return nil
}

// notifyResize invokes the registered resize callback with fresh dimensions.
func (r *Real) notifyResize() {
	r.mu.Lock()
	fn := r.resizeFn
	r.mu.Unlock()
	if fn == nil {
		return
	}
	w, h, _ := r.Size()
	fn(w, h)
}
