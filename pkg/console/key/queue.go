// ABOUTME: Queue reads raw bytes from an io.Reader and delivers parsed key events.
// ABOUTME: Supports blocking reads, non-blocking polls, and batch drains with repeat throttling.

package key

import (
	"context"
	"io"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	readBufSize  = 256
	queueDepth   = 256
	escTimeout   = 50 * time.Millisecond
	bracketStart = "\x1b[200~"
	bracketEnd   = "\x1b[201~"

	// maxRepeat is the per-batch cap on identical consecutive keys;
	// excess repeats from pathological key-repeat are dropped by Drain.
	maxRepeat = 10
)

// Queue parses terminal input into Keys and buffers them for consumers.
// The pump goroutine (Start) writes; prompt and surface code reads via
// Read, Poll, and Drain.
type Queue struct {
	reader    io.Reader
	keys      chan Key
	closed    chan struct{}
	closeOnce sync.Once
	buf       []byte
	mu        sync.Mutex
}

// NewQueue creates a Queue that reads from r. Call Start to begin the
// pump; tests may instead inject keys directly with Push.
func NewQueue(r io.Reader) *Queue {
	return &Queue{
		reader: r,
		keys:   make(chan Key, queueDepth),
		closed: make(chan struct{}),
		buf:    make([]byte, 0, readBufSize),
	}
}

// Push injects a parsed key, dropping it if the queue is full.
func (q *Queue) Push(k Key) {
	select {
	case q.keys <- k:
	default:
	}
}

// Read blocks until a key arrives, ctx is cancelled, or the pump has
// exited with nothing left buffered. Keys delivered before the pump
// stopped are always drained first.
func (q *Queue) Read(ctx context.Context) (Key, bool) {
	select {
	case k := <-q.keys:
		return k, true
	default:
	}
	select {
	case <-ctx.Done():
		return Key{}, false
	case k := <-q.keys:
		return k, true
	case <-q.closed:
		select {
		case k := <-q.keys:
			return k, true
		default:
			return Key{}, false
		}
	}
}

// Poll returns a pending key without blocking.
func (q *Queue) Poll() (Key, bool) {
	select {
	case k, ok := <-q.keys:
		return k, ok
	default:
		return Key{}, false
	}
}

// Drain blocks for the first key, then greedily takes whatever else is
// already buffered, up to max keys. Runs of the same key longer than
// maxRepeat are truncated so key-repeat floods cannot swamp a prompt.
func (q *Queue) Drain(ctx context.Context, max int) []Key {
	first, ok := q.Read(ctx)
	if !ok {
		return nil
	}
	batch := []Key{first}
	repeats := 1
	for len(batch) < max {
		k, ok := q.Poll()
		if !ok {
			break
		}
		if k == batch[len(batch)-1] {
			repeats++
			if repeats > maxRepeat {
				continue
			}
		} else {
			repeats = 1
		}
		batch = append(batch, k)
	}
	return batch
}

// Start reads from the underlying reader until ctx is cancelled or the
// reader returns an error. It blocks; run it in a goroutine. Once it
// returns, blocked Reads report false after the buffered keys drain.
func (q *Queue) Start(ctx context.Context) {
	readCh := make(chan readResult)
	done := make(chan struct{})

	go q.readLoop(readCh, done)
	defer close(done)
	defer q.closeOnce.Do(func() { close(q.closed) })

	for {
		select {
		case <-ctx.Done():
			return
		case result, ok := <-readCh:
			if !ok || result.err != nil {
				q.flushRemaining()
				return
			}
			q.mu.Lock()
			q.buf = append(q.buf, result.data...)
			q.mu.Unlock()
			q.dispatchKeys(ctx)
		}
	}
}

// readResult holds the outcome of a single Read call.
type readResult struct {
	data []byte
	err  error
}

// readLoop continuously reads from the reader and sends data on ch.
// It stops when done is closed, preventing goroutine leaks on cancellation.
func (q *Queue) readLoop(ch chan<- readResult, done <-chan struct{}) {
	defer close(ch)
	tmp := make([]byte, readBufSize)
	for {
		n, err := q.reader.Read(tmp)
		if n > 0 {
			data := make([]byte, n)
			copy(data, tmp[:n])
			select {
			case ch <- readResult{data: data}:
			case <-done:
				return
			}
		}
		if err != nil {
			if n == 0 {
				select {
				case ch <- readResult{err: err}:
				case <-done:
				}
			}
			return
		}
	}
}

// dispatchKeys parses and delivers all complete key sequences from the buffer.
func (q *Queue) dispatchKeys(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		q.mu.Lock()
		if len(q.buf) == 0 {
			q.mu.Unlock()
			return
		}

		consumed, k, needsWait := q.tryParse()
		if needsWait {
			q.mu.Unlock()
			// Lone ESC or split sequence: wait briefly for the rest.
			if !q.waitForMore(ctx) {
				return
			}
			// Still incomplete after the grace period: hand control
			// back so the pump can read the remaining bytes.
			q.mu.Lock()
			_, _, stillWaiting := q.tryParse()
			q.mu.Unlock()
			if stillWaiting {
				return
			}
			continue
		}

		if consumed > 0 {
			q.buf = q.buf[consumed:]
		}
		q.mu.Unlock()

		if consumed == 0 {
			return
		}
		if k.Type != KeyUnknown {
			q.deliver(ctx, k)
		}
	}
}

// deliver sends a key, blocking until there is room or ctx is cancelled.
func (q *Queue) deliver(ctx context.Context, k Key) {
	select {
	case q.keys <- k:
	case <-ctx.Done():
	}
}

// tryParse attempts to parse one key from the front of q.buf.
// Returns (consumed bytes, parsed key, needs-wait flag).
// Must be called with q.mu held.
func (q *Queue) tryParse() (int, Key, bool) {
	if len(q.buf) == 0 {
		return 0, Key{}, false
	}

	// Bracketed paste markers are stripped; the pasted content itself
	// flows through as ordinary keys so prompts see the burst.
	if n := q.pasteMarker(); n > 0 {
		return n, Key{Type: KeyUnknown}, false
	}

	// Escape sequence: need at least 2 bytes to distinguish ESC from a sequence.
	if q.buf[0] == 0x1b {
		if len(q.buf) == 1 {
			return 0, Key{}, true
		}
		return q.parseEscapeFromBuf()
	}

	// Incomplete UTF-8 rune: wait for more bytes.
	if !utf8.FullRune(q.buf) {
		if len(q.buf) < utf8.UTFMax {
			return 0, Key{}, true
		}
		return 1, Key{Type: KeyUnknown}, false
	}

	r, size := utf8.DecodeRune(q.buf)
	if r == utf8.RuneError {
		return 1, Key{Type: KeyUnknown}, false
	}

	return size, ParseKey(string(q.buf[:size])), false
}

// parseEscapeFromBuf parses an escape sequence from the buffer.
// Must be called with q.mu held and len(q.buf) >= 2.
func (q *Queue) parseEscapeFromBuf() (int, Key, bool) {
	// Try progressively longer prefixes, longest first
	// (max 8 bytes covers sequences like \x1b[200~).
	maxLen := min(len(q.buf), 8)
	for end := maxLen; end >= 3; end-- {
		candidate := string(q.buf[:end])
		k := ParseKey(candidate)
		if k.Type != KeyUnknown {
			return end, k, false
		}
	}

	// A CSI/SS3 introducer is never read as Alt+[ or Alt+O: either the
	// sequence is still arriving, or it is one we do not recognize.
	if q.buf[1] == '[' || q.buf[1] == 'O' {
		if len(q.buf) <= 3 {
			return 0, Key{}, true
		}
		return 1, Key{Type: KeyEscape}, false
	}

	// Alt+letter: ESC followed by a printable byte.
	if k := ParseKey(string(q.buf[:2])); k.Type != KeyUnknown {
		return 2, k, false
	}

	// Unknown sequence; consume the ESC and let the rest be re-parsed.
	return 1, Key{Type: KeyEscape}, false
}

// pasteMarker returns the length of a bracketed-paste marker at the
// front of the buffer, or 0. Must be called with q.mu held.
func (q *Queue) pasteMarker() int {
	s := string(q.buf)
	for _, marker := range []string{bracketStart, bracketEnd} {
		if len(s) >= len(marker) && s[:len(marker)] == marker {
			return len(marker)
		}
	}
	return 0
}

// waitForMore pauses briefly to allow the rest of an escape sequence to
// arrive. Returns false if ctx was cancelled.
func (q *Queue) waitForMore(ctx context.Context) bool {
	timer := time.NewTimer(escTimeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		// Timeout: a still-lone ESC really is the Escape key.
		q.mu.Lock()
		if len(q.buf) == 1 && q.buf[0] == 0x1b {
			q.buf = q.buf[:0]
			q.mu.Unlock()
			q.deliver(ctx, Key{Type: KeyEscape})
			return true
		}
		q.mu.Unlock()
		return true
	}
}

// flushRemaining delivers any leftover complete keys in the buffer.
func (q *Queue) flushRemaining() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for len(q.buf) > 0 {
		consumed, k, needsWait := q.tryParse()
		if needsWait {
			// No more data coming; a pending ESC really is Escape,
			// anything else is a truncated rune.
			if q.buf[0] == 0x1b {
				q.Push(Key{Type: KeyEscape})
			}
			q.buf = q.buf[1:]
			continue
		}
		if consumed == 0 {
			return
		}
		q.buf = q.buf[consumed:]
		if k.Type != KeyUnknown {
			q.Push(k)
		}
	}
}
