// ABOUTME: Tests for the key queue pump, batching, and repeat throttling
// ABOUTME: Uses in-memory readers; escape disambiguation timing kept to one case

package key

import (
	"context"
	"io"
	"reflect"
	"strings"
	"testing"
	"time"
)

// collect drains every buffered key without blocking.
func collect(q *Queue) []Key {
	var out []Key
	for {
		k, ok := q.Poll()
		if !ok {
			return out
		}
		out = append(out, k)
	}
}

func TestStartParsesStream(t *testing.T) {
	t.Parallel()

	q := NewQueue(strings.NewReader("ab\x1b[A\x0d"))
	q.Start(context.Background())

	want := []Key{
		{Type: KeyRune, Rune: 'a'},
		{Type: KeyRune, Rune: 'b'},
		{Type: KeyUp},
		{Type: KeyEnter},
	}
	if got := collect(q); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStartStripsPasteMarkers(t *testing.T) {
	t.Parallel()

	q := NewQueue(strings.NewReader("\x1b[200~hi\x1b[201~"))
	q.Start(context.Background())

	want := []Key{
		{Type: KeyRune, Rune: 'h'},
		{Type: KeyRune, Rune: 'i'},
	}
	if got := collect(q); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestStartUTF8AcrossReads(t *testing.T) {
	t.Parallel()

	// A multi-byte rune split across two reads must reassemble.
	raw := []byte("日")
	q := NewQueue(&chunkReader{chunks: [][]byte{raw[:1], raw[1:]}})
	q.Start(context.Background())

	want := []Key{{Type: KeyRune, Rune: '日'}}
	if got := collect(q); !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestLoneEscapeDeliveredAfterTimeout(t *testing.T) {
	t.Parallel()

	q := NewQueue(strings.NewReader("\x1b"))
	start := time.Now()
	q.Start(context.Background())

	got := collect(q)
	want := []Key{{Type: KeyEscape}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
	if elapsed := time.Since(start); elapsed < escTimeout {
		t.Errorf("escape delivered after %v, want at least %v", elapsed, escTimeout)
	}
}

func TestDrainBatchesBufferedKeys(t *testing.T) {
	t.Parallel()

	q := NewQueue(nil)
	q.Push(Key{Type: KeyRune, Rune: 'x'})
	q.Push(Key{Type: KeyRune, Rune: 'y'})
	q.Push(Key{Type: KeyEnter})

	got := q.Drain(context.Background(), 64)
	want := []Key{
		{Type: KeyRune, Rune: 'x'},
		{Type: KeyRune, Rune: 'y'},
		{Type: KeyEnter},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestDrainThrottlesKeyRepeat(t *testing.T) {
	t.Parallel()

	q := NewQueue(nil)
	for i := 0; i < 30; i++ {
		q.Push(Key{Type: KeyRune, Rune: 'z'})
	}
	q.Push(Key{Type: KeyEnter})

	got := q.Drain(context.Background(), 64)
	if len(got) != maxRepeat+1 {
		t.Fatalf("batch length = %d, want %d", len(got), maxRepeat+1)
	}
	for i := 0; i < maxRepeat; i++ {
		if got[i].Rune != 'z' {
			t.Errorf("batch[%d] = %+v, want z", i, got[i])
		}
	}
	if got[maxRepeat].Type != KeyEnter {
		t.Errorf("last key = %+v, want Enter", got[maxRepeat])
	}
}

func TestDrainRespectsMax(t *testing.T) {
	t.Parallel()

	q := NewQueue(nil)
	q.Push(Key{Type: KeyRune, Rune: 'a'})
	q.Push(Key{Type: KeyRune, Rune: 'b'})
	q.Push(Key{Type: KeyRune, Rune: 'c'})

	if got := q.Drain(context.Background(), 2); len(got) != 2 {
		t.Errorf("batch length = %d, want 2", len(got))
	}
}

func TestDrainCancelledContext(t *testing.T) {
	t.Parallel()

	q := NewQueue(nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if got := q.Drain(ctx, 8); got != nil {
		t.Errorf("got %+v, want nil on cancelled context", got)
	}
}

func TestReadBlocksUntilPush(t *testing.T) {
	t.Parallel()

	q := NewQueue(nil)
	done := make(chan Key, 1)
	go func() {
		k, _ := q.Read(context.Background())
		done <- k
	}()

	time.Sleep(10 * time.Millisecond)
	q.Push(Key{Type: KeyEnter})

	select {
	case k := <-done:
		if k.Type != KeyEnter {
			t.Errorf("got %+v, want Enter", k)
		}
	case <-time.After(time.Second):
		t.Fatal("Read did not return after Push")
	}
}

func TestReadReportsShutdownAfterPumpExit(t *testing.T) {
	t.Parallel()

	q := NewQueue(strings.NewReader("ab"))
	q.Start(context.Background())

	ctx := context.Background()
	for _, want := range []rune{'a', 'b'} {
		k, ok := q.Read(ctx)
		if !ok || k.Rune != want {
			t.Fatalf("Read = (%+v, %v), want rune %q", k, ok, want)
		}
	}
	if k, ok := q.Read(ctx); ok {
		t.Errorf("Read after pump exit = (%+v, true), want no key", k)
	}
	if batch := q.Drain(ctx, 8); batch != nil {
		t.Errorf("Drain after pump exit = %v, want nil", batch)
	}
}

func TestReadUnblocksWhenPumpExits(t *testing.T) {
	t.Parallel()

	q := NewQueue(strings.NewReader(""))
	got := make(chan bool, 1)
	go func() {
		_, ok := q.Read(context.Background())
		got <- ok
	}()

	q.Start(context.Background())

	select {
	case ok := <-got:
		if ok {
			t.Error("Read reported a key from an empty source")
		}
	case <-time.After(time.Second):
		t.Fatal("Read still blocked after the pump exited")
	}
}

// chunkReader returns one chunk per Read call, then EOF.
type chunkReader struct {
	chunks [][]byte
}

func (c *chunkReader) Read(p []byte) (int, error) {
	if len(c.chunks) == 0 {
		return 0, io.EOF
	}
	n := copy(p, c.chunks[0])
	c.chunks = c.chunks[1:]
	return n, nil
}
