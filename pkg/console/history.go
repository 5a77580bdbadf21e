// ABOUTME: Bounded process-wide prompt history with recall cursors and fuzzy search.
// ABOUTME: Capacity 32, FIFO eviction; entries are appended on commit and never mutated.

package console

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
)

// HistorySize is the maximum number of retained entries; the oldest
// entry is evicted when the buffer is full.
const HistorySize = 32

// History is the shared buffer of previously committed prompt inputs.
type History struct {
	mu      sync.Mutex
	entries []string
}

// NewHistory creates an empty History.
func NewHistory() *History {
	return &History{entries: make([]string, 0, HistorySize)}
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}

// Add appends a committed input, evicting the oldest entry when full.
// Empty strings are ignored.
func (h *History) Add(entry string) {
	if entry == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.entries) >= HistorySize {
		h.entries = h.entries[1:]
	}
	h.entries = append(h.entries, entry)
}

// At returns the entry at index i (0 = oldest).
func (h *History) At(i int) (string, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i], true
}

// Entries returns a copy of all entries, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.entries))
	copy(out, h.entries)
	return out
}

// Search fuzzy-matches pattern against the entries and returns the best
// match, preferring more recent entries on equal score.
func (h *History) Search(pattern string) (string, bool) {
	if pattern == "" {
		return "", false
	}
	entries := h.Entries()
	matches := fuzzy.Find(pattern, entries)
	if len(matches) == 0 {
		return "", false
	}
	best := matches[0]
	for _, m := range matches[1:] {
		if m.Score > best.Score || (m.Score == best.Score && m.Index > best.Index) {
			best = m
		}
	}
	return best.Str, true
}

// SaveToFile writes entries to the given file path, one per line.
func (h *History) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("creating history directory: %w", err)
	}

	entries := h.Entries()
	content := strings.Join(entries, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("writing history file: %w", err)
	}
	return nil
}

// LoadFromFile reads entries from the given file path, keeping the most
// recent HistorySize lines. Returns nil if the file does not exist.
func (h *History) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading history file: %w", err)
	}

	var entries []string
	for _, line := range strings.Split(string(data), "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			entries = append(entries, trimmed)
		}
	}
	if len(entries) > HistorySize {
		entries = entries[len(entries)-HistorySize:]
	}

	h.mu.Lock()
	h.entries = entries
	h.mu.Unlock()
	return nil
}

// Recall is a per-prompt cursor into the history, created at the start
// of each prompt execution. The cursor begins one past the newest entry
// so the first Back yields the most recent input.
type Recall struct {
	h   *History
	pos int
}

// StartRecall returns a fresh Recall cursor.
func (h *History) StartRecall() *Recall {
	return &Recall{h: h, pos: h.Len()}
}

// Back steps toward older entries (floor 0) and returns the entry at
// the new position, or false when the history is empty.
func (r *Recall) Back() (string, bool) {
	if r.h.Len() == 0 {
		return "", false
	}
	if r.pos > 0 {
		r.pos--
	}
	return r.h.At(r.pos)
}

// Forward steps toward newer entries. Stepping past the newest entry
// yields a single empty-string "clear" step; after that it reports
// false until the cursor moves back again.
func (r *Recall) Forward() (string, bool) {
	n := r.h.Len()
	if r.pos >= n {
		return "", false
	}
	r.pos++
	if r.pos == n {
		return "", true
	}
	return r.h.At(r.pos)
}
