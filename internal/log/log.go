// ABOUTME: Debug logging wrapper around slog levels for verbose mode output
// ABOUTME: Writes to stderr or a side file so log lines never mix with terminal drawing

package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

var (
	level atomic.Int64

	mu      sync.Mutex
	out     io.Writer = os.Stderr
	rawMode atomic.Bool
)

func init() {
	level.Store(int64(LevelInfo))
}

// SetLevel sets the global log level.
func SetLevel(l slog.Level) {
	level.Store(int64(l))
}

// GetLevel returns the current log level.
func GetLevel() slog.Level {
	return slog.Level(level.Load())
}

// SetOutput redirects log output. Pass an os.File opened with ToFile to
// keep logs off the terminal entirely.
func SetOutput(w io.Writer) {
	mu.Lock()
	out = w
	mu.Unlock()
}

// ToFile opens (appending) a log file and redirects output to it.
func ToFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	SetOutput(f)
	return f, nil
}

// SetRawMode tells the logger the terminal is in raw mode, so bare
// newlines must be written as CRLF to keep columns aligned.
func SetRawMode(raw bool) {
	rawMode.Store(raw)
}

func emit(tag, format string, args ...any) {
	line := fmt.Sprintf("["+tag+"] "+format, args...)
	eol := "\n"
	if rawMode.Load() {
		eol = "\r\n"
	}
	mu.Lock()
	fmt.Fprint(out, line+eol)
	mu.Unlock()
}

// Debug logs a debug message if the level allows it.
func Debug(format string, args ...any) {
	if slog.Level(level.Load()) > LevelDebug {
		return
	}
	emit("DEBUG", format, args...)
}

// Info logs an info message if the level allows it.
func Info(format string, args ...any) {
	if slog.Level(level.Load()) > LevelInfo {
		return
	}
	emit("INFO", format, args...)
}

// Warn logs a warning message if the level allows it.
func Warn(format string, args ...any) {
	if slog.Level(level.Load()) > LevelWarn {
		return
	}
	emit("WARN", format, args...)
}

// Error logs an error message (always emitted).
func Error(format string, args ...any) {
	emit("ERROR", format, args...)
}
