// ABOUTME: E2E tests for the pager: pagination prompts, quit, run-free, and escape cancel
// ABOUTME: Drives the real binary through a PTY so raw mode and key parsing are exercised end to end

package e2e

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixtureFile writes n numbered lines and returns the path.
func fixtureFile(t *testing.T, n int) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.txt")
	var content string
	for i := 1; i <= n; i++ {
		content += fmt.Sprintf("line %03d\n", i)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestPager_ShortFileExitsWithoutPrompt(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startConterm(t, fixtureFile(t, 5))
	defer s.close()

	s.expectStringTimeout(t, "line 005", 5*time.Second)
	s.waitExit(t, 5*time.Second)

	if s.countString("-- More --") != 0 {
		t.Errorf("short file triggered pagination:\n%s", s.output())
	}
}

func TestPager_LongFilePaginates(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startConterm(t, fixtureFile(t, 100))
	defer s.close()

	// A 24-row terminal pauses after the first screenful.
	s.expectStringTimeout(t, "-- More --", 5*time.Second)
	if s.countString("line 050") != 0 {
		t.Errorf("content past the first page printed before continue")
	}

	// Space releases one more page.
	s.send(t, " ")
	s.expectStringTimeout(t, "line 040", 5*time.Second)

	// Enter runs free to the end.
	s.send(t, "\r")
	s.expectStringTimeout(t, "line 100", 5*time.Second)
	s.waitExit(t, 5*time.Second)
}

func TestPager_QuitStopsOutput(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startConterm(t, fixtureFile(t, 100))
	defer s.close()

	s.expectStringTimeout(t, "-- More --", 5*time.Second)
	s.send(t, "q")

	s.expectStringTimeout(t, "[Cancelled]", 5*time.Second)
	s.waitExit(t, 5*time.Second)

	if s.countString("line 100") != 0 {
		t.Errorf("output continued past quit:\n%s", s.output())
	}
}

func TestDemo_TextPromptRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startConterm(t, "-demo")
	defer s.close()

	s.expectStringTimeout(t, "Name (1-40 chars)> ", 5*time.Second)
	s.send(t, "mira\r")
	s.expectStringTimeout(t, "hello, mira", 5*time.Second)

	// Escape through the remaining prompts.
	s.expectStringTimeout(t, "How many", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "Save as> ", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "Password> ", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "yes/no? ", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "Press any key", 5*time.Second)
	s.send(t, "x")
	s.waitExit(t, 5*time.Second)
}

func TestDemo_ConfirmYes(t *testing.T) {
	if testing.Short() {
		t.Skip("e2e tests skipped in short mode")
	}

	s := startConterm(t, "-demo")
	defer s.close()

	s.expectStringTimeout(t, "Name (1-40 chars)> ", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "How many", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "Save as> ", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "Password> ", 5*time.Second)
	s.send(t, "\x1b")
	s.expectStringTimeout(t, "yes/no? ", 5*time.Second)
	s.send(t, "yes\r")
	s.expectStringTimeout(t, "confirmed", 5*time.Second)
	s.send(t, "x")
	s.waitExit(t, 5*time.Second)
}
