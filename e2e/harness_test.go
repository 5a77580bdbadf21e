// ABOUTME: PTY test harness: builds the conterm binary once and drives it through a pseudo-terminal
// ABOUTME: Provides send/expect helpers with timeouts and exit assertions

package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/creack/pty"
)

var (
	buildOnce sync.Once
	binPath   string
	buildErr  error
)

// binary builds cmd/conterm once per test run and returns its path.
func binary(t *testing.T) string {
	t.Helper()
	buildOnce.Do(func() {
		dir, err := os.MkdirTemp("", "conterm-e2e")
		if err != nil {
			buildErr = err
			return
		}
		binPath = filepath.Join(dir, "conterm")
		cmd := exec.Command("go", "build", "-o", binPath, "github.com/conterm/conterm/cmd/conterm")
		cmd.Dir = ".."
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("building conterm: %v\n%s", err, out)
		}
	})
	if buildErr != nil {
		t.Fatalf("%v", buildErr)
	}
	return binPath
}

// session is one running conterm process attached to a PTY.
type session struct {
	cmd    *exec.Cmd
	tty    *os.File
	mu     sync.Mutex
	out    bytes.Buffer
	exited chan error
}

// startConterm launches the binary under a 80x24 PTY.
func startConterm(t *testing.T, args ...string) *session {
	t.Helper()

	cmd := exec.Command(binary(t), args...)
	tty, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: 24, Cols: 80})
	if err != nil {
		t.Fatalf("starting conterm under pty: %v", err)
	}

	s := &session{cmd: cmd, tty: tty, exited: make(chan error, 1)}
	go s.readLoop()
	go func() { s.exited <- cmd.Wait() }()
	return s
}

func (s *session) readLoop() {
	buf := make([]byte, 4096)
	for {
		n, err := s.tty.Read(buf)
		if n > 0 {
			s.mu.Lock()
			s.out.Write(buf[:n])
			s.mu.Unlock()
		}
		if err != nil {
			return
		}
	}
}

// output returns everything the process has written so far.
func (s *session) output() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.out.String()
}

// send writes raw bytes to the process's terminal input.
func (s *session) send(t *testing.T, data string) {
	t.Helper()
	if _, err := s.tty.Write([]byte(data)); err != nil {
		t.Fatalf("sending %q: %v", data, err)
	}
}

// expectStringTimeout polls the accumulated output for a substring.
func (s *session) expectStringTimeout(t *testing.T, want string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if strings.Contains(s.output(), want) {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %q in output:\n%s", want, s.output())
}

// countString returns how many times sub occurs in the output so far.
func (s *session) countString(sub string) int {
	return strings.Count(s.output(), sub)
}

// waitExit asserts the process terminates within the timeout.
func (s *session) waitExit(t *testing.T, timeout time.Duration) {
	t.Helper()
	select {
	case <-s.exited:
	case <-time.After(timeout):
		t.Fatalf("process did not exit; output:\n%s", s.output())
	}
}

// close tears the session down, killing the process if still running.
func (s *session) close() {
	_ = s.cmd.Process.Kill()
	_ = s.tty.Close()
	select {
	case <-s.exited:
	case <-time.After(2 * time.Second):
	}
}
