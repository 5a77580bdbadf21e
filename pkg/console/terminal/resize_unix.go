// ABOUTME: SIGWINCH-based resize watching for Unix terminals.
// ABOUTME: Forwards size changes to the callback registered via OnResize.

//go:build unix

package terminal

import (
	"os"
	"os/signal"
	"syscall"
)

// watchResize listens for SIGWINCH until Close stops the watcher.
func (r *Real) watchResize() {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGWINCH)
	defer signal.Stop(ch)

	r.mu.Lock()
	stop := r.stopCh
	r.mu.Unlock()
	if stop == nil {
		return
	}

	for {
		select {
		case <-stop:
			return
		case <-ch:
			r.notifyResize()
		}
	}
}
