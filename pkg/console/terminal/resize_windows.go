// ABOUTME: Resize watching stub for Windows.
// ABOUTME: Console size changes are picked up lazily by the next Size query.

//go:build windows

package terminal

// watchResize is a no-op on Windows; there is no SIGWINCH equivalent,
// so callers observe new dimensions on their next Size call.
func (r *Real) watchResize() {
	r.mu.Lock()
	stop := r.stopCh
	r.mu.Unlock()
	if stop == nil {
		return
	}
	<-stop
}
