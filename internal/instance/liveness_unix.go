//go:build !windows

package instance

import (
	"os"
	"syscall"

	"github.com/google/gops/goprocess"
)

// liveness reports whether pid belongs to a live copyclip-like process.
// Signal 0 is the zero-effect existence probe; a process that exists but is
// not a Go binary is treated as a recycled PID and therefore stale.
func liveness(pid int) bool {
	if pid <= 0 {
		return false
	}
	if pid == os.Getpid() {
		return true
	}
	if err := syscall.Kill(pid, 0); err != nil {
		if err == syscall.EPERM {
			// Exists but owned by someone else — cannot be our lock owner,
			// which always runs as the same user. Recycled PID.
			return false
		}
		return false
	}
	for _, p := range goprocess.FindAll() {
		if p.PID == pid {
			return true
		}
	}
	// Alive but not a Go process: the PID was recycled since the lock was
	// written.
	return false
}
