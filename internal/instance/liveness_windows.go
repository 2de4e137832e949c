//go:build windows

package instance

import (
	"os"

	"github.com/google/gops/goprocess"
)

// liveness reports whether pid belongs to a live Go process. Windows has no
// signal-0 probe, so the gops process table is the only source.
func liveness(pid int) bool {
	if pid <= 0 {
		return false
	}
	if pid == os.Getpid() {
		return true
	}
	for _, p := range goprocess.FindAll() {
		if p.PID == pid {
			return true
		}
	}
	return false
}
