// Package instance enforces one active copyclip process per user via a
// PID lock file, and carries the one-shot "show window" hand-off marker a
// losing launch leaves for the running instance.
//
// PID-file locking is inherently racy: the recorded PID can be recycled by
// an unrelated process between the liveness probe and the lock rewrite.
// That race is accepted here; the gops executable check in liveness()
// narrows it by treating a recycled PID owned by a non-Go process as stale.
package instance

import (
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.copyclip.dev/copyclip/internal/paths"
)

// Coordinator manages the lock and show-signal files inside one data dir.
type Coordinator struct {
	lockPath   string
	signalPath string
	pid        int

	// liveness probe, swappable in tests
	alive func(pid int) bool
}

// New returns a Coordinator for the given data directory.
func New(dataDir string) *Coordinator {
	return &Coordinator{
		lockPath:   filepath.Join(dataDir, paths.LockFile),
		signalPath: filepath.Join(dataDir, paths.SignalFile),
		pid:        os.Getpid(),
		alive:      liveness,
	}
}

// OwnerPID returns the PID recorded in the lock file, if the file exists
// and parses.
func (c *Coordinator) OwnerPID() (int, bool) {
	raw, err := os.ReadFile(c.lockPath)
	if err != nil {
		return 0, false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(raw)))
	if err != nil {
		return 0, false
	}
	return pid, true
}

// IsRunning reports whether a live instance currently owns the lock.
// Stale locks (dead or unparseable PID) are garbage-collected here.
func (c *Coordinator) IsRunning() bool {
	raw, err := os.ReadFile(c.lockPath)
	if os.IsNotExist(err) {
		return false
	}
	if err != nil {
		slog.Warn("could not read lock file", "path", c.lockPath, "err", err)
		return false
	}

	pid, perr := strconv.Atoi(strings.TrimSpace(string(raw)))
	if perr != nil {
		slog.Warn("removing malformed lock file", "path", c.lockPath)
		_ = os.Remove(c.lockPath)
		return false
	}

	if pid == c.pid {
		return false // our own lock, not another instance
	}
	if c.alive(pid) {
		return true
	}

	slog.Info("removing stale lock file", "path", c.lockPath, "pid", pid)
	_ = os.Remove(c.lockPath)
	return false
}

// Acquire takes the instance lock, reclaiming stale locks first. Returns
// false if another live instance holds it; the lock file is untouched then.
func (c *Coordinator) Acquire() bool {
	if c.IsRunning() {
		return false
	}
	if err := os.WriteFile(c.lockPath, []byte(strconv.Itoa(c.pid)), 0o644); err != nil {
		slog.Error("could not write lock file", "path", c.lockPath, "err", err)
		return false
	}
	return true
}

// Release removes the lock file, but only when it records our own PID — a
// second process must never delete the active owner's lock.
func (c *Coordinator) Release() {
	pid, ok := c.OwnerPID()
	if !ok || pid != c.pid {
		return
	}
	if err := os.Remove(c.lockPath); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not remove lock file", "path", c.lockPath, "err", err)
	}
}

// RequestShow asks the running instance to surface its window by touching
// the show-signal marker. Returns false when no instance is running.
func (c *Coordinator) RequestShow() bool {
	if !c.IsRunning() {
		return false
	}
	f, err := os.Create(c.signalPath)
	if err != nil {
		slog.Error("could not create show signal", "path", c.signalPath, "err", err)
		return false
	}
	_ = f.Close()
	return true
}

// ConsumeShowSignal checks for and deletes the show-signal marker,
// returning true exactly once per marker creation.
func (c *Coordinator) ConsumeShowSignal() bool {
	err := os.Remove(c.signalPath)
	if err == nil {
		return true
	}
	if !os.IsNotExist(err) {
		slog.Warn("could not consume show signal", "path", c.signalPath, "err", err)
	}
	return false
}

// SignalPath returns the show-signal marker path (watched by the daemon).
func (c *Coordinator) SignalPath() string { return c.signalPath }
