package instance

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.copyclip.dev/copyclip/internal/paths"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()
	c := New(dir)

	require.True(t, c.Acquire())

	raw, err := os.ReadFile(filepath.Join(dir, paths.LockFile))
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(os.Getpid()), string(raw))

	c.Release()
	assert.NoFileExists(t, filepath.Join(dir, paths.LockFile))
}

func TestSecondProcessLosesAcquire(t *testing.T) {
	dir := t.TempDir()

	owner := New(dir)
	require.True(t, owner.Acquire())

	second := New(dir)
	second.pid = owner.pid + 1
	second.alive = func(pid int) bool { return pid == owner.pid }

	assert.False(t, second.Acquire())

	// The owner's lock is untouched.
	pid, ok := owner.OwnerPID()
	require.True(t, ok)
	assert.Equal(t, owner.pid, pid)
}

func TestStaleLockReclaimed(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, paths.LockFile)
	require.NoError(t, os.WriteFile(lockPath, []byte("424242"), 0o644))

	c := New(dir)
	c.alive = func(int) bool { return false }

	require.True(t, c.Acquire())

	raw, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(c.pid), string(raw))
}

func TestMalformedLockReclaimed(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, paths.LockFile)
	require.NoError(t, os.WriteFile(lockPath, []byte("not a pid"), 0o644))

	c := New(dir)
	assert.True(t, c.Acquire())
}

func TestReleaseOnlyRemovesOwnLock(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, paths.LockFile)

	owner := New(dir)
	require.True(t, owner.Acquire())

	// A process that never owned the lock must not delete it.
	other := New(dir)
	other.pid = owner.pid + 1
	other.Release()
	assert.FileExists(t, lockPath)

	owner.Release()
	assert.NoFileExists(t, lockPath)
}

func TestShowSignalEdgeTriggered(t *testing.T) {
	dir := t.TempDir()

	owner := New(dir)
	require.True(t, owner.Acquire())

	second := New(dir)
	second.pid = owner.pid + 1
	second.alive = func(pid int) bool { return pid == owner.pid }

	require.False(t, second.Acquire())
	require.True(t, second.RequestShow())

	// Consumed exactly once per marker creation.
	assert.True(t, owner.ConsumeShowSignal())
	assert.False(t, owner.ConsumeShowSignal())

	require.True(t, second.RequestShow())
	assert.True(t, owner.ConsumeShowSignal())
}

func TestRequestShowWithoutRunningInstance(t *testing.T) {
	c := New(t.TempDir())
	assert.False(t, c.RequestShow())
	assert.False(t, c.ConsumeShowSignal())
}

func TestLivenessOwnPID(t *testing.T) {
	assert.True(t, liveness(os.Getpid()))
	assert.False(t, liveness(0))
	assert.False(t, liveness(-1))
}
