package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

// staleLockThreshold is how long a lock file can sit untouched before a
// new writer is allowed to reclaim it (spec §5: "lockers older than a
// stale threshold are considered abandoned and reclaimable").
const staleLockThreshold = 2 * time.Minute

// WriteLock is the store's single-writer advisory lock (spec §5: "single
// writer (enforced by an advisory file lock whose holder records its
// process identifier)"). Readers never take it; only mutating Store
// operations do, for the duration of one transaction.
type WriteLock struct {
	path string
}

// NewWriteLock returns a lock bound to <storeDir>/.write.lock.
func NewWriteLock(storeDir string) *WriteLock {
	return &WriteLock{path: filepath.Join(storeDir, ".write.lock")}
}

// Acquire takes the lock, reclaiming it from an abandoned holder (a PID
// that no longer exists, or a lock file older than staleLockThreshold).
// Returns a LockContention error if a live writer holds it.
func (l *WriteLock) Acquire() (func(), error) {
	for attempt := 0; attempt < 2; attempt++ {
		f, err := os.OpenFile(l.path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			fmt.Fprintf(f, "%d\n%d\n", os.Getpid(), time.Now().Unix())
			_ = f.Close()
			return func() { _ = os.Remove(l.path) }, nil
		}
		if !os.IsExist(err) {
			return nil, cgerrors.New(cgerrors.StoreIntegrity, "acquire_lock", err)
		}
		if l.reclaimIfAbandoned() {
			continue // retry the exclusive create now that the stale lock is gone
		}
		return nil, cgerrors.New(cgerrors.LockContention, "acquire_lock",
			fmt.Errorf("store is locked by another writer (%s)", l.path))
	}
	return nil, cgerrors.New(cgerrors.LockContention, "acquire_lock", fmt.Errorf("could not acquire store lock"))
}

// reclaimIfAbandoned removes the lock file if its holder's PID is dead or
// it is older than staleLockThreshold, and reports whether it did so.
func (l *WriteLock) reclaimIfAbandoned() bool {
	info, err := os.Stat(l.path)
	if err != nil {
		return false
	}

	content, err := os.ReadFile(l.path)
	if err == nil {
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		if len(lines) > 0 {
			if pid, err := strconv.Atoi(lines[0]); err == nil && processAlive(pid) {
				if time.Since(info.ModTime()) < staleLockThreshold {
					return false // live holder, not stale yet
				}
			}
		}
	}

	return os.Remove(l.path) == nil
}

// processAlive reports whether pid refers to a live process, using
// signal 0 which the kernel delivers without side effects — the standard
// Unix idiom for "does this PID still exist".
func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	return proc.Signal(syscall.Signal(0)) == nil
}
