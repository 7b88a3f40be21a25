// Package runlock serializes pipeline runs over a shared decomp root.
// Targets within one run own disjoint directories and need no locking, but
// two concurrent binspect invocations would race on the same target
// directories; the lock makes the second invocation fail fast instead.
package runlock

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// StaleThreshold is the maximum age of a lock before it is considered
// abandoned and broken.
const StaleThreshold = 10 * time.Minute

// ErrLockExists is returned when another run holds the lock.
var ErrLockExists = errors.New("run lock exists: another binspect run may be in progress")

// Lock represents a held run lock.
type Lock struct {
	path string
	file *os.File
}

// Acquire attempts to take the run lock under dir. Creation uses
// O_CREATE|O_EXCL so acquisition is atomic; a stale lock is removed and
// acquisition retried once.
func Acquire(dir string) (*Lock, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create lock directory: %w", err)
	}

	lockPath := filepath.Join(dir, ".binspect-run.lock")

	file, err := os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
	if err != nil {
		if !os.IsExist(err) {
			return nil, fmt.Errorf("create lock file: %w", err)
		}
		if stale, _ := isStale(lockPath); !stale {
			return nil, ErrLockExists
		}
		os.Remove(lockPath)
		file, err = os.OpenFile(lockPath, os.O_CREATE|os.O_EXCL|os.O_RDWR, 0600)
		if err != nil {
			return nil, ErrLockExists
		}
	}

	meta := fmt.Sprintf("pid=%d\ntimestamp=%s\n", os.Getpid(), time.Now().UTC().Format(time.RFC3339))
	if _, err := file.WriteString(meta); err != nil {
		file.Close()
		os.Remove(lockPath)
		return nil, fmt.Errorf("write lock data: %w", err)
	}

	return &Lock{path: lockPath, file: file}, nil
}

// Release releases the lock.
func (l *Lock) Release() error {
	if l.file != nil {
		l.file.Close()
		l.file = nil
	}

	if l.path != "" {
		if err := os.Remove(l.path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove lock file: %w", err)
		}
	}

	return nil
}

// isStale checks whether the lock file is older than StaleThreshold.
func isStale(lockPath string) (bool, error) {
	info, err := os.Stat(lockPath)
	if err != nil {
		return false, err
	}
	return time.Since(info.ModTime()) > StaleThreshold, nil
}
