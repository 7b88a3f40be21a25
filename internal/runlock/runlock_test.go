package runlock

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestAcquireAndRelease(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	lockPath := filepath.Join(dir, ".binspect-run.lock")
	if _, err := os.Stat(lockPath); err != nil {
		t.Fatalf("lock file not created: %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("Release() error = %v", err)
	}

	if _, err := os.Stat(lockPath); !os.IsNotExist(err) {
		t.Error("lock file still exists after Release()")
	}
}

func TestAcquireWhileHeld(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}
	defer lock.Release()

	_, err = Acquire(dir)
	if !errors.Is(err, ErrLockExists) {
		t.Errorf("second Acquire() error = %v, want ErrLockExists", err)
	}
}

func TestAcquireBreaksStaleLock(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, ".binspect-run.lock")

	if err := os.WriteFile(lockPath, []byte("pid=99999\n"), 0600); err != nil {
		t.Fatalf("write stale lock: %v", err)
	}
	old := time.Now().Add(-StaleThreshold - time.Minute)
	if err := os.Chtimes(lockPath, old, old); err != nil {
		t.Fatalf("age lock file: %v", err)
	}

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() over stale lock error = %v", err)
	}
	lock.Release()
}

func TestReleaseTwice(t *testing.T) {
	dir := t.TempDir()

	lock, err := Acquire(dir)
	if err != nil {
		t.Fatalf("Acquire() error = %v", err)
	}

	if err := lock.Release(); err != nil {
		t.Fatalf("first Release() error = %v", err)
	}
	if err := lock.Release(); err != nil {
		t.Errorf("second Release() error = %v, want nil", err)
	}
}
