// Package testutil provides utilities for testing binspect in isolation.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SetupTestEnv points binspect at an isolated decomp root for the duration
// of a test, so tests never touch the user's real workspace or pick up a
// real GitHub token. Cleanup is handled by t.TempDir().
//
// Returns the isolated root.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	root := filepath.Join(tmpDir, "binspect")

	t.Setenv("BINSPECT_DIR", root)
	t.Setenv("BINSPECT_GITHUB_TOKEN", "")
	t.Setenv("GITHUB_TOKEN", "")

	if err := os.MkdirAll(root, 0o750); err != nil {
		t.Fatalf("failed to create test directory %s: %v", root, err)
	}

	return root
}
