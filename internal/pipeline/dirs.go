package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
)

// Layout holds the per-target directory paths under the decomp root.
type Layout struct {
	// TargetDir is <root>/decomp/<target>; downloaded assets land here.
	TargetDir string

	// ExtractedDir receives archive contents.
	ExtractedDir string

	// AnalysisDir receives per-tool output files.
	AnalysisDir string
}

// DecompDir returns the directory that holds all per-target workspaces.
func DecompDir(root string) string {
	return filepath.Join(root, "decomp")
}

// EnsureLayout creates the per-target directory tree under root. Existing
// directories are left alone, so re-running a target is safe.
func EnsureLayout(root, target string) (*Layout, error) {
	l := &Layout{
		TargetDir: filepath.Join(DecompDir(root), target),
	}
	l.ExtractedDir = filepath.Join(l.TargetDir, "extracted")
	l.AnalysisDir = filepath.Join(l.TargetDir, "analysis")

	for _, dir := range []string{l.TargetDir, l.ExtractedDir, l.AnalysisDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return l, nil
}
