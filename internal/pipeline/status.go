package pipeline

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZebulonRouseFrantzich/binspect/internal/registry"
)

// TargetStatus describes what a target's workspace currently holds.
type TargetStatus struct {
	Target        string
	Fetched       bool
	Assets        []string
	AnalysisFiles int
}

// Status inspects the decomp root and reports per-target workspace state,
// in registry order. A target with no directory yet reports Fetched=false.
func Status(root string, reg *registry.Registry) []TargetStatus {
	statuses := make([]TargetStatus, 0, reg.Len())

	for _, target := range reg.Targets() {
		st := TargetStatus{Target: target.Name}
		targetDir := filepath.Join(DecompDir(root), target.Name)

		entries, err := os.ReadDir(targetDir)
		if err == nil {
			st.Fetched = true
			for _, entry := range entries {
				if !entry.IsDir() {
					st.Assets = append(st.Assets, entry.Name())
				}
			}
			st.AnalysisFiles = countAnalysisFiles(filepath.Join(targetDir, "analysis"))
		}

		statuses = append(statuses, st)
	}

	return statuses
}

// countAnalysisFiles counts tool output files under a target's analysis
// directory, across per-binary subdirectories.
func countAnalysisFiles(analysisDir string) int {
	count := 0
	filepath.WalkDir(analysisDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), "_output.txt") {
			count++
		}
		return nil
	})
	return count
}
