// Package extract expands downloaded release archives by shelling out to
// whichever extraction utility is installed on the host. It implements no
// archive format itself.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/ZebulonRouseFrantzich/binspect/internal/hosttools"
)

// ErrNoStrategy is returned when no installed tool matches the archive's
// extension. The caller treats it as "this asset cannot be expanded", not
// as a fatal condition.
var ErrNoStrategy = errors.New("no extraction strategy for archive")

// archiveMarkers are the extensions that mark an asset as an archive.
// Recognition uses substring containment against the full asset name, not
// suffix matching, which mirrors how assets were classified historically;
// names like "demo.zip.backup" therefore classify as archives. Dispatch to
// a concrete tool below does use real suffix matching.
var archiveMarkers = []string{".tar.gz", ".tgz", ".tar.xz", ".tar", ".zip", ".7z"}

// IsArchive reports whether an asset name looks like an archive.
func IsArchive(name string) bool {
	lower := strings.ToLower(name)
	for _, marker := range archiveMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Expander selects and runs an extraction tool for an archive.
type Expander struct {
	tools hosttools.Toolset
}

// NewExpander creates an expander resolving tools from the given Toolset.
func NewExpander(tools hosttools.Toolset) *Expander {
	return &Expander{tools: tools}
}

// Expand extracts archivePath into destDir. The strategy is chosen by
// extension priority: ouch handles every recognized format when installed,
// otherwise tar and unzip cover their own formats. Returns ErrNoStrategy
// when no tool/extension combination applies; any non-zero exit from the
// invoked tool is an extraction failure for this asset only.
func (e *Expander) Expand(ctx context.Context, archivePath, destDir string) error {
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return fmt.Errorf("create extraction dir: %w", err)
	}

	argv, err := e.command(archivePath, destDir)
	if err != nil {
		return err
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("extraction failed (%s): %w: %s", argv[0], err, strings.TrimSpace(string(out)))
	}

	return nil
}

// command picks the extraction argv for the archive, preferring the
// universal tool.
func (e *Expander) command(archivePath, destDir string) ([]string, error) {
	lower := strings.ToLower(archivePath)

	if path, ok := e.tools.Lookup("ouch"); ok && IsArchive(lower) {
		return []string{path, "decompress", archivePath, "-d", destDir}, nil
	}

	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		if path, ok := e.tools.Lookup("tar"); ok {
			return []string{path, "-xzf", archivePath, "-C", destDir}, nil
		}
	case strings.HasSuffix(lower, ".tar.xz"):
		if path, ok := e.tools.Lookup("tar"); ok {
			return []string{path, "-xJf", archivePath, "-C", destDir}, nil
		}
	case strings.HasSuffix(lower, ".tar"):
		if path, ok := e.tools.Lookup("tar"); ok {
			return []string{path, "-xf", archivePath, "-C", destDir}, nil
		}
	case strings.HasSuffix(lower, ".zip"):
		if path, ok := e.tools.Lookup("unzip"); ok {
			return []string{path, "-o", archivePath, "-d", destDir}, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrNoStrategy, archivePath)
}
