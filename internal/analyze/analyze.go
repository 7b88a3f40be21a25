// Package analyze runs external binary-inspection utilities against
// candidate executables and persists their raw standard output. It never
// parses or interprets the binaries itself; every insight comes from
// whatever tools the host happens to have installed.
package analyze

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/binspect/internal/hosttools"
	"github.com/ZebulonRouseFrantzich/binspect/internal/logging"
)

// ToolSpec describes one analysis invocation. The binary under inspection
// is appended as the final argument.
type ToolSpec struct {
	Name string   // executable name; also used for the output filename
	Args []string // fixed arguments placed before the binary path
}

// DefaultTools is the fixed, ordered list of analysis invocations. Tools
// missing from the host are skipped silently; order determines the order
// in which output files appear.
var DefaultTools = []ToolSpec{
	{Name: "strings"},
	{Name: "objdump", Args: []string{"-D"}},
	{Name: "nm"},
	{Name: "readelf", Args: []string{"-a"}},
	{Name: "hexdump", Args: []string{"-C"}},
}

// Runner executes the analysis tool list against binaries.
type Runner struct {
	tools  hosttools.Toolset
	specs  []ToolSpec
	logger *slog.Logger
}

// NewRunner creates a runner over DefaultTools resolving availability from
// the given Toolset.
func NewRunner(tools hosttools.Toolset) *Runner {
	return &Runner{
		tools:  tools,
		specs:  DefaultTools,
		logger: logging.New("analyze"),
	}
}

// NewRunnerWithSpecs creates a runner with a custom tool list. Used by
// tests and callers that want a reduced set.
func NewRunnerWithSpecs(tools hosttools.Toolset, specs []ToolSpec) *Runner {
	return &Runner{
		tools:  tools,
		specs:  specs,
		logger: logging.New("analyze"),
	}
}

// Run inspects binaryPath with every available tool, writing each tool's
// stdout verbatim to <outDir>/<tool>_output.txt. Existing output files are
// overwritten. A tool's non-zero exit is a warning for that tool only and
// never blocks the remaining tools. The returned count is the number of
// output files produced; zero available tools is zero files and a nil
// error.
func (r *Runner) Run(ctx context.Context, binaryPath, outDir string) (int, error) {
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, fmt.Errorf("create analysis dir: %w", err)
	}

	produced := 0
	for _, spec := range r.specs {
		toolPath, ok := r.tools.Lookup(spec.Name)
		if !ok {
			// Missing host tool is not an error.
			continue
		}

		args := append(append([]string(nil), spec.Args...), binaryPath)
		cmd := exec.CommandContext(ctx, toolPath, args...)

		stdout, err := cmd.Output()
		if err != nil {
			r.logger.Warn("analysis tool failed",
				"tool", spec.Name,
				"binary", filepath.Base(binaryPath),
				"error", err)
			continue
		}

		outPath := filepath.Join(outDir, spec.Name+"_output.txt")
		if err := os.WriteFile(outPath, stdout, 0644); err != nil {
			return produced, fmt.Errorf("write %s output: %w", spec.Name, err)
		}
		produced++
	}

	return produced, nil
}
