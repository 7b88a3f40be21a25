package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ZebulonRouseFrantzich/binspect/internal/hosttools"
	"github.com/ZebulonRouseFrantzich/binspect/internal/logging"
	"github.com/ZebulonRouseFrantzich/binspect/internal/pipeline"
	"github.com/ZebulonRouseFrantzich/binspect/internal/platform"
	"github.com/ZebulonRouseFrantzich/binspect/internal/registry"
	"github.com/ZebulonRouseFrantzich/binspect/internal/release"
	"github.com/ZebulonRouseFrantzich/binspect/internal/runlock"
)

// runRun handles the `binspect run` subcommand.
// Returns an exit code (0 = at least one target processed, 1 = every target
// failed outright) and an error for setup failures. A target that yields
// zero assets or zero analysis files still counts as processed.
func runRun(args []string) (int, error) {
	// Parse flags
	showHelp := false
	verbose := false
	configPath := ""
	dirOverride := ""
	targetName := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			showHelp = true
		case "--verbose", "-v":
			verbose = true
		case "--config":
			if i+1 >= len(args) {
				return 1, fmt.Errorf("--config requires a file path")
			}
			i++
			configPath = args[i]
		case "--dir":
			if i+1 >= len(args) {
				return 1, fmt.Errorf("--dir requires a path")
			}
			i++
			dirOverride = args[i]
		default:
			if targetName != "" {
				return 1, fmt.Errorf("unexpected argument: %s", args[i])
			}
			targetName = args[i]
		}
	}

	if showHelp {
		printRunHelp()
		return 0, nil
	}

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logging.Init(level, "text")

	ctx := context.Background()

	root := dirOverride
	if root == "" {
		var err error
		root, err = getBinspectDir()
		if err != nil {
			return 1, err
		}
	}

	reg, err := loadRegistry(ctx, root, configPath)
	if err != nil {
		return 1, err
	}

	if targetName != "" {
		target, ok := reg.Lookup(targetName)
		if !ok {
			return 1, fmt.Errorf("unknown target %q (known: %v)", targetName, reg.Names())
		}
		reg, err = registry.New([]registry.Target{target}, nil)
		if err != nil {
			return 1, err
		}
	}

	// One run at a time per root; concurrent runs would race on the
	// target directories.
	lock, err := runlock.Acquire(root)
	if err != nil {
		return 1, err
	}
	defer lock.Release()

	client := release.NewClient("binspect/"+Version, release.TokenFromEnv())
	p := pipeline.New(root, client, hosttools.NewPathToolset())

	fmt.Printf("Processing %d target(s) into %s\n", reg.Len(), root)
	fmt.Println()

	outcomes := p.ProcessAll(ctx, reg)

	succeeded := 0
	for _, out := range outcomes {
		if out.Err != nil {
			fmt.Printf("  ✗ %s: %v\n", out.Target, out.Err)
			continue
		}
		succeeded++
		fmt.Printf("  ✓ %s %s: %d asset(s), %d executable(s), %d analysis file(s)\n",
			out.Target, out.ReleaseTag, len(out.Assets), out.Executables, out.OutputFiles)
	}

	fmt.Println()
	fmt.Printf("%d/%d target(s) completed\n", succeeded, len(outcomes))

	if succeeded == 0 {
		return 1, nil
	}
	return 0, nil
}

// loadRegistry builds the target registry from the explicit --config file,
// the conventional <root>/binspect.lua, or the built-in defaults, in that
// order.
func loadRegistry(ctx context.Context, root, configPath string) (*registry.Registry, error) {
	detector := platform.NewDetector()

	if configPath == "" {
		conventional := filepath.Join(root, "binspect.lua")
		if _, err := os.Stat(conventional); err == nil {
			configPath = conventional
		}
	}

	if configPath != "" {
		reg, err := registry.NewParser(detector).LoadFile(ctx, configPath)
		if err != nil {
			return nil, fmt.Errorf("load config %s: %s", configPath, registry.FormatError(err, false))
		}
		return reg, nil
	}

	info, err := detector.Detect(ctx)
	if err != nil {
		return nil, fmt.Errorf("detect host platform: %w", err)
	}
	return registry.Default(info.Tags())
}

func printRunHelp() {
	fmt.Println("Usage: binspect run [options] [target]")
	fmt.Println()
	fmt.Println("Fetches the latest release of every registered target (or just the")
	fmt.Println("named one), extracts matching assets, and runs the host analysis")
	fmt.Println("tools against every executable found.")
	fmt.Println()
	fmt.Println("Options:")
	fmt.Println("  --config <file>   Lua target registry (default: <root>/binspect.lua,")
	fmt.Println("                    falling back to built-in targets)")
	fmt.Println("  --dir <path>      Decomp root (default: ~/.local/share/binspect,")
	fmt.Println("                    or $BINSPECT_DIR)")
	fmt.Println("  --verbose, -v     Enable debug logging")
	fmt.Println("  --help, -h        Show this help")
}
