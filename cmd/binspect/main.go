package main

import (
	"fmt"
	"os"
)

// Version will be set at build time via -ldflags
var Version = "v0.0.1-alpha"

func main() {
	// Handle subcommands
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version":
			fmt.Printf("binspect %s\n", Version)
			fmt.Println("Release-asset acquisition and binary analysis")
			return
		case "home":
			// Handle binspect home subcommand
			if err := runHome(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "status":
			// Handle binspect status subcommand
			if err := runStatus(os.Args[2:]); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			return
		case "run":
			// Handle binspect run subcommand
			code, err := runRun(os.Args[2:])
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			}
			os.Exit(code)
		}
	}

	// Default: show help
	fmt.Println("╔══════════════════════════════════════════════════════════╗")
	fmt.Println("║  binspect - fetch release binaries, run analysis tools   ║")
	fmt.Println("╚══════════════════════════════════════════════════════════╝")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  binspect --version           Show version information")
	fmt.Println("  binspect home                Show the home screen")
	fmt.Println("  binspect status              Show per-target workspace state")
	fmt.Println("  binspect run [target]        Fetch and analyze all targets, or one")
	fmt.Println()
	fmt.Println("Run options:")
	fmt.Println("  --config <file>              Lua target registry (default: built-ins)")
	fmt.Println("  --dir <path>                 Decomp root (default: ~/.local/share/binspect)")
	fmt.Println("  --verbose                    Enable debug logging")
}
