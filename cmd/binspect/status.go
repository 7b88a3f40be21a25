package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZebulonRouseFrantzich/binspect/internal/pipeline"
)

// runStatus handles the `binspect status` subcommand
func runStatus(args []string) error {
	configPath := ""
	dirOverride := ""

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--help", "-h":
			fmt.Println("Usage: binspect status [--config <file>] [--dir <path>]")
			fmt.Println()
			fmt.Println("Shows what each registered target's workspace currently holds.")
			return nil
		case "--config":
			if i+1 >= len(args) {
				return fmt.Errorf("--config requires a file path")
			}
			i++
			configPath = args[i]
		case "--dir":
			if i+1 >= len(args) {
				return fmt.Errorf("--dir requires a path")
			}
			i++
			dirOverride = args[i]
		}
	}

	root := dirOverride
	if root == "" {
		var err error
		root, err = getBinspectDir()
		if err != nil {
			return err
		}
	}

	reg, err := loadRegistry(context.Background(), root, configPath)
	if err != nil {
		return err
	}

	fmt.Printf("Decomp root: %s\n", root)
	fmt.Println("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━")

	for _, st := range pipeline.Status(root, reg) {
		if !st.Fetched {
			fmt.Printf("  %s: not fetched\n", st.Target)
			continue
		}
		fmt.Printf("  %s: %d asset(s), %d analysis file(s)\n",
			st.Target, len(st.Assets), st.AnalysisFiles)
		if len(st.Assets) > 0 {
			fmt.Printf("      %s\n", strings.Join(st.Assets, ", "))
		}
	}

	return nil
}
