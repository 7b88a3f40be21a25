package main

import (
	"fmt"

	"github.com/ZebulonRouseFrantzich/binspect/internal/art"
)

// runHome handles the `binspect home` subcommand
func runHome(args []string) error {
	size := "saitama"
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--size":
			if i+1 < len(args) {
				i++
				size = args[i]
			}
		case "--help", "-h":
			fmt.Println("Usage: binspect home [--size <name>]")
			fmt.Println()
			fmt.Println("Shows the home screen banner.")
			return nil
		}
	}

	fmt.Println(art.OKFace(size))
	fmt.Printf("binspect %s — OK.\n", Version)
	return nil
}
