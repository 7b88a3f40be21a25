package main

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnvBinspectDir overrides the default decomp root.
const EnvBinspectDir = "BINSPECT_DIR"

// getBinspectDir returns the decomp root directory path
func getBinspectDir() (string, error) {
	// Check environment variable
	if dir := os.Getenv(EnvBinspectDir); dir != "" {
		return dir, nil
	}

	// Default to ~/.local/share/binspect
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}

	return filepath.Join(homeDir, ".local", "share", "binspect"), nil
}
