package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZebulonRouseFrantzich/binspect/internal/testutil"
)

func TestRunStatus_EmptyWorkspace(t *testing.T) {
	root := testutil.SetupTestEnv(t)

	if err := runStatus([]string{"--dir", root}); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}
}

func TestRunStatus_WithConfig(t *testing.T) {
	root := testutil.SetupTestEnv(t)

	config := filepath.Join(root, "binspect.lua")
	lua := `binspect = {
  targets = {
    { name = "demo", repo = "example/demo", platforms = { "linux" } },
  },
}
`
	if err := os.WriteFile(config, []byte(lua), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := runStatus([]string{"--dir", root, "--config", config}); err != nil {
		t.Fatalf("runStatus() error = %v", err)
	}
}

func TestRunStatus_BadConfig(t *testing.T) {
	root := testutil.SetupTestEnv(t)

	config := filepath.Join(root, "broken.lua")
	if err := os.WriteFile(config, []byte("binspect = {"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if err := runStatus([]string{"--dir", root, "--config", config}); err == nil {
		t.Error("runStatus() with broken config should fail")
	}
}
