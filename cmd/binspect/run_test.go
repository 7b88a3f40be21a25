package main

import (
	"strings"
	"testing"

	"github.com/ZebulonRouseFrantzich/binspect/internal/testutil"
)

func TestRunRun_FlagErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{
			name:    "config without value",
			args:    []string{"--config"},
			wantErr: "--config requires",
		},
		{
			name:    "dir without value",
			args:    []string{"--dir"},
			wantErr: "--dir requires",
		},
		{
			name:    "two positional targets",
			args:    []string{"mise", "chezmoi"},
			wantErr: "unexpected argument",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, err := runRun(tt.args)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("runRun(%v) error = %v, want %q", tt.args, err, tt.wantErr)
			}
			if code != 1 {
				t.Errorf("runRun(%v) code = %d, want 1", tt.args, code)
			}
		})
	}
}

func TestRunRun_Help(t *testing.T) {
	code, err := runRun([]string{"--help"})
	if err != nil {
		t.Fatalf("runRun(--help) error = %v", err)
	}
	if code != 0 {
		t.Errorf("runRun(--help) code = %d, want 0", code)
	}
}

func TestRunRun_UnknownTarget(t *testing.T) {
	root := testutil.SetupTestEnv(t)

	_, err := runRun([]string{"--dir", root, "no-such-target"})
	if err == nil || !strings.Contains(err.Error(), "unknown target") {
		t.Errorf("runRun() error = %v, want unknown target", err)
	}
}
