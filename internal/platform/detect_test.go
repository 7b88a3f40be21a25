package platform

import (
	"context"
	"runtime"
	"testing"
)

// MockDetector is a test implementation of Detector.
type MockDetector struct {
	info *Info
	err  error
}

// NewMockDetector creates a mock detector with specified return values.
func NewMockDetector(info *Info, err error) Detector {
	return &MockDetector{info: info, err: err}
}

// Detect returns the pre-configured info and error.
func (m *MockDetector) Detect(ctx context.Context) (*Info, error) {
	return m.info, m.err
}

func TestRealDetector_Detect(t *testing.T) {
	detector := NewDetector()
	ctx := context.Background()

	info, err := detector.Detect(ctx)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	if info.OS != runtime.GOOS {
		t.Errorf("OS = %v, want %v", info.OS, runtime.GOOS)
	}

	if info.Arch != "amd64" && info.Arch != "arm64" {
		t.Errorf("Arch = %v, want amd64 or arm64", info.Arch)
	}

	if info.ArchRaw != runtime.GOARCH {
		t.Errorf("ArchRaw = %v, want %v", info.ArchRaw, runtime.GOARCH)
	}

	// Distro detection may gracefully fall back to empty fields, but if a
	// distro was detected its family must be mapped.
	if runtime.GOOS == "linux" && info.Distro != "" && info.Family == "" {
		t.Error("Family should be set when Distro is set")
	}

	if len(info.Tags()) == 0 {
		t.Error("Tags() should never be empty")
	}
}

func TestRealDetector_CancelledContext(t *testing.T) {
	detector := NewDetector()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Cancellation is only observed on the Linux distro lookup path; on
	// other platforms detection completes without touching the context.
	info, err := detector.Detect(ctx)
	if runtime.GOOS != "linux" {
		if err != nil {
			t.Fatalf("Detect() error = %v", err)
		}
		if info == nil {
			t.Fatal("Detect() returned nil info")
		}
	}
}
