package platform

import (
	"context"
	"fmt"
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealDetector implements Detector using actual host inspection.
type RealDetector struct{}

// NewDetector creates a new platform detector.
func NewDetector() Detector {
	return &RealDetector{}
}

// Detect performs platform detection and returns platform information.
// OS and architecture come from the runtime; Linux distribution details
// come from gopsutil. If distro detection fails the OS/arch information
// is still returned so asset matching can proceed.
func (d *RealDetector) Detect(ctx context.Context) (*Info, error) {
	info := &Info{
		OS:      runtime.GOOS,
		ArchRaw: runtime.GOARCH,
	}

	arch, err := normalizeArch(runtime.GOARCH)
	if err != nil {
		return nil, fmt.Errorf("platform detection failed: %w", err)
	}
	info.Arch = arch

	if runtime.GOOS == "linux" {
		distro, family, version, err := host.PlatformInformationWithContext(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("platform detection cancelled: %w", ctx.Err())
			}
			// Distro detection failure is not fatal; OS/arch is enough
			// for default asset matching.
			return info, nil
		}

		distro = normalizeDistro(distro)
		if distro != "" {
			info.Distro = distro
			info.Family = mapFamily(family)
			info.Version = normalizeDistro(version)
		}
	}

	return info, nil
}
