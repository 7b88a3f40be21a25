// Package platform provides host platform detection for binspect.
//
// Detection results serve two purposes: deriving default asset-matching
// tags for targets that declare none, and populating the read-only
// `platform` table injected into Lua target configurations. The package
// uses gopsutil for Linux distribution detection and falls back gracefully
// to OS/arch-only information when distro detection fails.
package platform

import "context"

// Linux distribution family constants.
const (
	FamilyDebian  = "debian"  // Debian, Ubuntu, Linux Mint
	FamilyRHEL    = "rhel"    // RHEL, CentOS, Rocky Linux, AlmaLinux
	FamilyFedora  = "fedora"  // Fedora
	FamilyArch    = "arch"    // Arch Linux, Manjaro
	FamilyAlpine  = "alpine"  // Alpine Linux (musl libc)
	FamilyUnknown = "unknown" // Unrecognized distributions
)

// Info contains platform detection information.
type Info struct {
	OS      string // "linux", "darwin", "windows"
	Arch    string // "amd64", "arm64" (normalized)
	ArchRaw string // original GOARCH value
	Distro  string // distro ID (Linux only, e.g. "ubuntu")
	Family  string // canonical family (Linux only, e.g. "debian")
	Version string // distro version (Linux only, e.g. "22.04")
}

// IsLinux returns true if the platform is Linux.
func (i *Info) IsLinux() bool {
	return i.OS == "linux"
}

// IsMacOS returns true if the platform is macOS.
func (i *Info) IsMacOS() bool {
	return i.OS == "darwin"
}

// IsWindows returns true if the platform is Windows.
func (i *Info) IsWindows() bool {
	return i.OS == "windows"
}

// IsMusl returns true if the platform links against musl libc (Alpine).
func (i *Info) IsMusl() bool {
	return i.OS == "linux" && i.Family == FamilyAlpine
}

// Tags returns the default asset-matching tags for this platform.
// Release assets are matched by case-insensitive substring containment, so
// the tags are the OS name plus its common spellings in asset filenames.
// Architecture is deliberately excluded: an arch tag would match assets
// built for other operating systems.
func (i *Info) Tags() []string {
	switch i.OS {
	case "darwin":
		return []string{"darwin", "macos"}
	case "windows":
		return []string{"windows", "win32", "win64"}
	default:
		return []string{i.OS}
	}
}

// ArchAliases returns the common spellings of the host architecture in
// release asset filenames. Exposed to Lua configs that want tighter matching.
func (i *Info) ArchAliases() []string {
	switch i.Arch {
	case "amd64":
		return []string{"amd64", "x86_64", "x64"}
	case "arm64":
		return []string{"arm64", "aarch64"}
	default:
		return []string{i.Arch}
	}
}

// Detector is the interface for platform detection.
type Detector interface {
	Detect(ctx context.Context) (*Info, error)
}
