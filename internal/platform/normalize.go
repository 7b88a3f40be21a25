package platform

import (
	"fmt"
	"strings"
)

// familyMap maps distribution names to their canonical family names.
// Used to normalize the family strings gopsutil reports.
var familyMap = map[string]string{
	"debian":  FamilyDebian,
	"ubuntu":  FamilyDebian,
	"rhel":    FamilyRHEL,
	"centos":  FamilyRHEL,
	"rocky":   FamilyRHEL,
	"fedora":  FamilyFedora,
	"arch":    FamilyArch,
	"manjaro": FamilyArch,
	"alpine":  FamilyAlpine,
}

// normalizeArch converts GOARCH values to normalized architecture names.
// Only amd64 and arm64 hosts are supported.
func normalizeArch(arch string) (string, error) {
	switch arch {
	case "amd64", "x86_64":
		return "amd64", nil
	case "arm64", "aarch64":
		return "arm64", nil
	default:
		return "", fmt.Errorf("unsupported architecture: %s (supported: amd64, arm64)", arch)
	}
}

// normalizeDistro converts distro IDs and versions to lowercase.
func normalizeDistro(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// mapFamily maps distribution family strings to canonical family names.
func mapFamily(family string) string {
	normalized := strings.ToLower(strings.TrimSpace(family))
	if canonical, ok := familyMap[normalized]; ok {
		return canonical
	}
	return FamilyUnknown
}
