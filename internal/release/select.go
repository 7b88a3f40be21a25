package release

import "strings"

// Match returns the assets whose lower-cased name contains any of the given
// platform tags as a substring. Matching is intentionally loose ("linux"
// matches "demo-linux-x64.tar.gz") and all matches are returned; zero
// matches just means no downstream work for the target.
func Match(assets []Asset, tags []string) []Asset {
	var matched []Asset
	for _, asset := range assets {
		name := strings.ToLower(asset.Name)
		for _, tag := range tags {
			if tag == "" {
				continue
			}
			if strings.Contains(name, strings.ToLower(tag)) {
				matched = append(matched, asset)
				break
			}
		}
	}
	return matched
}

// SignatureFor returns the detached-signature companion asset for the named
// asset, if the release carries one (<name>.sig or <name>.asc).
func SignatureFor(rel *Release, assetName string) (Asset, bool) {
	for _, suffix := range []string{".sig", ".asc"} {
		want := strings.ToLower(assetName + suffix)
		for _, asset := range rel.Assets {
			if strings.ToLower(asset.Name) == want {
				return asset, true
			}
		}
	}
	return Asset{}, false
}

// ChecksumsFor returns the release's SHA256 checksum manifest asset, if any.
// Common spellings: checksums.txt, SHA256SUMS, <tool>_checksums.txt.
func ChecksumsFor(rel *Release) (Asset, bool) {
	for _, asset := range rel.Assets {
		name := strings.ToLower(asset.Name)
		if strings.Contains(name, "checksums") || strings.Contains(name, "sha256sums") {
			return asset, true
		}
	}
	return Asset{}, false
}
