// Package release resolves the latest published GitHub release for a
// repository and selects the assets that match a target's platform tags.
package release

// Asset is a single downloadable file attached to a published release.
type Asset struct {
	Name               string `json:"name"`
	ContentType        string `json:"content_type"`
	Size               int64  `json:"size"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// Release is the metadata of one published release.
type Release struct {
	TagName string  `json:"tag_name"`
	Name    string  `json:"name"`
	Assets  []Asset `json:"assets"`
}
