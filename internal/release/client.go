package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the GitHub REST API root.
	DefaultBaseURL = "https://api.github.com"
	// DefaultTimeout bounds a single metadata request.
	DefaultTimeout = 30 * time.Second
	// maxBodySize caps the metadata response we are willing to parse (8 MiB).
	maxBodySize = 8 << 20
)

// TokenFromEnv returns a GitHub API token from the environment, if any.
// BINSPECT_GITHUB_TOKEN takes precedence over GITHUB_TOKEN.
func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("BINSPECT_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// Client fetches release metadata from the GitHub API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	token      string
}

// NewClient creates a release metadata client. The token may be empty for
// anonymous access.
func NewClient(userAgent, token string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		baseURL:    DefaultBaseURL,
		userAgent:  userAgent,
		token:      token,
	}
}

// SetBaseURL overrides the API root. Used by tests to point at a local server.
func (c *Client) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// Latest returns the most recently published release for the repository
// given in "owner/name" form. Transport failures and non-2xx responses are
// returned as errors; callers treat them as "this target yielded nothing".
func (c *Client) Latest(ctx context.Context, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.baseURL, repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch release metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain a little of the body so the connection can be reused.
		io.CopyN(io.Discard, resp.Body, 512) //nolint:errcheck
		return nil, fmt.Errorf("unexpected status code for %s: %d", repo, resp.StatusCode)
	}

	var rel Release
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release metadata: %w", err)
	}

	return &rel, nil
}
