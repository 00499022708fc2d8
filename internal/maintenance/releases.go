package maintenance

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	// LatestReleaseURL is the GitHub API endpoint for yt-dlp's newest release
	LatestReleaseURL = "https://api.github.com/repos/yt-dlp/yt-dlp/releases/latest"

	releaseRequestTimeout = 10 * time.Second
	releaseUserAgent      = "ytwav-maint"
)

// GitHubReleases reads the latest yt-dlp release tag
type GitHubReleases struct {
	httpClient *http.Client
	url        string
}

// NewGitHubReleases returns a client for url; empty means LatestReleaseURL
func NewGitHubReleases(url string) *GitHubReleases {
	if url == "" {
		url = LatestReleaseURL
	}
	return &GitHubReleases{
		httpClient: &http.Client{Timeout: releaseRequestTimeout},
		url:        url,
	}
}

type releaseResponse struct {
	TagName string `json:"tag_name"`
}

// Latest returns the tag of the newest release
func (g *GitHubReleases) Latest(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", releaseUserAgent)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var rel releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}
	if rel.TagName == "" {
		return "", fmt.Errorf("release has no tag")
	}
	return strings.TrimPrefix(rel.TagName, "v"), nil
}
