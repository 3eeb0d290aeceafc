// Package registry queries the GitHub release registry for Bugster CLI releases.
package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrTagNotFound is returned when a requested release tag is not published.
var ErrTagNotFound = errors.New("release tag not found")

// Client talks to the GitHub releases API for one repository.
type Client struct {
	owner   string
	repo    string
	token   string // optional, raises the API rate limit
	client  *http.Client
	baseURL string // base URL for the GitHub API (overridable for testing)
}

// Release represents a GitHub release response.
type Release struct {
	TagName    string `json:"tag_name"`
	Name       string `json:"name"`
	HTMLURL    string `json:"html_url"`
	Prerelease bool   `json:"prerelease"`
	Assets     []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// NewClient creates a registry client for owner/repo.
func NewClient(owner, repo string) *Client {
	return &Client{
		owner: owner,
		repo:  repo,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
		baseURL: "https://api.github.com",
	}
}

// WithToken sets an optional GitHub token for authentication.
func (c *Client) WithToken(token string) *Client {
	c.token = token
	return c
}

// WithBaseURL overrides the API base URL.
func (c *Client) WithBaseURL(url string) *Client {
	c.baseURL = url
	return c
}

// LatestTag returns the tag of the most recent published release.
func (c *Client) LatestTag() (string, error) {
	release, err := c.get(fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, c.owner, c.repo))
	if err != nil {
		return "", fmt.Errorf("failed to query latest release: %w", err)
	}
	if release.TagName == "" {
		return "", fmt.Errorf("latest release has no tag name")
	}
	return release.TagName, nil
}

// ReleaseByTag fetches the release for a specific tag. Returns ErrTagNotFound
// if the tag is not published, so callers can fail before any download.
func (c *Client) ReleaseByTag(tag string) (*Release, error) {
	release, err := c.get(fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s", c.baseURL, c.owner, c.repo, tag))
	if err != nil {
		return nil, err
	}
	return release, nil
}

// AssetURL returns the download URL for a named asset in the release.
func (r *Release) AssetURL(name string) (string, bool) {
	for _, asset := range r.Assets {
		if asset.Name == name {
			return asset.BrowserDownloadURL, true
		}
	}
	return "", false
}

// get performs an authenticated GET against the releases API.
func (c *Client) get(url string) (*Release, error) {
	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrTagNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %d", resp.StatusCode)
	}

	var release Release
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &release, nil
}
