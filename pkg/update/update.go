// Package update checks GitHub releases for a newer ObsidianIRC build.
//
// The check is a single HTTP GET against the releases list endpoint (not
// /releases/latest, which returns 404 for prerelease-only repositories),
// followed by a release-tag comparison against the running version.
package update

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/zocram4cc/ObsidianIRC/pkg/version"
)

const (
	// DefaultRepo is the GitHub repository checked for releases.
	DefaultRepo = "zocram4cc/ObsidianIRC"

	defaultBaseURL = "https://api.github.com"
	apiVersion     = "2022-11-28"
)

// Info describes an available update. It is constructed once per check and
// has no lifecycle beyond the call that returns it.
type Info struct {
	// Version is the release version without the leading "v", e.g. "0.2.4".
	Version string `json:"version"`

	// Tag is the full tag name, e.g. "v0.2.4-build5".
	Tag string `json:"tag"`

	// Name is the release name.
	Name string `json:"name"`

	// ReleaseNotes is the release body (markdown).
	ReleaseNotes string `json:"releaseNotes"`

	// DownloadURL is the platform-specific asset URL, or the release page
	// when no matching asset exists.
	DownloadURL string `json:"downloadUrl"`

	// ReleaseURL is the release page URL.
	ReleaseURL string `json:"releaseUrl"`

	// PublishedAt is the publication date as reported by GitHub.
	PublishedAt string `json:"publishedAt"`
}

// githubAsset is one downloadable artifact of a GitHub release.
type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// githubRelease is the subset of the GitHub releases API response we read.
type githubRelease struct {
	TagName     string        `json:"tag_name"`
	Name        string        `json:"name"`
	Body        string        `json:"body"`
	HTMLURL     string        `json:"html_url"`
	PublishedAt string        `json:"published_at"`
	Assets      []githubAsset `json:"assets"`
	Prerelease  bool          `json:"prerelease"`
}

// Checker queries the GitHub releases API for a newer release.
type Checker struct {
	// Client is the HTTP client used for the check. Nil uses a client with
	// a 30 second timeout.
	Client *http.Client

	// BaseURL overrides the GitHub API base URL. For tests.
	BaseURL string

	// Repo is the "owner/name" repository to check (default: DefaultRepo).
	Repo string

	// CurrentTag is the running release tag, e.g. "v0.2.4-build5".
	CurrentTag string

	// Logger receives diagnostics. Nil uses slog.Default().
	Logger *slog.Logger
}

// NewChecker creates a Checker for the default repository.
func NewChecker(currentTag string) *Checker {
	return &Checker{
		Repo:       DefaultRepo,
		CurrentTag: currentTag,
	}
}

// Check queries the releases list and compares the newest release against
// CurrentTag. It returns nil Info when no newer release exists.
func (c *Checker) Check(ctx context.Context) (*Info, error) {
	logger := c.Logger
	if logger == nil {
		logger = slog.Default()
	}
	client := c.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	baseURL := c.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	repo := c.Repo
	if repo == "" {
		repo = DefaultRepo
	}

	current := version.ParseTag(c.CurrentTag)
	logger.Info("checking for updates", "current", c.CurrentTag)

	url := fmt.Sprintf("%s/repos/%s/releases", baseURL, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build release request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	req.Header.Set("User-Agent", "ObsidianIRC/"+current.Short())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch release info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub API returned status %s", resp.Status)
	}

	var releases []githubRelease
	if err := json.NewDecoder(resp.Body).Decode(&releases); err != nil {
		return nil, fmt.Errorf("failed to parse release info: %w", err)
	}
	if len(releases) == 0 {
		return nil, fmt.Errorf("no releases found for %s", repo)
	}

	// GitHub returns releases sorted by date, newest first.
	latest := releases[0]
	remote := version.ParseTag(latest.TagName)

	if !version.IsNewer(current, remote) {
		logger.Info("no update available", "latest", latest.TagName)
		return nil, nil
	}
	logger.Info("update available", "tag", latest.TagName)

	return &Info{
		Version:      remote.Short(),
		Tag:          latest.TagName,
		Name:         latest.Name,
		ReleaseNotes: latest.Body,
		DownloadURL:  downloadURL(latest, runtime.GOOS),
		ReleaseURL:   latest.HTMLURL,
		PublishedAt:  latest.PublishedAt,
	}, nil
}

// downloadURL picks the release asset matching the platform's installable
// artifact suffix, falling back to the release page.
func downloadURL(release githubRelease, goos string) string {
	suffix := assetSuffix(goos)
	for _, asset := range release.Assets {
		if strings.HasSuffix(asset.Name, suffix) {
			return asset.BrowserDownloadURL
		}
	}
	return release.HTMLURL
}

// assetSuffix returns the artifact filename suffix for a platform. An empty
// suffix matches the first asset.
func assetSuffix(goos string) string {
	switch goos {
	case "linux":
		return ".AppImage"
	case "windows":
		return "-setup.exe"
	case "android":
		return "-debug.apk"
	default:
		return ""
	}
}
