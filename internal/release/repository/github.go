package repository

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/blankon/ghrs/internal/release/entity"
	"github.com/blankon/ghrs/pkg/httputil"
)

// GitHubAPI talks to the GitHub REST API without authentication.
type GitHubAPI struct {
	client    *http.Client
	baseURL   string
	userAgent string
	decoder   GitHubDecoder
}

// NewGitHubAPI returns a client for baseURL. A zero timeout keeps the
// transport default.
func NewGitHubAPI(baseURL, userAgent string, timeout time.Duration) *GitHubAPI {
	return &GitHubAPI{
		client:    &http.Client{Timeout: timeout},
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
	}
}

func (api *GitHubAPI) header() http.Header {
	header := http.Header{}
	header.Set("User-Agent", api.userAgent)
	header.Set("Accept", "application/vnd.github+json")
	return header
}

func (api *GitHubAPI) ReleasesURL(user, repo string, perPage int) string {
	return fmt.Sprintf("%s/repos/%s/%s/releases?per_page=%d",
		api.baseURL, url.PathEscape(user), url.PathEscape(repo), perPage)
}

// FetchReleases returns the raw body of a release listing.
func (api *GitHubAPI) FetchReleases(ctx context.Context, url string) ([]byte, error) {
	log.Printf("[GitHubAPI.FetchReleases] GET %s", url)
	return httputil.Get(ctx, api.client, url, api.header())
}

func (api *GitHubAPI) FetchLatest(ctx context.Context, owner, repo string) (entity.LatestRelease, error) {
	latestURL := fmt.Sprintf("%s/repos/%s/%s/releases/latest",
		api.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	log.Printf("[GitHubAPI.FetchLatest] GET %s", latestURL)

	body, err := httputil.Get(ctx, api.client, latestURL, api.header())
	if err != nil {
		return entity.LatestRelease{}, err
	}

	latest, err := api.decoder.DecodeLatest(body)
	if err != nil {
		return latest, fmt.Errorf("decode latest release: %w", err)
	}
	return latest, nil
}

// Download opens a release asset. The caller closes the body.
func (api *GitHubAPI) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	log.Printf("[GitHubAPI.Download] GET %s", url)

	header := http.Header{}
	header.Set("User-Agent", api.userAgent)
	header.Set("Accept", "application/octet-stream")

	response, err := httputil.Open(ctx, api.client, url, header)
	if err != nil {
		return nil, err
	}
	return response.Body, nil
}
