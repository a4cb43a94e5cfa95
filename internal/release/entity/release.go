package entity

import "time"

type Asset struct {
	Name          string `json:"name"`
	Size          int64  `json:"size"`
	DownloadCount int64  `json:"download_count"`
}

type Release struct {
	Name      string  `json:"name"`
	TagName   string  `json:"tag_name"`
	CreatedAt string  `json:"created_at"`
	Assets    []Asset `json:"assets"`
}

// CreatedTime parses CreatedAt as RFC 3339. The boolean is false when the
// value is empty or not a timestamp.
func (r Release) CreatedTime() (time.Time, bool) {
	if r.CreatedAt == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, r.CreatedAt)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Stats is the outcome of one release fetch.
type Stats struct {
	URL       string
	Releases  []Release
	FetchTime time.Duration
	ParseTime time.Duration
}

// LatestRelease is the subset of GET /repos/{owner}/{repo}/releases/latest
// used for self-updates.
type LatestRelease struct {
	TagName string
	Assets  []DownloadableAsset
}

type DownloadableAsset struct {
	Name               string
	BrowserDownloadURL string
}

// Tag is a git tag as advertised by the remote.
type Tag struct {
	Name string
	Hash string
}

// ShortHash returns the first seven characters of the commit hash.
func (t Tag) ShortHash() string {
	if len(t.Hash) > 7 {
		return t.Hash[:7]
	}
	return t.Hash
}
