package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/blankon/ghrs/internal/release/entity"
)

type ReleaseAPIMock struct {
	ReleasesURLFunc   func(user, repo string, perPage int) string
	FetchReleasesFunc func(ctx context.Context, url string) ([]byte, error)
	FetchLatestFunc   func(ctx context.Context, owner, repo string) (entity.LatestRelease, error)
	DownloadFunc      func(ctx context.Context, url string) (io.ReadCloser, error)

	fetchedURLs []string
}

func (m *ReleaseAPIMock) ReleasesURL(user, repo string, perPage int) string {
	if m.ReleasesURLFunc == nil {
		return fmt.Sprintf("https://api.github.com/repos/%s/%s/releases?per_page=%d", user, repo, perPage)
	}
	return m.ReleasesURLFunc(user, repo, perPage)
}

func (m *ReleaseAPIMock) FetchReleases(ctx context.Context, url string) ([]byte, error) {
	m.fetchedURLs = append(m.fetchedURLs, url)
	if m.FetchReleasesFunc == nil {
		panic("ReleaseAPIMock.FetchReleasesFunc: method is nil but ReleaseAPI.FetchReleases was just called")
	}
	return m.FetchReleasesFunc(ctx, url)
}

func (m *ReleaseAPIMock) FetchLatest(ctx context.Context, owner, repo string) (entity.LatestRelease, error) {
	if m.FetchLatestFunc == nil {
		panic("ReleaseAPIMock.FetchLatestFunc: method is nil but ReleaseAPI.FetchLatest was just called")
	}
	return m.FetchLatestFunc(ctx, owner, repo)
}

func (m *ReleaseAPIMock) Download(ctx context.Context, url string) (io.ReadCloser, error) {
	if m.DownloadFunc == nil {
		panic("ReleaseAPIMock.DownloadFunc: method is nil but ReleaseAPI.Download was just called")
	}
	return m.DownloadFunc(ctx, url)
}

type ReleaseDecoderMock struct {
	DecodeReleasesFunc func(body []byte) ([]entity.Release, error)
}

func (m *ReleaseDecoderMock) DecodeReleases(body []byte) ([]entity.Release, error) {
	return m.DecodeReleasesFunc(body)
}

type TagListerMock struct {
	ListTagsFunc func(ctx context.Context, user, repo string) ([]entity.Tag, error)
}

func (m *TagListerMock) ListTags(ctx context.Context, user, repo string) ([]entity.Tag, error) {
	return m.ListTagsFunc(ctx, user, repo)
}

type UpdateApplierMock struct {
	applied []byte
	err     error
}

func (m *UpdateApplierMock) Apply(reader io.Reader) error {
	b, err := io.ReadAll(reader)
	if err != nil {
		return err
	}
	m.applied = b
	return m.err
}

type ConfirmerMock struct {
	answer bool
	err    error
	asked  int
}

func (m *ConfirmerMock) Confirm(label string) (bool, error) {
	m.asked++
	return m.answer, m.err
}
