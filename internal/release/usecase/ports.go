package usecase

import (
	"context"
	"io"

	"github.com/blankon/ghrs/internal/release/entity"
)

type ReleaseAPI interface {
	ReleasesURL(user, repo string, perPage int) string
	FetchReleases(ctx context.Context, url string) ([]byte, error)
	FetchLatest(ctx context.Context, owner, repo string) (entity.LatestRelease, error)
	Download(ctx context.Context, url string) (io.ReadCloser, error)
}

type ReleaseDecoder interface {
	DecodeReleases(body []byte) ([]entity.Release, error)
}

type TagLister interface {
	ListTags(ctx context.Context, user, repo string) ([]entity.Tag, error)
}

type UpdateApplier interface {
	Apply(reader io.Reader) error
}

type Confirmer interface {
	Confirm(label string) (bool, error)
}
