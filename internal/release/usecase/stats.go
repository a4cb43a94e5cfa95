package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/blankon/ghrs/internal/release/entity"
)

const (
	latestPageSize  = 1
	defaultPageSize = 5
)

type StatsInput struct {
	User    string `validate:"required"`
	Repo    string `validate:"required"`
	Latest  bool
	Details bool
}

// PageSize returns the per_page value for a release listing.
func PageSize(latest bool) int {
	if latest {
		return latestPageSize
	}
	return defaultPageSize
}

// StatsUsecase fetches one page of releases and prints asset counts and
// timings.
type StatsUsecase struct {
	api     ReleaseAPI
	decoder ReleaseDecoder
	out     io.Writer
	now     func() time.Time
}

func NewStatsUsecase(api ReleaseAPI, decoder ReleaseDecoder, out io.Writer) *StatsUsecase {
	return &StatsUsecase{
		api:     api,
		decoder: decoder,
		out:     out,
		now:     time.Now,
	}
}

func (u *StatsUsecase) Run(ctx context.Context, input StatsInput) (stats entity.Stats, err error) {
	input.User = strings.TrimSpace(input.User)
	input.Repo = strings.TrimSpace(input.Repo)
	if err = validateRepoInput(input); err != nil {
		return
	}

	stats.URL = u.api.ReleasesURL(input.User, input.Repo, PageSize(input.Latest))
	fmt.Fprintf(u.out, "Fetching from %s\n", stats.URL)

	start := u.now()
	body, err := u.api.FetchReleases(ctx, stats.URL)
	if err != nil {
		log.Printf("[StatsUsecase.Run] fetch failed: %v", err)
		return stats, fmt.Errorf("fetch releases: %w", err)
	}
	stats.FetchTime = u.now().Sub(start)
	log.Printf("[StatsUsecase.Run] fetched %d bytes in %s", len(body), stats.FetchTime)

	start = u.now()
	stats.Releases, err = u.decoder.DecodeReleases(body)
	if err != nil {
		log.Printf("[StatsUsecase.Run] decode failed: %v", err)
		return stats, fmt.Errorf("decode releases: %w", err)
	}
	stats.ParseTime = u.now().Sub(start)

	for _, release := range stats.Releases {
		fmt.Fprintf(u.out, "%s has %d assets\n", release.Name, len(release.Assets))
		if input.Details {
			u.printDetails(release)
		}
	}

	fmt.Fprintf(u.out, "fetching took %d ms\n", stats.FetchTime.Milliseconds())
	fmt.Fprintf(u.out, "parsing  took %d ms\n", stats.ParseTime.Milliseconds())

	return stats, nil
}

func (u *StatsUsecase) printDetails(release entity.Release) {
	created := release.CreatedAt
	if t, ok := release.CreatedTime(); ok {
		created = t.UTC().Format("2006-01-02 15:04 MST")
	}
	fmt.Fprintf(u.out, "  tag %s created %s\n", release.TagName, created)

	for _, asset := range release.Assets {
		size := "? B"
		if asset.Size >= 0 {
			size = humanize.Bytes(uint64(asset.Size))
		}
		fmt.Fprintf(u.out, "  %s (%s, %s downloads)\n", asset.Name, size, humanize.Comma(asset.DownloadCount))
	}
}
