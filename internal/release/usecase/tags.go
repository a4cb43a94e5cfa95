package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
	"sort"
	"strings"

	version "github.com/hashicorp/go-version"

	"github.com/blankon/ghrs/internal/release/entity"
)

type TagsInput struct {
	User string `validate:"required"`
	Repo string `validate:"required"`
}

// TagsUsecase prints the tags of a remote repository, newest version first.
type TagsUsecase struct {
	lister TagLister
	out    io.Writer
}

func NewTagsUsecase(lister TagLister, out io.Writer) *TagsUsecase {
	return &TagsUsecase{lister: lister, out: out}
}

func (u *TagsUsecase) Run(ctx context.Context, input TagsInput) ([]entity.Tag, error) {
	input.User = strings.TrimSpace(input.User)
	input.Repo = strings.TrimSpace(input.Repo)
	if err := validateRepoInput(input); err != nil {
		return nil, err
	}

	tags, err := u.lister.ListTags(ctx, input.User, input.Repo)
	if err != nil {
		log.Printf("[TagsUsecase.Run] list tags failed: %v", err)
		return nil, fmt.Errorf("list tags: %w", err)
	}

	tags = SortTags(tags)
	for _, tag := range tags {
		fmt.Fprintf(u.out, "%s %s\n", tag.Name, tag.ShortHash())
	}

	return tags, nil
}

// SortTags removes duplicate names and orders tags newest first. Tags that
// parse as versions come before the rest, which are sorted lexically
// descending.
func SortTags(tags []entity.Tag) []entity.Tag {
	seen := make(map[string]struct{}, len(tags))
	sorted := make([]entity.Tag, 0, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag.Name]; ok {
			continue
		}
		seen[tag.Name] = struct{}{}
		sorted = append(sorted, tag)
	}

	versions := make(map[string]*version.Version, len(sorted))
	for _, tag := range sorted {
		if v, err := version.NewVersion(tag.Name); err == nil {
			versions[tag.Name] = v
		}
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		a, aOk := versions[sorted[i].Name]
		b, bOk := versions[sorted[j].Name]
		switch {
		case aOk && bOk:
			if a.Equal(b) {
				return sorted[i].Name > sorted[j].Name
			}
			return a.GreaterThan(b)
		case aOk:
			return true
		case bOk:
			return false
		default:
			return sorted[i].Name > sorted[j].Name
		}
	})

	return sorted
}
