package repository

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gopkg.in/src-d/go-git.v4"
	"gopkg.in/src-d/go-git.v4/config"
	"gopkg.in/src-d/go-git.v4/plumbing"
	"gopkg.in/src-d/go-git.v4/storage/memory"

	"github.com/blankon/ghrs/internal/release/entity"
)

const peeledSuffix = "^{}"

// GitRemote lists refs of remote repositories without cloning them.
type GitRemote struct {
	baseURL string
}

func NewGitRemote(baseURL string) *GitRemote {
	return &GitRemote{baseURL: strings.TrimRight(baseURL, "/")}
}

// RemoteURL returns the HTTPS clone URL of user/repo.
func (remote *GitRemote) RemoteURL(user, repo string) string {
	return fmt.Sprintf("%s/%s/%s.git", remote.baseURL, user, repo)
}

// ListTags is the equivalent of git ls-remote --tags. go-git v4 cannot
// cancel a listing, so ctx is only checked before the call.
func (remote *GitRemote) ListTags(ctx context.Context, user, repo string) ([]entity.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	remoteURL := remote.RemoteURL(user, repo)
	log.Println("[GitRemote.ListTags] listing tags of " + remoteURL)

	r := git.NewRemote(memory.NewStorage(), &config.RemoteConfig{
		Name: "origin",
		URLs: []string{remoteURL},
	})
	refs, err := r.List(&git.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("git ls-remote %s: %w", remoteURL, err)
	}

	return tagsFromReferences(refs), nil
}

// tagsFromReferences keeps tag refs only. For annotated tags the peeled
// "^{}" entry carries the commit hash and wins over the tag object hash.
func tagsFromReferences(refs []*plumbing.Reference) []entity.Tag {
	index := make(map[string]int)
	tags := []entity.Tag{}
	for _, ref := range refs {
		name := ref.Name().String()
		if !strings.HasPrefix(name, "refs/tags/") {
			continue
		}

		tagName := strings.TrimPrefix(name, "refs/tags/")
		peeled := strings.HasSuffix(tagName, peeledSuffix)
		tagName = strings.TrimSuffix(tagName, peeledSuffix)
		if tagName == "" {
			continue
		}

		tag := entity.Tag{Name: tagName, Hash: ref.Hash().String()}
		if i, ok := index[tagName]; ok {
			if peeled {
				tags[i] = tag
			}
			continue
		}
		index[tagName] = len(tags)
		tags = append(tags, tag)
	}
	return tags
}
