package usecase

import (
	"context"
	"fmt"
	"io"
	"log"
)

type UpgradeInput struct {
	Owner          string `validate:"required"`
	Repo           string `validate:"required"`
	Asset          string `validate:"required"`
	CurrentVersion string
	AssumeYes      bool
}

// UpgradeUsecase replaces the running binary with the matching asset of the
// latest release.
type UpgradeUsecase struct {
	api       ReleaseAPI
	applier   UpdateApplier
	confirmer Confirmer
	out       io.Writer
}

func NewUpgradeUsecase(api ReleaseAPI, applier UpdateApplier, confirmer Confirmer, out io.Writer) *UpgradeUsecase {
	return &UpgradeUsecase{
		api:       api,
		applier:   applier,
		confirmer: confirmer,
		out:       out,
	}
}

// Run returns true when the binary was replaced.
func (u *UpgradeUsecase) Run(ctx context.Context, input UpgradeInput) (bool, error) {
	if err := validate.Struct(input); err != nil {
		return false, err
	}

	latest, err := u.api.FetchLatest(ctx, input.Owner, input.Repo)
	if err != nil {
		log.Printf("[UpgradeUsecase.Run] fetch latest failed: %v", err)
		return false, fmt.Errorf("fetch latest release: %w", err)
	}

	if input.CurrentVersion != "" && latest.TagName == input.CurrentVersion {
		fmt.Fprintf(u.out, "Already up to date (%s)\n", latest.TagName)
		return false, nil
	}

	var downloadURL string
	for _, asset := range latest.Assets {
		if asset.Name == input.Asset {
			downloadURL = asset.BrowserDownloadURL
			break
		}
	}
	if downloadURL == "" {
		return false, fmt.Errorf("%w: %s in %s", ErrAssetNotFound, input.Asset, latest.TagName)
	}
	log.Println("[UpgradeUsecase.Run] " + downloadURL)

	if !input.AssumeYes {
		ok, err := u.confirmer.Confirm(fmt.Sprintf("Replace this binary with %s %s", input.Asset, latest.TagName))
		if err != nil {
			return false, err
		}
		if !ok {
			fmt.Fprintln(u.out, "Upgrade cancelled")
			return false, nil
		}
	}

	fmt.Fprintln(u.out, "Self-updating...")
	body, err := u.api.Download(ctx, downloadURL)
	if err != nil {
		return false, fmt.Errorf("download %s: %w", input.Asset, err)
	}
	defer body.Close()

	if err := u.applier.Apply(body); err != nil {
		return false, fmt.Errorf("apply update: %w", err)
	}

	fmt.Fprintf(u.out, "Updated to %s\n", latest.TagName)
	return true, nil
}
