package repository

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	jsoniter "github.com/json-iterator/go"

	"github.com/blankon/ghrs/internal/release/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	errNotNumber   = errors.New("not a number")
	errNumberRange = errors.New("number out of int64 range")
)

// rawObject keeps every field of a JSON object undecoded so each one can be
// mapped explicitly.
type rawObject map[string]jsoniter.RawMessage

// FieldError reports a field whose JSON type does not match the schema.
type FieldError struct {
	Field string
	Err   error
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("field %q: %v", e.Field, e.Err)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

// GitHubDecoder maps GitHub release JSON onto entity types. Unknown fields
// are ignored, missing and null fields take zero values.
type GitHubDecoder struct{}

func (GitHubDecoder) DecodeReleases(body []byte) ([]entity.Release, error) {
	var records []rawObject
	if err := json.Unmarshal(body, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, nil
	}

	releases := make([]entity.Release, 0, len(records))
	for i, record := range records {
		release, err := mapRelease(record)
		if err != nil {
			return nil, fmt.Errorf("release %d: %w", i, err)
		}
		releases = append(releases, release)
	}
	return releases, nil
}

func (GitHubDecoder) DecodeLatest(body []byte) (latest entity.LatestRelease, err error) {
	var record rawObject
	if err = json.Unmarshal(body, &record); err != nil {
		return
	}

	if latest.TagName, err = stringField(record, "tag_name"); err != nil {
		return
	}
	assets, err := objectsField(record, "assets")
	if err != nil {
		return
	}
	for _, asset := range assets {
		var a entity.DownloadableAsset
		if a.Name, err = stringField(asset, "name"); err != nil {
			return
		}
		if a.BrowserDownloadURL, err = stringField(asset, "browser_download_url"); err != nil {
			return
		}
		latest.Assets = append(latest.Assets, a)
	}
	return
}

func mapRelease(record rawObject) (release entity.Release, err error) {
	if release.Name, err = stringField(record, "name"); err != nil {
		return
	}
	if release.TagName, err = stringField(record, "tag_name"); err != nil {
		return
	}
	if release.CreatedAt, err = stringField(record, "created_at"); err != nil {
		return
	}

	assets, err := objectsField(record, "assets")
	if err != nil {
		return
	}
	release.Assets = make([]entity.Asset, 0, len(assets))
	for _, asset := range assets {
		a, err := mapAsset(asset)
		if err != nil {
			return release, err
		}
		release.Assets = append(release.Assets, a)
	}
	return
}

func mapAsset(record rawObject) (asset entity.Asset, err error) {
	if asset.Name, err = stringField(record, "name"); err != nil {
		return
	}
	if asset.Size, err = numberField(record, "size"); err != nil {
		return
	}
	asset.DownloadCount, err = numberField(record, "download_count")
	return
}

// lookup returns the raw value of key, or nil when it is absent or null.
func lookup(record rawObject, key string) jsoniter.RawMessage {
	raw, ok := record[key]
	if !ok {
		return nil
	}
	if bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil
	}
	return raw
}

func stringField(record rawObject, key string) (string, error) {
	raw := lookup(record, key)
	if raw == nil {
		return "", nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", &FieldError{Field: key, Err: err}
	}
	return s, nil
}

// numberField accepts integral and fractional JSON numbers. Integers are
// kept exact; fractions are rounded to the nearest integer. Values outside
// the int64 range are an error.
func numberField(record rawObject, key string) (int64, error) {
	raw := lookup(record, key)
	if raw == nil {
		return 0, nil
	}
	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte(`"`)) {
		return 0, &FieldError{Field: key, Err: errNotNumber}
	}
	var n jsoniter.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0, &FieldError{Field: key, Err: err}
	}
	if i, err := n.Int64(); err == nil {
		return i, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, &FieldError{Field: key, Err: errNumberRange}
	}
	f = math.Round(f)
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, &FieldError{Field: key, Err: errNumberRange}
	}
	return int64(f), nil
}

func objectsField(record rawObject, key string) ([]rawObject, error) {
	raw := lookup(record, key)
	if raw == nil {
		return nil, nil
	}
	var objects []rawObject
	if err := json.Unmarshal(raw, &objects); err != nil {
		return nil, &FieldError{Field: key, Err: err}
	}
	return objects, nil
}
