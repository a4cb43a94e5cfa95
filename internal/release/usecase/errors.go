package usecase

import "errors"

var (
	ErrUserRequired  = errors.New("user should not be empty")
	ErrRepoRequired  = errors.New("repo should not be empty")
	ErrAssetNotFound = errors.New("release asset not found")
)
