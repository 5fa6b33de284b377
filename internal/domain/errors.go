package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrRefreshInProgress = errors.New("refresh already in progress")
	ErrRateLimited       = errors.New("rate limited")
	ErrEmptySnapshot     = errors.New("no snapshot loaded")
)
