package tiktok

import "errors"

var (
	ErrNotFound        = errors.New("tiktok: not found")
	ErrRateLimited     = errors.New("tiktok: rate limited")
	ErrFetchFailed     = errors.New("tiktok: fetch failed")
	ErrMediaNotAllowed = errors.New("tiktok: media url not allowed")
	ErrBadRedirect     = errors.New("tiktok: short link did not resolve to a known page")
)
