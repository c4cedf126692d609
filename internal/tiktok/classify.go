package tiktok

import (
	"net/url"
	"strings"
)

// RouteKind discriminates the canonical resource routes the viewer serves.
type RouteKind int

const (
	RouteUser RouteKind = iota
	RouteVideo
	RouteTag
	RouteShortLink
)

// Route is the canonical internal form of "what resource did the user mean",
// independent of how it was typed. Key holds the handle (without '@'), the
// video id, the tag name, or the original short-link URL depending on Kind.
type Route struct {
	Kind RouteKind
	Key  string
}

// Classify turns free-form search input (a handle, a tag, a pasted TikTok
// URL, or a bare video id) into a canonical route. It only refuses empty
// input: anything unrecognized is treated as a bare handle so the caller
// always has a page to try.
func Classify(text string) (Route, bool) {
	q := strings.TrimSpace(text)
	if q == "" {
		return Route{}, false
	}

	switch {
	case strings.HasPrefix(q, "@"):
		return Route{Kind: RouteUser, Key: strings.TrimPrefix(q, "@")}, true
	case strings.HasPrefix(q, "#"):
		return Route{Kind: RouteTag, Key: strings.TrimPrefix(q, "#")}, true
	}

	if strings.Contains(q, "tiktok.com") {
		if r, ok := ClassifyURL(q); ok {
			return r, true
		}
		// URL in an unknown shape: fall through and try it as a handle.
		return Route{Kind: RouteUser, Key: q}, true
	}

	if isDigits(q) {
		return Route{Kind: RouteVideo, Key: q}, true
	}

	return Route{Kind: RouteUser, Key: q}, true
}

// ClassifyURL classifies a pasted TikTok URL. Recognized shapes:
//
//	https://www.tiktok.com/@username
//	https://www.tiktok.com/@username/video/1234567890
//	https://www.tiktok.com/video/1234567890
//	https://vm.tiktok.com/XXXXX and https://www.tiktok.com/t/XXXXX
//	https://www.tiktok.com/tag/name and /discover/name
//
// The user-path check runs first so a video URL under a user path is
// recognized as a video before the bare /video/ probe sees it.
func ClassifyURL(raw string) (Route, bool) {
	if i := strings.Index(raw, "/@"); i >= 0 {
		path, _, _ := strings.Cut(raw[i:], "?")
		if _, id, ok := strings.Cut(path, "/video/"); ok {
			id, _, _ = strings.Cut(id, "/")
			return Route{Kind: RouteVideo, Key: id}, true
		}
		return Route{Kind: RouteUser, Key: strings.TrimPrefix(path, "/@")}, true
	}

	if _, rest, ok := strings.Cut(raw, "/video/"); ok {
		id, _, _ := strings.Cut(rest, "?")
		id, _, _ = strings.Cut(id, "/")
		return Route{Kind: RouteVideo, Key: id}, true
	}

	if strings.Contains(raw, "vm.tiktok.com") || strings.Contains(raw, "/t/") {
		// The short link's target is unknown until fetched; the redirect
		// handler resolves it through the transport and re-classifies.
		link := raw
		if dec, err := url.QueryUnescape(raw); err == nil {
			link = dec
		}
		return Route{Kind: RouteShortLink, Key: link}, true
	}

	for _, marker := range []string{"/tag/", "/discover/"} {
		if _, rest, ok := strings.Cut(raw, marker); ok {
			tag, _, _ := strings.Cut(rest, "?")
			return Route{Kind: RouteTag, Key: tag}, true
		}
	}

	return Route{}, false
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
