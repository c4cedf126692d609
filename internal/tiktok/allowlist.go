package tiktok

import "strings"

// CDN domains the media proxy may fetch from. The check below is a plain
// substring match over the whole URL, not a parsed-host comparison, so a
// hostname that embeds one of these as a longer unrelated name (or a URL
// carrying one in a query parameter) also passes. Kept as-is; tightening it
// to real host parsing is a known hardening target.
var allowedMediaDomains = []string{
	"tiktokcdn.com",
	"tiktokcdn-us.com",
	"tiktokv.com",
	"muscdn.com",
	"byteoversea.com",
	"ibytedtos.com",
	"tiktokcdn-in.com",
}

// AllowedMediaURL reports whether the proxy may fetch and stream rawURL.
func AllowedMediaURL(rawURL string) bool {
	for _, domain := range allowedMediaDomains {
		if strings.Contains(rawURL, domain) {
			return true
		}
	}
	return false
}
