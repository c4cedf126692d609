package tiktok

import "testing"

func TestAllowedMediaURL_AllowedDomains(t *testing.T) {
	t.Parallel()
	for _, domain := range allowedMediaDomains {
		u := "https://v16-webapp." + domain + "/video/play.mp4?tk=abc"
		if !AllowedMediaURL(u) {
			t.Errorf("AllowedMediaURL(%q) = false, want true", u)
		}
	}
}

func TestAllowedMediaURL_Denied(t *testing.T) {
	t.Parallel()
	tests := []string{
		"",
		"https://example.com/video.mp4",
		"https://evil.example.com/tiktok/video.mp4",
		"https://www.tiktok.com/@user", // platform page, not a CDN host
		"not even a url",
	}
	for _, u := range tests {
		if AllowedMediaURL(u) {
			t.Errorf("AllowedMediaURL(%q) = true, want false", u)
		}
	}
}

// The guard is a substring match over the whole URL, not a parsed-host
// check. These cases document the accepted limitation: an allow-listed
// domain appearing inside a longer hostname or a query parameter still
// passes. Hardening this means parsing the URL and comparing the host
// against the list with suffix semantics.
func TestAllowedMediaURL_SubstringLimitation(t *testing.T) {
	t.Parallel()
	bypasses := []string{
		"https://nottiktokcdn.com/steal.mp4",
		"https://evil.example.com/?next=https://v16.tiktokcdn.com/x.mp4",
	}
	for _, u := range bypasses {
		if !AllowedMediaURL(u) {
			t.Errorf("AllowedMediaURL(%q) = false; substring behavior changed, update docs", u)
		}
	}
}
