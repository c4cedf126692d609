package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"strconv"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

var templateFuncs = template.FuncMap{
	"proxyURL":    proxyURL,
	"formatCount": formatCount,
	"formatDate":  formatDate,
}

func parseTemplates() (*template.Template, error) {
	return template.New("").Funcs(templateFuncs).ParseFS(templateFS, "templates/*.html")
}

// proxyURL rewrites an upstream media URL to the same-origin proxy route so
// the browser never contacts the CDN directly. Empty in, empty out, so
// templates can guard on the result.
func proxyURL(raw string) string {
	if raw == "" {
		return ""
	}
	return "/proxy?url=" + url.QueryEscape(raw)
}

// formatCount renders counters the way the upstream UI does: 1.2K, 4.5M, 1.1B.
func formatCount(n uint64) string {
	switch {
	case n >= 1_000_000_000:
		return trimUnit(float64(n)/1e9, "B")
	case n >= 1_000_000:
		return trimUnit(float64(n)/1e6, "M")
	case n >= 1_000:
		return trimUnit(float64(n)/1e3, "K")
	}
	return strconv.FormatUint(n, 10)
}

func trimUnit(v float64, unit string) string {
	s := fmt.Sprintf("%.1f", v)
	if len(s) > 2 && s[len(s)-2:] == ".0" {
		s = s[:len(s)-2]
	}
	return s + unit
}

// formatDate renders a platform epoch timestamp; zero means unknown and
// renders empty.
func formatDate(epoch int64) string {
	if epoch == 0 {
		return ""
	}
	return time.Unix(epoch, 0).UTC().Format("2006-01-02")
}
