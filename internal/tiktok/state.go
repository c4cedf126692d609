package tiktok

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Script tag ids TikTok has used across redesigns for the embedded
// client-state payload, in the order they should be probed.
var stateScriptIDs = []string{
	"SIGI_STATE",
	"__UNIVERSAL_DATA_FOR_REHYDRATION__",
}

// Marker substrings that identify a state payload when no known script id is
// present and every script body has to be scanned instead.
var stateMarkers = []string{
	`"UserModule"`,
	`"ItemModule"`,
}

// State is the embedded client-state payload extracted from a TikTok page:
// one JSON document the upstream inlines to bootstrap its own rendering.
type State struct {
	data []byte
}

// JSON returns the raw payload bytes.
func (s *State) JSON() []byte { return s.data }

// ExtractState scans raw HTML for the embedded state payload. It first
// probes the known script ids, then falls back to scanning every script
// element for a marker substring. The boolean is false when no payload
// parses; that is an expected outcome for redesigned or blocked pages,
// not an error, and malformed input never panics.
func ExtractState(html []byte) (*State, bool) {
	for _, id := range stateScriptIDs {
		payload, ok := scriptPayload(html, id)
		if !ok {
			continue
		}
		if json.Valid(payload) {
			return &State{data: payload}, true
		}
		// Broken payload under a known id: keep probing the others.
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, false
	}
	var found *State
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if !containsStateMarker(text) || !json.Valid([]byte(text)) {
			return true
		}
		found = &State{data: []byte(text)}
		return false
	})
	return found, found != nil
}

// scriptPayload returns the text content of the first script tag with the
// given id, tolerating arbitrary attributes between the id and the closing
// bracket.
func scriptPayload(html []byte, id string) ([]byte, bool) {
	open := []byte(`<script id="` + id + `"`)
	start := bytes.Index(html, open)
	if start == -1 {
		return nil, false
	}
	rest := html[start+len(open):]
	gt := bytes.IndexByte(rest, '>')
	if gt == -1 {
		return nil, false
	}
	rest = rest[gt+1:]
	end := bytes.Index(rest, []byte("</script>"))
	if end == -1 {
		return nil, false
	}
	return rest[:end], true
}

func containsStateMarker(text string) bool {
	for _, m := range stateMarkers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
