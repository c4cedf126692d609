package tiktok

import (
	"encoding/json"
	"reflect"
	"testing"
)

func wrapScript(id, payload string) string {
	return `<html><head></head><body><script id="` + id + `" type="application/json">` +
		payload + `</script></body></html>`
}

func TestExtractState_KnownIDs(t *testing.T) {
	t.Parallel()
	payload := `{"__DEFAULT_SCOPE__":{"webapp.user-detail":{"userInfo":{"user":{"id":"1"}}}}}`

	for _, id := range []string{"SIGI_STATE", "__UNIVERSAL_DATA_FOR_REHYDRATION__"} {
		id := id
		t.Run(id, func(t *testing.T) {
			t.Parallel()
			st, ok := ExtractState([]byte(wrapScript(id, payload)))
			if !ok {
				t.Fatalf("expected state for script id %s", id)
			}

			// Round-trip: the payload must come back unchanged.
			var want, got any
			if err := json.Unmarshal([]byte(payload), &want); err != nil {
				t.Fatal(err)
			}
			if err := json.Unmarshal(st.JSON(), &got); err != nil {
				t.Fatalf("extracted payload is not valid JSON: %v", err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Errorf("extracted payload differs from embedded payload")
			}
		})
	}
}

func TestExtractState_ArbitraryAttributes(t *testing.T) {
	t.Parallel()
	html := `<script id="SIGI_STATE" crossorigin="anonymous" data-x="1">{"a":1}</script>`
	st, ok := ExtractState([]byte(html))
	if !ok {
		t.Fatal("expected state despite extra attributes")
	}
	if string(st.JSON()) != `{"a":1}` {
		t.Errorf("payload = %s", st.JSON())
	}
}

// A known id with a broken payload must not abort extraction; the next
// convention still gets probed.
func TestExtractState_BrokenPayloadContinues(t *testing.T) {
	t.Parallel()
	html := wrapScript("SIGI_STATE", `{"broken":`) +
		wrapScript("__UNIVERSAL_DATA_FOR_REHYDRATION__", `{"ok":true}`)
	st, ok := ExtractState([]byte(html))
	if !ok {
		t.Fatal("expected fallback to second script id")
	}
	if string(st.JSON()) != `{"ok":true}` {
		t.Errorf("payload = %s", st.JSON())
	}
}

func TestExtractState_MarkerScan(t *testing.T) {
	t.Parallel()
	payload := `{"ItemModule":{"123":{"id":"123"}}}`
	html := `<html><body>` +
		`<script>window.analytics = true;</script>` +
		`<script type="application/json">` + payload + `</script>` +
		`</body></html>`

	st, ok := ExtractState([]byte(html))
	if !ok {
		t.Fatal("expected state via marker scan")
	}
	if string(st.JSON()) != payload {
		t.Errorf("payload = %s, want %s", st.JSON(), payload)
	}
}

func TestExtractState_NotFound(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		html string
	}{
		{"empty input", ""},
		{"plain page", "<html><body><p>hello</p></body></html>"},
		{"script without markers", "<script>var x = 1;</script>"},
		{"marker but invalid json", `<script>var s = "ItemModule"; load("ItemModule");</script>`},
		{"unterminated script tag", `<script id="SIGI_STATE" type="application/json">{"a":1}`},
		{"truncated html", `<div><script id="SIGI_STATE"`},
		{"not html at all", "\x00\x01\x02 garbage \xff"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if st, ok := ExtractState([]byte(tt.html)); ok {
				t.Errorf("expected no state, got %s", st.JSON())
			}
		})
	}
}
