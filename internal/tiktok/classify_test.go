package tiktok

import "testing"

func TestClassify_Text(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  Route
		ok    bool
	}{
		{"empty", "", Route{}, false},
		{"whitespace only", "   ", Route{}, false},
		{"at handle", "@charli", Route{RouteUser, "charli"}, true},
		{"bare handle", "charli", Route{RouteUser, "charli"}, true},
		{"handle with dots", "some.user_name", Route{RouteUser, "some.user_name"}, true},
		{"hashtag", "#fyp", Route{RouteTag, "fyp"}, true},
		{"digits are a video id", "7123456789012345678", Route{RouteVideo, "7123456789012345678"}, true},
		{"digits with letters are a handle", "7123abc", Route{RouteUser, "7123abc"}, true},
		{"trims surrounding space", "  @charli  ", Route{RouteUser, "charli"}, true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Classify(tt.input)
			if ok != tt.ok {
				t.Fatalf("Classify(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// Leading-@ normalization: "@h" and "h" classify to the same user route.
func TestClassify_HandleNormalization(t *testing.T) {
	t.Parallel()
	for _, h := range []string{"charli", "a", "user.name_99"} {
		plain, _ := Classify(h)
		prefixed, _ := Classify("@" + h)
		if plain != prefixed {
			t.Errorf("Classify(%q) = %+v, Classify(@%q) = %+v; want equal", h, plain, h, prefixed)
		}
		if plain != (Route{RouteUser, h}) {
			t.Errorf("Classify(%q) = %+v, want user route %q", h, plain, h)
		}
	}
}

func TestClassify_URLs(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
		want  Route
	}{
		{
			"user url",
			"https://www.tiktok.com/@charli",
			Route{RouteUser, "charli"},
		},
		{
			"user url with query",
			"https://www.tiktok.com/@charli?lang=en",
			Route{RouteUser, "charli"},
		},
		{
			"video under user path",
			"https://www.tiktok.com/@charli/video/7123456789012345678",
			Route{RouteVideo, "7123456789012345678"},
		},
		{
			"video under user path with query",
			"https://www.tiktok.com/@charli/video/7123456789012345678?is_copy_url=1",
			Route{RouteVideo, "7123456789012345678"},
		},
		{
			"direct video url",
			"https://www.tiktok.com/video/7123456789012345678",
			Route{RouteVideo, "7123456789012345678"},
		},
		{
			"direct video url with trailing path",
			"https://www.tiktok.com/video/7123456789012345678/extra",
			Route{RouteVideo, "7123456789012345678"},
		},
		{
			"vm short link",
			"https://vm.tiktok.com/ZMabc123/",
			Route{RouteShortLink, "https://vm.tiktok.com/ZMabc123/"},
		},
		{
			"t short link",
			"https://www.tiktok.com/t/ZTabc123/",
			Route{RouteShortLink, "https://www.tiktok.com/t/ZTabc123/"},
		},
		{
			"percent-encoded short link is decoded",
			"https%3A%2F%2Fvm.tiktok.com%2FZMabc123%2F",
			Route{RouteShortLink, "https://vm.tiktok.com/ZMabc123/"},
		},
		{
			"tag url",
			"https://www.tiktok.com/tag/fyp",
			Route{RouteTag, "fyp"},
		},
		{
			"tag url strips query",
			"https://www.tiktok.com/tag/fyp?x=y",
			Route{RouteTag, "fyp"},
		},
		{
			"discover url",
			"https://www.tiktok.com/discover/cooking",
			Route{RouteTag, "cooking"},
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := ClassifyURL(tt.input)
			if !ok {
				t.Fatalf("ClassifyURL(%q) not recognized", tt.input)
			}
			if got != tt.want {
				t.Errorf("ClassifyURL(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestClassifyURL_Unrecognized(t *testing.T) {
	t.Parallel()
	for _, input := range []string{
		"https://www.tiktok.com/",
		"https://www.tiktok.com/foryou",
		"https://example.com/watch?v=123",
	} {
		if got, ok := ClassifyURL(input); ok {
			t.Errorf("ClassifyURL(%q) = %+v, want no route", input, got)
		}
	}
}

// An unrecognized tiktok.com URL typed into the search box degrades to a
// bare-handle attempt rather than failing classification.
func TestClassify_UnrecognizedPlatformURL(t *testing.T) {
	t.Parallel()
	input := "https://www.tiktok.com/foryou"
	got, ok := Classify(input)
	if !ok {
		t.Fatalf("Classify(%q) not recognized", input)
	}
	if got.Kind != RouteUser {
		t.Errorf("Classify(%q).Kind = %v, want RouteUser", input, got.Kind)
	}
}
