package tiktok

// Fallback entities echo only the requested key and leave every other field
// at its empty/zero default. They are served when extraction or resolution
// misses so the viewer still renders a page; the degradation itself is only
// logged, never surfaced as an error.

func FallbackUser(username string) UserInfo {
	return UserInfo{Username: username}
}

func FallbackVideo(videoID string) VideoInfo {
	return VideoInfo{ID: videoID}
}

func FallbackTag(tagName string) TagInfo {
	return TagInfo{Name: tagName}
}
