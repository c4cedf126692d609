package tiktok

// UserInfo is a normalized TikTok user profile. Values are built once by a
// schema resolver (or the fallback path) and never mutated afterwards.
type UserInfo struct {
	ID             string
	Username       string
	Nickname       string
	Bio            string
	AvatarURL      string
	FollowerCount  uint64
	FollowingCount uint64
	LikeCount      uint64
	VideoCount     uint64

	// Videos is always empty today: resolving a profile's video list would
	// need a separate item-list fetch. An empty slice is not a failure signal.
	Videos []VideoInfo
}

// VideoInfo is a normalized TikTok video with its engagement metrics.
// Empty MusicTitle/MusicAuthor means the page carried no music object,
// which is a normal state for many videos.
type VideoInfo struct {
	ID             string
	Description    string
	AuthorUsername string
	AuthorNickname string
	AuthorAvatar   string
	VideoURL       string
	ThumbnailURL   string
	LikeCount      uint64
	CommentCount   uint64
	ShareCount     uint64
	ViewCount      uint64
	CreateTime     int64 // platform epoch seconds, 0 if unknown
	MusicTitle     string
	MusicAuthor    string
}

// TagInfo is a normalized hashtag/challenge page. Name never carries a
// leading '#'.
type TagInfo struct {
	Name      string
	ViewCount uint64
	Videos    []VideoInfo
}
