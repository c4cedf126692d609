package tiktok

// Raw structs matching the JSON shapes TikTok embeds in its pages. Pointer
// fields mark the sub-objects a schema variant requires: json.Unmarshal
// leaves them nil when the key is absent, which is how a variant detects
// that it does not apply. Where the upstream has used alternate field names
// over time, both are declared and the mapper prefers the first present.

// __DEFAULT_SCOPE__ documents (the newer rehydration payload).

type rawDefaultScopeDoc struct {
	DefaultScope *rawDefaultScope `json:"__DEFAULT_SCOPE__"`
}

type rawDefaultScope struct {
	UserDetail      *rawUserDetail      `json:"webapp.user-detail"`
	VideoDetail     *rawVideoDetail     `json:"webapp.video-detail"`
	ChallengeDetail *rawChallengeDetail `json:"webapp.challenge-detail"`
}

type rawUserDetail struct {
	UserInfo *rawUserInfo `json:"userInfo"`
}

type rawUserInfo struct {
	User  *rawUser      `json:"user"`
	Stats *rawUserStats `json:"stats"`
}

type rawUser struct {
	ID           string `json:"id"`
	UniqueID     string `json:"uniqueId"`
	Nickname     string `json:"nickname"`
	Signature    string `json:"signature"`
	AvatarLarger string `json:"avatarLarger"`
	AvatarMedium string `json:"avatarMedium"`
}

type rawUserStats struct {
	FollowerCount  uint64 `json:"followerCount"`
	FollowingCount uint64 `json:"followingCount"`
	HeartCount     uint64 `json:"heartCount"`
	Heart          uint64 `json:"heart"`
	VideoCount     uint64 `json:"videoCount"`
}

type rawVideoDetail struct {
	ItemInfo *rawItemInfo `json:"itemInfo"`
}

type rawItemInfo struct {
	ItemStruct *rawItem `json:"itemStruct"`
}

type rawChallengeDetail struct {
	ChallengeInfo *rawChallengeInfo `json:"challengeInfo"`
}

type rawChallengeInfo struct {
	Challenge *rawChallenge      `json:"challenge"`
	Stats     *rawChallengeStats `json:"stats"`
}

type rawChallenge struct {
	Title string `json:"title"`
}

type rawChallengeStats struct {
	ViewCount uint64 `json:"viewCount"`
}

// Legacy module documents (the older SIGI_STATE layout).

type rawUserModuleDoc struct {
	UserModule *rawUserModule `json:"UserModule"`
}

type rawUserModule struct {
	Users map[string]rawUser      `json:"users"`
	Stats map[string]rawUserStats `json:"stats"`
}

type rawItemModuleDoc struct {
	ItemModule map[string]rawItem `json:"ItemModule"`
}

type rawChallengePageDoc struct {
	ChallengePage *rawChallengeDetail `json:"ChallengePage"`
}

// Video item shape shared by both video variants.

type rawItem struct {
	ID         string        `json:"id"`
	Desc       string        `json:"desc"`
	CreateTime int64         `json:"createTime"`
	Author     *rawAuthor    `json:"author"`
	Stats      *rawItemStats `json:"stats"`
	Video      *rawItemVideo `json:"video"`
	Music      *rawMusic     `json:"music"`
}

type rawAuthor struct {
	UniqueID     string `json:"uniqueId"`
	Nickname     string `json:"nickname"`
	AvatarMedium string `json:"avatarMedium"`
}

type rawItemStats struct {
	DiggCount    uint64 `json:"diggCount"`
	CommentCount uint64 `json:"commentCount"`
	ShareCount   uint64 `json:"shareCount"`
	PlayCount    uint64 `json:"playCount"`
}

type rawItemVideo struct {
	PlayAddr     string `json:"playAddr"`
	DownloadAddr string `json:"downloadAddr"`
	Cover        string `json:"cover"`
	OriginCover  string `json:"originCover"`
	DynamicCover string `json:"dynamicCover"`
}

type rawMusic struct {
	Title      string `json:"title"`
	AuthorName string `json:"authorName"`
}

// firstNonEmpty returns the first non-empty string, used wherever the
// upstream has shipped the same value under different field names.
func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func firstNonZero(vals ...uint64) uint64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}
