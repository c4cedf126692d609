package tiktok

import "encoding/json"

// userSchema is one historical shape of the embedded user payload. It
// returns false when the document does not carry this shape's required
// sub-objects; that moves resolution on to the next variant instead of
// failing the request.
type userSchema func(st *State, username string) (UserInfo, bool)

// Ordered newest first: the rehydration scope, then the legacy UserModule.
var userSchemas = []userSchema{
	userFromDefaultScope,
	userFromUserModule,
}

// ResolveUser maps an extracted state payload onto a UserInfo by trying each
// known schema variant in order. The boolean is false when no variant fits,
// which callers treat as a degraded page, not an error.
func ResolveUser(st *State, username string) (UserInfo, bool) {
	for _, schema := range userSchemas {
		if user, ok := schema(st, username); ok {
			return user, true
		}
	}
	return UserInfo{}, false
}

func userFromDefaultScope(st *State, username string) (UserInfo, bool) {
	var doc rawDefaultScopeDoc
	if err := json.Unmarshal(st.JSON(), &doc); err != nil {
		return UserInfo{}, false
	}
	scope := doc.DefaultScope
	if scope == nil || scope.UserDetail == nil || scope.UserDetail.UserInfo == nil {
		return UserInfo{}, false
	}
	info := scope.UserDetail.UserInfo
	if info.User == nil {
		return UserInfo{}, false
	}
	stats := info.Stats
	if stats == nil {
		stats = &rawUserStats{}
	}
	return mapUser(info.User, stats, username), true
}

func userFromUserModule(st *State, username string) (UserInfo, bool) {
	var doc rawUserModuleDoc
	if err := json.Unmarshal(st.JSON(), &doc); err != nil {
		return UserInfo{}, false
	}
	if doc.UserModule == nil {
		return UserInfo{}, false
	}
	user, ok := doc.UserModule.Users[username]
	if !ok {
		return UserInfo{}, false
	}
	stats, ok := doc.UserModule.Stats[username]
	if !ok {
		return UserInfo{}, false
	}
	return mapUser(&user, &stats, username), true
}

func mapUser(user *rawUser, stats *rawUserStats, username string) UserInfo {
	return UserInfo{
		ID:             user.ID,
		Username:       firstNonEmpty(user.UniqueID, username),
		Nickname:       firstNonEmpty(user.Nickname, username),
		Bio:            user.Signature,
		AvatarURL:      firstNonEmpty(user.AvatarLarger, user.AvatarMedium),
		FollowerCount:  stats.FollowerCount,
		FollowingCount: stats.FollowingCount,
		LikeCount:      firstNonZero(stats.HeartCount, stats.Heart),
		VideoCount:     stats.VideoCount,
	}
}
