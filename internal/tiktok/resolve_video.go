package tiktok

import "encoding/json"

type videoSchema func(st *State, videoID string) (VideoInfo, bool)

var videoSchemas = []videoSchema{
	videoFromDefaultScope,
	videoFromItemModule,
}

// ResolveVideo maps an extracted state payload onto a VideoInfo by trying
// each known schema variant in order.
func ResolveVideo(st *State, videoID string) (VideoInfo, bool) {
	for _, schema := range videoSchemas {
		if video, ok := schema(st, videoID); ok {
			return video, true
		}
	}
	return VideoInfo{}, false
}

func videoFromDefaultScope(st *State, _ string) (VideoInfo, bool) {
	var doc rawDefaultScopeDoc
	if err := json.Unmarshal(st.JSON(), &doc); err != nil {
		return VideoInfo{}, false
	}
	scope := doc.DefaultScope
	if scope == nil || scope.VideoDetail == nil || scope.VideoDetail.ItemInfo == nil {
		return VideoInfo{}, false
	}
	item := scope.VideoDetail.ItemInfo.ItemStruct
	if item == nil {
		return VideoInfo{}, false
	}
	return mapVideoItem(item), true
}

func videoFromItemModule(st *State, videoID string) (VideoInfo, bool) {
	var doc rawItemModuleDoc
	if err := json.Unmarshal(st.JSON(), &doc); err != nil {
		return VideoInfo{}, false
	}
	if doc.ItemModule == nil {
		return VideoInfo{}, false
	}
	if item, ok := doc.ItemModule[videoID]; ok {
		return mapVideoItem(&item), true
	}
	// Single-item payloads are sometimes keyed differently than requested;
	// accept the sole entry rather than missing the video.
	if len(doc.ItemModule) == 1 {
		for _, item := range doc.ItemModule {
			return mapVideoItem(&item), true
		}
	}
	return VideoInfo{}, false
}

// mapVideoItem maps a raw item to the normalized entity. Every sub-object
// is optional here: a missing author, stats, video, or music block yields
// empty/zero fields rather than a miss.
func mapVideoItem(item *rawItem) VideoInfo {
	author := item.Author
	if author == nil {
		author = &rawAuthor{}
	}
	stats := item.Stats
	if stats == nil {
		stats = &rawItemStats{}
	}
	video := item.Video
	if video == nil {
		video = &rawItemVideo{}
	}

	info := VideoInfo{
		ID:             item.ID,
		Description:    item.Desc,
		AuthorUsername: author.UniqueID,
		AuthorNickname: author.Nickname,
		AuthorAvatar:   author.AvatarMedium,
		VideoURL:       firstNonEmpty(video.PlayAddr, video.DownloadAddr),
		ThumbnailURL:   firstNonEmpty(video.Cover, video.OriginCover, video.DynamicCover),
		LikeCount:      stats.DiggCount,
		CommentCount:   stats.CommentCount,
		ShareCount:     stats.ShareCount,
		ViewCount:      stats.PlayCount,
		CreateTime:     item.CreateTime,
	}
	if item.Music != nil {
		info.MusicTitle = item.Music.Title
		info.MusicAuthor = item.Music.AuthorName
	}
	return info
}
