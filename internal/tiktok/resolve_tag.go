package tiktok

import "encoding/json"

type tagSchema func(st *State, tagName string) (TagInfo, bool)

var tagSchemas = []tagSchema{
	tagFromDefaultScope,
	tagFromChallengePage,
}

// ResolveTag maps an extracted state payload onto a TagInfo by trying each
// known schema variant in order.
func ResolveTag(st *State, tagName string) (TagInfo, bool) {
	for _, schema := range tagSchemas {
		if tag, ok := schema(st, tagName); ok {
			return tag, true
		}
	}
	return TagInfo{}, false
}

func tagFromDefaultScope(st *State, tagName string) (TagInfo, bool) {
	var doc rawDefaultScopeDoc
	if err := json.Unmarshal(st.JSON(), &doc); err != nil {
		return TagInfo{}, false
	}
	scope := doc.DefaultScope
	if scope == nil || scope.ChallengeDetail == nil {
		return TagInfo{}, false
	}
	return mapChallenge(scope.ChallengeDetail.ChallengeInfo, tagName)
}

func tagFromChallengePage(st *State, tagName string) (TagInfo, bool) {
	var doc rawChallengePageDoc
	if err := json.Unmarshal(st.JSON(), &doc); err != nil {
		return TagInfo{}, false
	}
	if doc.ChallengePage == nil {
		return TagInfo{}, false
	}
	return mapChallenge(doc.ChallengePage.ChallengeInfo, tagName)
}

func mapChallenge(info *rawChallengeInfo, tagName string) (TagInfo, bool) {
	if info == nil || info.Challenge == nil {
		return TagInfo{}, false
	}
	stats := info.Stats
	if stats == nil {
		stats = &rawChallengeStats{}
	}
	return TagInfo{
		Name:      firstNonEmpty(info.Challenge.Title, tagName),
		ViewCount: stats.ViewCount,
	}, true
}
