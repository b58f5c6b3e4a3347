package media

import (
	"strings"

	"github.com/whoamihappyhacking/vidscribe/internal/model"
)

// PickSubtitleTrack chooses the best subtitle rendition: preferred
// languages first, manually authored tracks before automatic captions.
func PickSubtitleTrack(subs *model.SubtitleInfo, preferred []string) (model.SubtitleTrack, bool) {
	if subs == nil || len(subs.Tracks) == 0 {
		return model.SubtitleTrack{}, false
	}

	for _, auto := range []bool{false, true} {
		for _, pref := range preferred {
			for _, track := range subs.Tracks {
				if track.Auto != auto {
					continue
				}
				if langMatches(track.Lang, pref) {
					return track, true
				}
			}
		}
	}
	for _, auto := range []bool{false, true} {
		for _, track := range subs.Tracks {
			if track.Auto == auto {
				return track, true
			}
		}
	}
	return model.SubtitleTrack{}, false
}

func langMatches(lang, pref string) bool {
	lang = strings.ToLower(lang)
	pref = strings.ToLower(pref)
	return lang == pref || strings.HasPrefix(lang, pref+"-") || strings.HasPrefix(pref, lang+"-")
}
