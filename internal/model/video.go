package model

// VideoInfo is the metadata subset exposed for a video URL.
type VideoInfo struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Uploader    string  `json:"uploader"`
	UploadDate  string  `json:"upload_date,omitempty"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description,omitempty"`
	Thumbnail   string  `json:"thumbnail,omitempty"`
	ViewCount   int64   `json:"view_count,omitempty"`
	WebpageURL  string  `json:"webpage_url,omitempty"`
	Extractor   string  `json:"extractor,omitempty"`
}

// SubtitleTrack is one downloadable subtitle rendition.
type SubtitleTrack struct {
	Lang string `json:"lang"`
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Auto bool   `json:"auto"`
}

// SubtitleInfo summarises subtitle availability for a video.
type SubtitleInfo struct {
	Available bool            `json:"available"`
	Tracks    []SubtitleTrack `json:"tracks"`
}

// Languages returns the distinct language codes across all tracks.
func (s *SubtitleInfo) Languages() []string {
	if s == nil {
		return nil
	}
	seen := make(map[string]bool, len(s.Tracks))
	langs := make([]string, 0, len(s.Tracks))
	for _, t := range s.Tracks {
		if seen[t.Lang] {
			continue
		}
		seen[t.Lang] = true
		langs = append(langs, t.Lang)
	}
	return langs
}
