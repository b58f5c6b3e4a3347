package model

// Transcript source labels.
const (
	SourceSubtitle = "subtitle"
	SourceSpeech   = "speech"
	SourceCaller   = "caller"
)

// TranscriptResult is the formatted-transcript payload returned by the
// transcription and formatting endpoints.
type TranscriptResult struct {
	Transcript        string   `json:"transcript"`
	RawText           string   `json:"raw_text"`
	FormattedText     string   `json:"formatted_text"`
	TimestampedText   string   `json:"timestamped_text,omitempty"`
	Language          string   `json:"language"`
	SentenceCount     int      `json:"sentence_count"`
	WordCount         int      `json:"word_count"`
	ProcessingApplied []string `json:"processing_applied"`
	Source            string   `json:"source,omitempty"`
	Formatted         bool     `json:"formatted"`
}

// AnalysisResult bundles everything the analyze endpoint produces for one
// video URL.
type AnalysisResult struct {
	URL        string            `json:"url"`
	VideoInfo  *VideoInfo        `json:"video_info,omitempty"`
	Subtitles  *SubtitleInfo     `json:"subtitles,omitempty"`
	Transcript *TranscriptResult `json:"transcript,omitempty"`
	Warnings   []string          `json:"warnings,omitempty"`
}
