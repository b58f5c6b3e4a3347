package http

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/whoamihappyhacking/vidscribe/internal/errors"
	"github.com/whoamihappyhacking/vidscribe/internal/media"
	"github.com/whoamihappyhacking/vidscribe/internal/model"
	"github.com/whoamihappyhacking/vidscribe/internal/speech"
	"github.com/whoamihappyhacking/vidscribe/internal/textproc"
)

func (s *Service) initRouter() {
	s.initBaseRouter()
	s.initAPIRouter()
	s.initMCPRouter()
}

func (s *Service) initBaseRouter() {
	s.router.GET("/health", func(ctx *gin.Context) { ctx.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})
}

func (s *Service) initAPIRouter() {
	api := s.router.Group("/api/v1")
	{
		api.GET("/info", s.handleInfo)
		api.GET("/subtitles", s.handleSubtitles)
		api.POST("/analyze", s.handleAnalyze)
		api.POST("/transcribe", s.handleTranscribe)
		api.POST("/format", s.handleFormat)
		api.GET("/config", s.handleConfig)
	}
}

func (s *Service) initMCPRouter() {
	s.router.Any("/mcp", func(c *gin.Context) { s.mcpStreamableServer.ServeHTTP(c.Writer, c.Request) })
	s.router.Any("/sse", func(c *gin.Context) { s.mcpSSEServer.ServeHTTP(c.Writer, c.Request) })
	s.router.Any("/message", func(c *gin.Context) { s.mcpSSEServer.ServeHTTP(c.Writer, c.Request) })
}

// GET /api/v1/info?url=
func (s *Service) handleInfo(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		errors.Err(c, errors.InvalidArg("url"))
		return
	}

	info, err := s.fetcher.Info(c.Request.Context(), url)
	if err != nil {
		errors.Err(c, errors.MediaFailed(err))
		return
	}

	c.JSON(http.StatusOK, info)
}

// GET /api/v1/subtitles?url=
func (s *Service) handleSubtitles(c *gin.Context) {
	url := strings.TrimSpace(c.Query("url"))
	if url == "" {
		errors.Err(c, errors.InvalidArg("url"))
		return
	}

	subs, err := s.fetcher.Subtitles(c.Request.Context(), url)
	if err != nil {
		errors.Err(c, errors.MediaFailed(err))
		return
	}

	c.JSON(http.StatusOK, subs)
}

type segmentPayload struct {
	Text  string  `json:"text"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

type formatRequest struct {
	Segments          []segmentPayload `json:"segments"`
	Title             string           `json:"title"`
	Language          string           `json:"language"`
	MinSentenceLength int              `json:"min_sentence_length"`
	Punctuate         *bool            `json:"punctuate"`
	Timestamps        *bool            `json:"timestamps"`
	TitleLine         *bool            `json:"title_line"`
}

// POST /api/v1/format
func (s *Service) handleFormat(c *gin.Context) {
	var req formatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Err(c, errors.InvalidRequest(err))
		return
	}

	opts := s.formatOptions(req.Title, req.Language)
	if req.MinSentenceLength > 0 {
		opts.MinSentenceLength = req.MinSentenceLength
	}
	if req.Punctuate != nil {
		opts.Punctuate = *req.Punctuate
	}
	if req.Timestamps != nil {
		opts.Timestamps = *req.Timestamps
	}
	if req.TitleLine != nil {
		opts.TitleLine = *req.TitleLine
	}

	segments := make([]textproc.Segment, 0, len(req.Segments))
	for _, seg := range req.Segments {
		segments = append(segments, textproc.Segment{
			Text:  seg.Text,
			Start: speech.SecondsToDuration(seg.Start),
			End:   speech.SecondsToDuration(seg.End),
		})
	}

	result, err := s.formatSegments(segments, opts, model.SourceCaller)
	if err != nil {
		errors.Err(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type transcribeRequest struct {
	URL      string `json:"url"`
	Language string `json:"language"`
}

// POST /api/v1/transcribe
func (s *Service) handleTranscribe(c *gin.Context) {
	backend, opts := s.transcriber()
	if backend == nil {
		errors.Err(c, errors.Unavailable("speech-to-text"))
		return
	}

	var req transcribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Err(c, errors.InvalidRequest(err))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		errors.Err(c, errors.InvalidArg("url"))
		return
	}

	ctx := c.Request.Context()
	result, err := s.transcribeURL(ctx, backend, opts, req.URL, req.Language)
	if err != nil {
		errors.Err(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

type analyzeRequest struct {
	URL              string `json:"url"`
	Language         string `json:"language"`
	EnableFormatting *bool  `json:"enable_formatting"`
	EnableSpeech     *bool  `json:"enable_speech"`
}

// POST /api/v1/analyze
func (s *Service) handleAnalyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.Err(c, errors.InvalidRequest(err))
		return
	}
	if strings.TrimSpace(req.URL) == "" {
		errors.Err(c, errors.InvalidArg("url"))
		return
	}

	ctx := c.Request.Context()

	info, subs, err := s.fetcher.Probe(ctx, req.URL)
	if err != nil {
		errors.Err(c, errors.MediaFailed(err))
		return
	}

	if max := s.conf.GetMaxDuration(); max > 0 && info.Duration > max.Seconds() {
		errors.Err(c, errors.Newf(http.StatusBadRequest,
			"video duration %.0fs exceeds the %s limit", info.Duration, max))
		return
	}

	result := &model.AnalysisResult{
		URL:       req.URL,
		VideoInfo: info,
		Subtitles: subs,
	}

	segments, language, source := s.collectSegments(c, subs, req, result)
	if len(segments) == 0 {
		c.JSON(http.StatusOK, result)
		return
	}

	if req.Language != "" {
		language = req.Language
	}
	opts := s.formatOptions(info.Title, language)
	if req.EnableFormatting != nil && !*req.EnableFormatting {
		opts.Punctuate = false
		opts.Timestamps = false
		opts.TitleLine = false
	}

	transcript, err := s.formatSegments(segments, opts, source)
	if err != nil {
		result.Warnings = append(result.Warnings, "transcript formatting failed: "+err.Error())
		c.JSON(http.StatusOK, result)
		return
	}

	result.Transcript = transcript
	c.JSON(http.StatusOK, result)
}

// collectSegments obtains timed text for a video, preferring subtitles and
// falling back to the speech backend. Failures degrade into warnings so
// metadata still comes back.
func (s *Service) collectSegments(c *gin.Context, subs *model.SubtitleInfo, req analyzeRequest, result *model.AnalysisResult) ([]textproc.Segment, string, string) {
	ctx := c.Request.Context()

	if track, ok := media.PickSubtitleTrack(subs, s.conf.GetPreferredLanguages()); ok {
		cues, err := s.fetcher.FetchSubtitle(ctx, track)
		if err == nil {
			return cuesToSegments(cues), track.Lang, model.SourceSubtitle
		}
		result.Warnings = append(result.Warnings, "subtitle download failed: "+err.Error())
	}

	backend, opts := s.transcriber()
	if backend == nil || (req.EnableSpeech != nil && !*req.EnableSpeech) {
		return nil, "", ""
	}

	audioPath, err := s.fetcher.DownloadAudio(ctx, req.URL)
	if err != nil {
		result.Warnings = append(result.Warnings, "audio extraction failed: "+err.Error())
		return nil, "", ""
	}
	defer removeFile(audioPath)

	if req.Language != "" {
		opts.Language = req.Language
		opts.LanguageSet = true
	}

	speechResult, err := backend.TranscribeFile(ctx, audioPath, opts)
	if err != nil {
		result.Warnings = append(result.Warnings, "transcription failed: "+err.Error())
		return nil, "", ""
	}

	return speechSegments(speechResult), speechResult.Language, model.SourceSpeech
}

// GET /api/v1/config
func (s *Service) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, s.conf.Public())
}

func (s *Service) formatOptions(title, language string) textproc.Options {
	opts := s.conf.GetFormat().ToOptions()
	opts.Title = title
	if language != "" {
		opts.Language = language
	}
	return opts
}

// formatSegments runs the transcript engine and shapes its document into
// the API payload. Engine input errors surface as 400s.
func (s *Service) formatSegments(segments []textproc.Segment, opts textproc.Options, source string) (*model.TranscriptResult, error) {
	doc, err := textproc.New(opts).Process(segments)
	if err != nil {
		var segErr *textproc.SegmentError
		switch {
		case stderrors.Is(err, textproc.ErrEmptyInput):
			return nil, errors.New(http.StatusBadRequest, err.Error())
		case stderrors.As(err, &segErr):
			return nil, errors.New(http.StatusBadRequest, err.Error())
		default:
			return nil, errors.Internal(err)
		}
	}

	return &model.TranscriptResult{
		Transcript:        doc.Transcript,
		RawText:           doc.RawText,
		FormattedText:     doc.FormattedText,
		TimestampedText:   doc.TimestampedText,
		Language:          string(doc.Language),
		SentenceCount:     doc.SentenceCount,
		WordCount:         doc.WordCount,
		ProcessingApplied: doc.ProcessingApplied,
		Source:            source,
		Formatted:         len(doc.ProcessingApplied) > 0,
	}, nil
}

// transcribeURL extracts audio, transcribes it and formats the result.
func (s *Service) transcribeURL(ctx context.Context, backend speech.Transcriber, opts speech.Options, url, language string) (*model.TranscriptResult, error) {
	audioPath, err := s.fetcher.DownloadAudio(ctx, url)
	if err != nil {
		return nil, errors.MediaFailed(err)
	}
	defer removeFile(audioPath)

	if language != "" {
		opts.Language = language
		opts.LanguageSet = true
	}

	result, err := backend.TranscribeFile(ctx, audioPath, opts)
	if err != nil {
		return nil, errors.TranscriptionFailed(err)
	}

	lang := language
	if lang == "" {
		lang = result.Language
	}
	return s.formatSegments(speechSegments(result), s.formatOptions("", lang), model.SourceSpeech)
}

func cuesToSegments(cues []media.Cue) []textproc.Segment {
	segments := make([]textproc.Segment, 0, len(cues))
	for _, cue := range cues {
		segments = append(segments, textproc.Segment{
			Text:  cue.Text,
			Start: cue.Start,
			End:   cue.End,
		})
	}
	return segments
}

// speechSegments converts a speech result into engine segments, falling
// back to one whole-text segment when the backend returned no timing.
func speechSegments(result *speech.Result) []textproc.Segment {
	if len(result.Segments) == 0 {
		if strings.TrimSpace(result.Text) == "" {
			return nil
		}
		return []textproc.Segment{{Text: result.Text, Start: 0, End: result.Duration}}
	}
	segments := make([]textproc.Segment, 0, len(result.Segments))
	for _, seg := range result.Segments {
		segments = append(segments, textproc.Segment{
			Text:  seg.Text,
			Start: seg.Start,
			End:   seg.End,
		})
	}
	return segments
}

func removeFile(path string) {
	if err := os.Remove(path); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("failed to remove temp file")
	}
}
