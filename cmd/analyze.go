package cmd

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/whoamihappyhacking/vidscribe/internal/media"
	"github.com/whoamihappyhacking/vidscribe/internal/model"
	"github.com/whoamihappyhacking/vidscribe/internal/textproc"
	"github.com/whoamihappyhacking/vidscribe/internal/vidscribe/conf"
)

var (
	analyzeLanguage   string
	analyzeNoFormat   bool
	analyzeTimeoutSec int
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <url>",
	Short: "Analyze a video URL and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if analyzeTimeoutSec > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, time.Duration(analyzeTimeoutSec)*time.Second)
			defer cancel()
		}

		fetcher := media.NewFetcher(cfg.GetYtDlpPath(), cfg.GetTempDir())

		info, subs, err := fetcher.Probe(ctx, args[0])
		if err != nil {
			return err
		}

		result := &model.AnalysisResult{
			URL:       args[0],
			VideoInfo: info,
			Subtitles: subs,
		}

		if track, ok := media.PickSubtitleTrack(subs, cfg.GetPreferredLanguages()); ok {
			if transcript, err := formatTrack(ctx, fetcher, cfg, track, info.Title); err != nil {
				result.Warnings = append(result.Warnings, err.Error())
			} else {
				result.Transcript = transcript
			}
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(result)
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeLanguage, "language", "", "language hint for formatting")
	analyzeCmd.Flags().BoolVar(&analyzeNoFormat, "no-format", false, "skip punctuation and timestamp synthesis")
	analyzeCmd.Flags().IntVar(&analyzeTimeoutSec, "timeout", 120, "overall timeout in seconds (0 disables)")
	rootCmd.AddCommand(analyzeCmd)
}

func formatTrack(ctx context.Context, fetcher *media.Fetcher, cfg *conf.Config, track model.SubtitleTrack, title string) (*model.TranscriptResult, error) {
	cues, err := fetcher.FetchSubtitle(ctx, track)
	if err != nil {
		return nil, err
	}

	segments := make([]textproc.Segment, 0, len(cues))
	for _, cue := range cues {
		segments = append(segments, textproc.Segment{Text: cue.Text, Start: cue.Start, End: cue.End})
	}

	opts := cfg.GetFormat().ToOptions()
	opts.Title = title
	if analyzeLanguage != "" {
		opts.Language = analyzeLanguage
	} else if opts.Language == "" {
		opts.Language = track.Lang
	}
	if analyzeNoFormat {
		opts.Punctuate = false
		opts.Timestamps = false
		opts.TitleLine = false
	}

	doc, err := textproc.New(opts).Process(segments)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("sentences", doc.SentenceCount).Msg("transcript formatted")

	return &model.TranscriptResult{
		Transcript:        doc.Transcript,
		RawText:           doc.RawText,
		FormattedText:     doc.FormattedText,
		TimestampedText:   doc.TimestampedText,
		Language:          string(doc.Language),
		SentenceCount:     doc.SentenceCount,
		WordCount:         doc.WordCount,
		ProcessingApplied: doc.ProcessingApplied,
		Source:            model.SourceSubtitle,
		Formatted:         len(doc.ProcessingApplied) > 0,
	}, nil
}
