// Package openai implements the speech backend against an OpenAI
// compatible transcription API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goopenai "github.com/sashabaranov/go-openai"

	"github.com/whoamihappyhacking/vidscribe/internal/speech"
)

// DefaultModel is the transcription model used when none is configured.
const DefaultModel = goopenai.Whisper1

// Config describes how to reach the transcription API.
type Config struct {
	APIKey         string
	BaseURL        string // optional, for self-hosted OpenAI-compatible servers
	Model          string
	RequestTimeout time.Duration
}

// Transcriber sends audio files to a remote transcription endpoint.
type Transcriber struct {
	client *goopenai.Client
	cfg    Config
}

// New builds a remote transcriber from the config.
func New(cfg Config) (*Transcriber, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("api key is required")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return &Transcriber{
		client: goopenai.NewClientWithConfig(clientCfg),
		cfg:    cfg,
	}, nil
}

// Close implements the Transcriber interface. No-op for the API backend.
func (t *Transcriber) Close() {}

// TranscribeFile uploads the audio file and requests a verbose
// transcription so segment timestamps come back with the text.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string, opts speech.Options) (*speech.Result, error) {
	if t.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.cfg.RequestTimeout)
		defer cancel()
	}

	req := goopenai.AudioRequest{
		Model:    t.cfg.Model,
		FilePath: path,
		Format:   goopenai.AudioResponseFormatVerboseJSON,
	}
	if opts.LanguageSet && strings.TrimSpace(opts.Language) != "" && opts.Language != "auto" {
		req.Language = strings.TrimSpace(opts.Language)
	}
	if opts.InitialPromptSet {
		req.Prompt = opts.InitialPrompt
	}
	if opts.TemperatureSet {
		req.Temperature = opts.Temperature
	}

	var (
		resp goopenai.AudioResponse
		err  error
	)
	if opts.TranslateSet && opts.Translate {
		resp, err = t.client.CreateTranslation(ctx, req)
	} else {
		resp, err = t.client.CreateTranscription(ctx, req)
	}
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("transcription request: %w", err)
	}

	result := &speech.Result{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: speech.SecondsToDuration(float64(resp.Duration)),
	}
	if result.Language == "" && opts.LanguageSet {
		result.Language = opts.Language
	}

	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, speech.Segment{
			ID:    seg.ID,
			Start: speech.SecondsToDuration(seg.Start),
			End:   speech.SecondsToDuration(seg.End),
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	return result, nil
}
