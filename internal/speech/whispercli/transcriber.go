// Package whispercli implements the speech backend over a local
// faster-whisper compatible command line tool that prints its result as
// JSON on stdout.
package whispercli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/whoamihappyhacking/vidscribe/internal/speech"
)

// Config describes the local transcription command.
type Config struct {
	Binary string // e.g. "faster-whisper" or a wrapper script
	Model  string // model name or path passed through to the tool
	Device string // auto|cpu|cuda
}

// Transcriber shells out to the configured CLI for each request.
type Transcriber struct {
	cfg Config
}

// New builds a CLI transcriber from the config.
func New(cfg Config) (*Transcriber, error) {
	if cfg.Binary == "" {
		return nil, errors.New("transcription binary is required")
	}
	if cfg.Device == "" {
		cfg.Device = "auto"
	}
	if _, err := exec.LookPath(cfg.Binary); err != nil {
		return nil, fmt.Errorf("transcription binary: %w", err)
	}
	return &Transcriber{cfg: cfg}, nil
}

// Close implements the Transcriber interface. No-op for the CLI backend.
func (t *Transcriber) Close() {}

// TranscribeFile runs the CLI against the audio file and decodes its JSON
// output.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string, opts speech.Options) (*speech.Result, error) {
	args := []string{"--audio", path, "--output-format", "json"}
	if t.cfg.Model != "" {
		args = append(args, "--model", t.cfg.Model)
	}
	args = append(args, "--device", t.cfg.Device)
	if opts.LanguageSet && strings.TrimSpace(opts.Language) != "" && opts.Language != "auto" {
		args = append(args, "--language", strings.TrimSpace(opts.Language))
	}
	if opts.TranslateSet && opts.Translate {
		args = append(args, "--task", "translate")
	}
	if opts.ThreadsSet && opts.Threads > 0 {
		args = append(args, "--threads", strconv.Itoa(opts.Threads))
	}
	if opts.InitialPromptSet && opts.InitialPrompt != "" {
		args = append(args, "--initial-prompt", opts.InitialPrompt)
	}
	if opts.TemperatureSet {
		args = append(args, "--temperature", strconv.FormatFloat(float64(opts.Temperature), 'f', -1, 32))
	}

	cmd := exec.CommandContext(ctx, t.cfg.Binary, args...)
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		var ee *exec.ExitError
		if errors.As(err, &ee) {
			return nil, fmt.Errorf("transcription failed: %s", strings.TrimSpace(string(ee.Stderr)))
		}
		return nil, fmt.Errorf("run transcription: %w", err)
	}

	result, err := parseResult(out)
	if err != nil {
		return nil, err
	}
	if result.Language == "" && opts.LanguageSet {
		result.Language = opts.Language
	}
	return result, nil
}

type cliOutput struct {
	Text     string       `json:"text"`
	Language string       `json:"language"`
	Duration float64      `json:"duration"`
	Segments []cliSegment `json:"segments"`
	Error    string       `json:"error"`
}

type cliSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}

func parseResult(out []byte) (*speech.Result, error) {
	var resp cliOutput
	if err := json.Unmarshal(bytes.TrimSpace(out), &resp); err != nil {
		return nil, fmt.Errorf("decode transcription output: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}

	result := &speech.Result{
		Text:     strings.TrimSpace(resp.Text),
		Language: resp.Language,
		Duration: speech.SecondsToDuration(resp.Duration),
	}
	for _, seg := range resp.Segments {
		result.Segments = append(result.Segments, speech.Segment{
			ID:    seg.ID,
			Start: speech.SecondsToDuration(seg.Start),
			End:   speech.SecondsToDuration(seg.End),
			Text:  strings.TrimSpace(seg.Text),
		})
	}

	if result.Text == "" && len(result.Segments) > 0 {
		parts := make([]string, 0, len(result.Segments))
		for _, seg := range result.Segments {
			if seg.Text != "" {
				parts = append(parts, seg.Text)
			}
		}
		result.Text = strings.Join(parts, " ")
	}

	return result, nil
}
