// Package media extracts video metadata, subtitles and audio through an
// external yt-dlp binary.
package media

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/whoamihappyhacking/vidscribe/internal/model"
)

const (
	// DefaultBinary is used when no explicit yt-dlp path is configured.
	DefaultBinary = "yt-dlp"

	subtitleFetchTimeout = 30 * time.Second
)

// Fetcher wraps yt-dlp invocations for one configured binary and temp dir.
type Fetcher struct {
	binary  string
	tempDir string
	client  *http.Client
}

// NewFetcher builds a fetcher. Empty arguments fall back to the yt-dlp on
// PATH and the system temp directory.
func NewFetcher(binary, tempDir string) *Fetcher {
	if binary == "" {
		binary = DefaultBinary
	}
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &Fetcher{
		binary:  binary,
		tempDir: tempDir,
		client:  &http.Client{Timeout: subtitleFetchTimeout},
	}
}

// CheckBinary verifies the configured yt-dlp binary can be resolved.
func (f *Fetcher) CheckBinary() error {
	if strings.ContainsRune(f.binary, os.PathSeparator) {
		info, err := os.Stat(f.binary)
		if err != nil {
			return fmt.Errorf("yt-dlp binary %q: %w", f.binary, err)
		}
		if info.IsDir() {
			return fmt.Errorf("yt-dlp binary %q is a directory", f.binary)
		}
		return nil
	}
	if _, err := exec.LookPath(f.binary); err != nil {
		return fmt.Errorf("yt-dlp not found on PATH: %w", err)
	}
	return nil
}

// probe mirrors the subset of `yt-dlp -J` output we consume.
type probe struct {
	ID                string                    `json:"id"`
	Title             string                    `json:"title"`
	Uploader          string                    `json:"uploader"`
	UploadDate        string                    `json:"upload_date"`
	Duration          float64                   `json:"duration"`
	Description       string                    `json:"description"`
	Thumbnail         string                    `json:"thumbnail"`
	ViewCount         int64                     `json:"view_count"`
	WebpageURL        string                    `json:"webpage_url"`
	Extractor         string                    `json:"extractor"`
	Subtitles         map[string][]subtitleItem `json:"subtitles"`
	AutomaticCaptions map[string][]subtitleItem `json:"automatic_captions"`
}

type subtitleItem struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// Info fetches video metadata for the URL.
func (f *Fetcher) Info(ctx context.Context, url string) (*model.VideoInfo, error) {
	p, err := f.dump(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.videoInfo(), nil
}

// Subtitles reports subtitle availability for the URL.
func (f *Fetcher) Subtitles(ctx context.Context, url string) (*model.SubtitleInfo, error) {
	p, err := f.dump(ctx, url)
	if err != nil {
		return nil, err
	}
	return p.subtitleInfo(), nil
}

// Probe fetches metadata and subtitle availability in a single yt-dlp run.
func (f *Fetcher) Probe(ctx context.Context, url string) (*model.VideoInfo, *model.SubtitleInfo, error) {
	p, err := f.dump(ctx, url)
	if err != nil {
		return nil, nil, err
	}
	return p.videoInfo(), p.subtitleInfo(), nil
}

func (f *Fetcher) dump(ctx context.Context, url string) (*probe, error) {
	start := time.Now()

	cmd := exec.CommandContext(ctx, f.binary, "-J", "--no-playlist", "--no-warnings", url)
	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if ee, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("yt-dlp dump failed: %s", firstLine(ee.Stderr))
		}
		return nil, fmt.Errorf("run yt-dlp: %w", err)
	}

	p, err := parseProbe(out)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("id", p.ID).Dur("elapsed", time.Since(start)).Msg("video metadata extracted")
	return p, nil
}

func parseProbe(raw []byte) (*probe, error) {
	var p probe
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("decode yt-dlp output: %w", err)
	}
	if p.ID == "" && p.Title == "" {
		return nil, fmt.Errorf("yt-dlp output carries no video metadata")
	}
	return &p, nil
}

func (p *probe) videoInfo() *model.VideoInfo {
	return &model.VideoInfo{
		ID:          p.ID,
		Title:       p.Title,
		Uploader:    p.Uploader,
		UploadDate:  p.UploadDate,
		Duration:    p.Duration,
		Description: p.Description,
		Thumbnail:   p.Thumbnail,
		ViewCount:   p.ViewCount,
		WebpageURL:  p.WebpageURL,
		Extractor:   p.Extractor,
	}
}

func (p *probe) subtitleInfo() *model.SubtitleInfo {
	info := &model.SubtitleInfo{Tracks: make([]model.SubtitleTrack, 0)}
	appendTracks(info, p.Subtitles, false)
	appendTracks(info, p.AutomaticCaptions, true)
	info.Available = len(info.Tracks) > 0
	return info
}

func appendTracks(info *model.SubtitleInfo, items map[string][]subtitleItem, auto bool) {
	for lang, renditions := range items {
		for _, r := range renditions {
			// Fragmented formats cannot be fetched as one document.
			if r.Ext == "m3u8" || r.Ext == "mpd" {
				continue
			}
			info.Tracks = append(info.Tracks, model.SubtitleTrack{
				Lang: lang,
				Ext:  r.Ext,
				URL:  r.URL,
				Auto: auto,
			})
		}
	}
}

// DownloadAudio extracts the audio track to a wav file in the temp
// directory. The caller removes the returned file when done.
func (f *Fetcher) DownloadAudio(ctx context.Context, url string) (string, error) {
	outPath := filepath.Join(f.tempDir, "vidscribe-"+uuid.NewString()+".wav")

	cmd := exec.CommandContext(ctx, f.binary,
		"-x", "--audio-format", "wav",
		"--no-playlist", "--no-warnings",
		"-o", outPath,
		url,
	)
	out, err := cmd.CombinedOutput()
	if err != nil {
		os.Remove(outPath)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", fmt.Errorf("yt-dlp audio extraction failed: %s", firstLine(out))
	}

	if _, err := os.Stat(outPath); err != nil {
		return "", fmt.Errorf("yt-dlp reported success but %s is missing", outPath)
	}

	log.Debug().Str("path", outPath).Msg("audio track extracted")
	return outPath, nil
}

// FetchSubtitle downloads one subtitle track and parses it into timed
// segments.
func (f *Fetcher) FetchSubtitle(ctx context.Context, track model.SubtitleTrack) ([]Cue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build subtitle request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch subtitle track: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch subtitle track: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, fmt.Errorf("read subtitle track: %w", err)
	}

	return ParseSubtitle(body)
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if s == "" {
		s = "no output"
	}
	return s
}
