package http

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/whoamihappyhacking/vidscribe/internal/media"
	"github.com/whoamihappyhacking/vidscribe/internal/model"
)

const (
	mcpServerName    = "vidscribe"
	mcpServerVersion = "1.0.0"
)

func (s *Service) initMCPServer() {
	s.mcpServer = server.NewMCPServer(mcpServerName, mcpServerVersion,
		server.WithToolCapabilities(false),
	)

	s.mcpServer.AddTool(
		mcp.NewTool("video_info",
			mcp.WithDescription("Fetch metadata and subtitle availability for a video URL"),
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Video page URL (bilibili, youtube, or anything yt-dlp supports)"),
			),
		),
		s.mcpVideoInfo,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("transcribe_video",
			mcp.WithDescription("Produce a formatted transcript for a video URL, from subtitles or speech recognition"),
			mcp.WithString("url",
				mcp.Required(),
				mcp.Description("Video page URL"),
			),
			mcp.WithString("language",
				mcp.Description("Optional language hint, e.g. zh or en"),
			),
		),
		s.mcpTranscribeVideo,
	)

	s.mcpSSEServer = server.NewSSEServer(s.mcpServer,
		server.WithSSEEndpoint("/sse"),
		server.WithMessageEndpoint("/message"),
	)
	s.mcpStreamableServer = server.NewStreamableHTTPServer(s.mcpServer,
		server.WithEndpointPath("/mcp"),
	)
}

func (s *Service) mcpVideoInfo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	info, subs, err := s.fetcher.Probe(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("media extraction failed: %v", err)), nil
	}

	payload, err := json.MarshalIndent(map[string]any{
		"video_info": info,
		"subtitles":  subs,
	}, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (s *Service) mcpTranscribeVideo(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	url, err := req.RequireString("url")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	language := req.GetString("language", "")

	// Try subtitles first, matching the analyze endpoint's order.
	subs, err := s.fetcher.Subtitles(ctx, url)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("media extraction failed: %v", err)), nil
	}

	if track, ok := media.PickSubtitleTrack(subs, s.conf.GetPreferredLanguages()); ok {
		cues, err := s.fetcher.FetchSubtitle(ctx, track)
		if err == nil {
			lang := language
			if lang == "" {
				lang = track.Lang
			}
			result, err := s.formatSegments(cuesToSegments(cues), s.formatOptions("", lang), model.SourceSubtitle)
			if err == nil {
				return mcp.NewToolResultText(result.Transcript), nil
			}
		}
	}

	backend, opts := s.transcriber()
	if backend == nil {
		return mcp.NewToolResultError("no subtitles available and speech-to-text is not enabled"), nil
	}

	result, err := s.transcribeURL(ctx, backend, opts, url, language)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(result.Transcript), nil
}
