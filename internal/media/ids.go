package media

import (
	"regexp"
	"strings"
)

var (
	bvPattern      = regexp.MustCompile(`(?i)(BV[0-9A-Za-z]{10})`)
	avPattern      = regexp.MustCompile(`(?i)\b(av\d+)\b`)
	ytWatchPattern = regexp.MustCompile(`[?&]v=([0-9A-Za-z_-]{11})`)
	ytShortPattern = regexp.MustCompile(`(?:youtu\.be/|/shorts/|/embed/)([0-9A-Za-z_-]{11})`)
)

// ExtractVideoID pulls a platform video id out of a URL or bare id.
// Supports bilibili BV/av ids (including b23.tv short links after
// resolution) and the common youtube URL shapes.
func ExtractVideoID(url string) (string, bool) {
	url = strings.TrimSpace(url)
	if url == "" {
		return "", false
	}

	if m := bvPattern.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := avPattern.FindStringSubmatch(url); m != nil {
		return strings.ToLower(m[1]), true
	}
	if m := ytWatchPattern.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	if m := ytShortPattern.FindStringSubmatch(url); m != nil {
		return m[1], true
	}
	return "", false
}
