package media

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Cue is one timed line from a subtitle document.
type Cue struct {
	Text  string
	Start time.Duration
	End   time.Duration
}

// bilibiliSubtitle is the player subtitle document used by bilibili.
type bilibiliSubtitle struct {
	Body []struct {
		From    float64 `json:"from"`
		To      float64 `json:"to"`
		Content string  `json:"content"`
	} `json:"body"`
}

// json3Subtitle is the youtube "json3" caption document.
type json3Subtitle struct {
	Events []struct {
		StartMs    int64 `json:"tStartMs"`
		DurationMs int64 `json:"dDurationMs"`
		Segs       []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// ParseSubtitle decodes a subtitle document into cues. The bilibili body
// format and the youtube json3 format are recognised.
func ParseSubtitle(raw []byte) ([]Cue, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("empty subtitle document")
	}

	var bili bilibiliSubtitle
	if err := json.Unmarshal(raw, &bili); err == nil && len(bili.Body) > 0 {
		cues := make([]Cue, 0, len(bili.Body))
		for _, line := range bili.Body {
			text := strings.TrimSpace(line.Content)
			if text == "" {
				continue
			}
			cues = append(cues, Cue{
				Text:  text,
				Start: secondsToDuration(line.From),
				End:   secondsToDuration(line.To),
			})
		}
		if len(cues) > 0 {
			return cues, nil
		}
	}

	var j3 json3Subtitle
	if err := json.Unmarshal(raw, &j3); err == nil && len(j3.Events) > 0 {
		cues := make([]Cue, 0, len(j3.Events))
		for _, ev := range j3.Events {
			var b strings.Builder
			for _, seg := range ev.Segs {
				b.WriteString(seg.UTF8)
			}
			text := strings.TrimSpace(b.String())
			if text == "" {
				continue
			}
			start := time.Duration(ev.StartMs) * time.Millisecond
			cues = append(cues, Cue{
				Text:  text,
				Start: start,
				End:   start + time.Duration(ev.DurationMs)*time.Millisecond,
			})
		}
		if len(cues) > 0 {
			return cues, nil
		}
	}

	return nil, fmt.Errorf("unrecognised subtitle format")
}

func secondsToDuration(seconds float64) time.Duration {
	if seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
