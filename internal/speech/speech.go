// Package speech defines the transcription backend contract shared by the
// remote API and local CLI implementations.
package speech

import (
	"context"
	"math"
	"time"
)

// Options configures a transcription request.
type Options struct {
	Language         string  // "auto" to let the model detect language
	LanguageSet      bool    // true when Language should override defaults
	Translate        bool    // translate non-English speech into English
	TranslateSet     bool    // true when Translate should override defaults
	Threads          int     // number of threads used by a local backend (<=0 uses default)
	ThreadsSet       bool    // true when Threads should override defaults
	InitialPrompt    string  // optional priming prompt
	InitialPromptSet bool    // true when InitialPrompt should override defaults
	Temperature      float32 // sampling temperature
	TemperatureSet   bool    // true when Temperature should override defaults
}

// Segment represents a portion of transcribed text with timestamps.
type Segment struct {
	ID    int           `json:"id"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// Result holds the transcription outcome returned by a backend.
type Result struct {
	Text     string        `json:"text"`
	Language string        `json:"language"`
	Duration time.Duration `json:"duration"`
	Segments []Segment     `json:"segments"`
}

// Transcriber describes a component capable of converting an audio file
// into text.
type Transcriber interface {
	Close()
	TranscribeFile(ctx context.Context, path string, opts Options) (*Result, error)
}

// SecondsToDuration converts a backend's float seconds into a Duration.
func SecondsToDuration(seconds float64) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}
