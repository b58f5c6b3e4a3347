package conf

import (
	"strings"

	"github.com/whoamihappyhacking/vidscribe/internal/speech"
)

// Speech provider names.
const (
	ProviderOpenAI     = "openai"
	ProviderWhisperCLI = "whisper-cli"
)

// SpeechConfig controls the optional speech-to-text backend.
type SpeechConfig struct {
	Enabled               bool     `mapstructure:"enabled" json:"enabled"`
	Provider              string   `mapstructure:"provider" json:"provider"`
	Model                 string   `mapstructure:"model" json:"model"`
	Language              string   `mapstructure:"language" json:"language"`
	Translate             *bool    `mapstructure:"translate" json:"translate,omitempty"`
	Threads               int      `mapstructure:"threads" json:"threads,omitempty"`
	InitialPrompt         string   `mapstructure:"initial_prompt" json:"initial_prompt,omitempty"`
	Temperature           *float64 `mapstructure:"temperature" json:"temperature,omitempty"`
	APIKey                string   `mapstructure:"api_key" json:"api_key,omitempty"`
	BaseURL               string   `mapstructure:"base_url" json:"base_url,omitempty"`
	Binary                string   `mapstructure:"binary" json:"binary,omitempty"`
	Device                string   `mapstructure:"device" json:"device,omitempty"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" json:"request_timeout_seconds"`
}

// Normalize fills provider defaults and trims whitespace-only fields.
func (c *SpeechConfig) Normalize() {
	if c == nil {
		return
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	c.Model = strings.TrimSpace(c.Model)
	c.Language = strings.TrimSpace(c.Language)
	c.BaseURL = strings.TrimSpace(c.BaseURL)
	c.Binary = strings.TrimSpace(c.Binary)
	c.Device = strings.TrimSpace(c.Device)
}

// ToOptions converts the speech config into runtime options for a
// transcription backend.
func (c *SpeechConfig) ToOptions() speech.Options {
	var opts speech.Options

	if c == nil {
		return opts
	}

	if c.Language != "" {
		opts.Language = c.Language
		opts.LanguageSet = true
	}
	if c.Translate != nil {
		opts.Translate = *c.Translate
		opts.TranslateSet = true
	}
	if c.Threads > 0 {
		opts.Threads = c.Threads
		opts.ThreadsSet = true
	}
	if c.InitialPrompt != "" {
		opts.InitialPrompt = c.InitialPrompt
		opts.InitialPromptSet = true
	}
	if c.Temperature != nil {
		opts.Temperature = float32(*c.Temperature)
		opts.TemperatureSet = true
	}

	return opts
}
