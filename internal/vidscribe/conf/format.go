package conf

import "github.com/whoamihappyhacking/vidscribe/internal/textproc"

// FormatConfig controls default transcript formatting behaviour. Boolean
// fields are pointers so an absent setting keeps the engine default
// (enabled) while an explicit false disables the step.
type FormatConfig struct {
	MinSentenceLength int    `mapstructure:"min_sentence_length" json:"min_sentence_length"`
	Punctuate         *bool  `mapstructure:"punctuate" json:"punctuate,omitempty"`
	Timestamps        *bool  `mapstructure:"timestamps" json:"timestamps,omitempty"`
	TitleLine         *bool  `mapstructure:"title_line" json:"title_line,omitempty"`
	Language          string `mapstructure:"language" json:"language,omitempty"`
}

// ToOptions converts the format config into engine options.
func (c *FormatConfig) ToOptions() textproc.Options {
	opts := textproc.DefaultOptions()

	if c == nil {
		return opts
	}

	if c.MinSentenceLength > 0 {
		opts.MinSentenceLength = c.MinSentenceLength
	}
	if c.Punctuate != nil {
		opts.Punctuate = *c.Punctuate
	}
	if c.Timestamps != nil {
		opts.Timestamps = *c.Timestamps
	}
	if c.TitleLine != nil {
		opts.TitleLine = *c.TitleLine
	}
	if c.Language != "" {
		opts.Language = c.Language
	}

	return opts
}
