package textproc

import (
	"strings"
	"time"
	"unicode"
)

// DefaultMinSentenceLength guards against over-splitting on short
// connectives: CJK runes or Latin words, depending on profile.
const DefaultMinSentenceLength = 4

// Labels recorded in Document.ProcessingApplied. A missing label means the
// step was skipped; no transformation happens silently.
const (
	StepPunctuation = "punctuation added"
	StepTimestamps  = "timestamps added"
	StepTitle       = "title added"
)

// Options configures one processing invocation. There is no process-wide
// state; every call carries its own options.
type Options struct {
	// MinSentenceLength is the minimum span length before a cue word may
	// open a new sentence. Zero or negative selects the default.
	MinSentenceLength int

	Punctuate  bool
	Timestamps bool
	TitleLine  bool

	// Title is prepended to the transcript view when TitleLine is set.
	Title string

	// Language is an optional declared hint (e.g. "zh", "en"). Empty or
	// "auto" enables script detection.
	Language string
}

// DefaultOptions enables every formatting step.
func DefaultOptions() Options {
	return Options{
		MinSentenceLength: DefaultMinSentenceLength,
		Punctuate:         true,
		Timestamps:        true,
		TitleLine:         true,
	}
}

// Sentence is a fully processed sentence with punctuation applied and the
// start time of its earliest contributing segment.
type Sentence struct {
	Text      string
	Timestamp time.Duration
}

// Document is the immutable result of one processing run.
type Document struct {
	Title           string
	RawText         string
	FormattedText   string
	TimestampedText string
	Transcript      string

	Language      Tag
	SentenceCount int
	WordCount     int

	Sentences         []Sentence
	ProcessingApplied []string
}

// Processor applies the full pipeline: language classification, boundary
// detection, punctuation synthesis, timestamp alignment, and assembly.
type Processor struct {
	opts Options
}

// New returns a processor for the given options.
func New(opts Options) *Processor {
	if opts.MinSentenceLength <= 0 {
		opts.MinSentenceLength = DefaultMinSentenceLength
	}
	return &Processor{opts: opts}
}

type segRange struct {
	start, end int // byte offsets into the raw concatenated text
	index      int // index into the caller's segment slice
}

// Process transforms the ordered segment sequence into a document. Either a
// complete, invariant-satisfying document is produced or an error; there is
// no partial output.
func (p *Processor) Process(segments []Segment) (*Document, error) {
	if err := validateSegments(segments); err != nil {
		return nil, err
	}

	type piece struct {
		index int
		text  string
	}
	pieces := make([]piece, 0, len(segments))
	for i, seg := range segments {
		t := strings.TrimSpace(seg.Text)
		if t == "" {
			continue
		}
		pieces = append(pieces, piece{index: i, text: t})
	}
	if len(pieces) == 0 {
		return nil, ErrEmptyInput
	}

	profile, ok := ProfileForLanguage(p.opts.Language)
	if !ok {
		probe := make([]string, len(pieces))
		for i, pc := range pieces {
			probe[i] = pc.text
		}
		var err error
		profile, err = DetectProfile(strings.Join(probe, " "))
		if err != nil {
			return nil, err
		}
	}

	joiner := profile.joiner()
	var b strings.Builder
	ranges := make([]segRange, 0, len(pieces))
	for k, pc := range pieces {
		if k > 0 {
			b.WriteString(joiner)
		}
		start := b.Len()
		b.WriteString(pc.text)
		ranges = append(ranges, segRange{start: start, end: b.Len(), index: pc.index})
	}
	raw := b.String()

	spans := splitSpans(raw, profile, p.opts.MinSentenceLength)

	sentences := make([]Sentence, 0, len(spans))
	for _, sp := range spans {
		cand := candidateOf(raw, sp)
		for _, rg := range ranges {
			if rg.start < sp.end && rg.end > sp.start {
				cand.SegmentIndices = append(cand.SegmentIndices, rg.index)
			}
		}

		text := cand.Text
		if p.opts.Punctuate {
			text = applySoftBreaks(cand, profile)
		}
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		if p.opts.Punctuate {
			text = Punctuate(text, profile)
		}

		var ts time.Duration
		if len(cand.SegmentIndices) > 0 {
			ts = segments[cand.SegmentIndices[0]].Start
		}
		sentences = append(sentences, Sentence{Text: text, Timestamp: ts})
	}

	doc := &Document{
		RawText:       raw,
		Language:      profile.Tag,
		SentenceCount: len(sentences),
		WordCount:     wordCount(raw, profile),
		Sentences:     sentences,
	}

	applied := make([]string, 0, 3)
	if p.opts.Punctuate {
		applied = append(applied, StepPunctuation)
	}

	lines := make([]string, len(sentences))
	for i, s := range sentences {
		lines[i] = s.Text
	}
	doc.FormattedText = strings.Join(lines, "\n")

	if p.opts.Timestamps {
		stamped := make([]string, len(sentences))
		for i, s := range sentences {
			stamped[i] = FormatTimestamp(s.Timestamp) + " " + s.Text
		}
		doc.TimestampedText = strings.Join(stamped, "\n")
		applied = append(applied, StepTimestamps)
	}

	transcript := doc.TimestampedText
	if transcript == "" {
		transcript = doc.FormattedText
	}
	if p.opts.TitleLine && strings.TrimSpace(p.opts.Title) != "" {
		doc.Title = p.opts.Title
		transcript = profile.titleLine(p.opts.Title) + "\n" + transcript
		applied = append(applied, StepTitle)
	}
	doc.Transcript = transcript
	doc.ProcessingApplied = applied

	return doc, nil
}

// wordCount is computed from the raw text alone, so it stays stable when
// segmentation decisions change: non-space runes for CJK, whitespace-
// delimited words otherwise.
func wordCount(raw string, profile Profile) int {
	if profile.Tag == TagCJK {
		n := 0
		for _, r := range raw {
			if !unicode.IsSpace(r) {
				n++
			}
		}
		return n
	}
	return len(strings.Fields(raw))
}
