package textproc

import (
	"unicode/utf8"
)

// Candidate is a provisional sentence span produced by boundary detection,
// prior to punctuation. Text is an exact substring of the raw concatenated
// input; SegmentIndices reference the source segments that contributed to
// it, in chronological order.
type Candidate struct {
	Text           string
	SegmentIndices []int

	// softBreaks are byte offsets within Text where a cue boundary was
	// suppressed by the minimum-length rule. Punctuation synthesis turns
	// them into commas.
	softBreaks []int
}

type span struct {
	start, end int   // byte offsets into the raw text
	soft       []int // absolute byte offsets of suppressed cue boundaries
}

// SplitSentences partitions raw into an ordered sequence of candidate spans
// covering the entire input. Concatenating the candidate texts reproduces
// raw exactly; no characters are dropped, duplicated, or reordered.
func SplitSentences(raw string, profile Profile, minLen int) []Candidate {
	if minLen <= 0 {
		minLen = DefaultMinSentenceLength
	}
	spans := splitSpans(raw, profile, minLen)
	out := make([]Candidate, 0, len(spans))
	for _, sp := range spans {
		out = append(out, candidateOf(raw, sp))
	}
	return out
}

func candidateOf(raw string, sp span) Candidate {
	c := Candidate{Text: raw[sp.start:sp.end]}
	for _, off := range sp.soft {
		c.softBreaks = append(c.softBreaks, off-sp.start)
	}
	return c
}

// splitSpans scans raw left to right, proposing a boundary at existing
// terminal punctuation, before a recognized cue word once the accumulated
// span meets the minimum length, and at end of input. Boundaries that would
// leave a span below the minimum merge forward into the next span; cue
// merges are remembered as soft breaks.
func splitSpans(raw string, profile Profile, minLen int) []span {
	if raw == "" {
		return nil
	}

	var spans []span
	cur := span{start: 0}

	i := 0
	for i < len(raw) {
		r, size := utf8.DecodeRuneInString(raw[i:])

		if isTerminalRune(r) {
			// Existing punctuation wins over a cue word at the same
			// position. Consume the whole punctuation run so "..." or
			// "！？" stays in one piece.
			j := i + size
			for j < len(raw) {
				nr, ns := utf8.DecodeRuneInString(raw[j:])
				if !isTerminalRune(nr) {
					break
				}
				j += ns
			}
			if profile.spanLength(raw[cur.start:j]) >= minLen {
				cur.end = j
				spans = append(spans, cur)
				cur = span{start: j}
			}
			i = j
			continue
		}

		if cue, ok := profile.cueAt(raw, i); ok && i > cur.start {
			if profile.spanLength(raw[cur.start:i]) >= minLen {
				cur.end = i
				spans = append(spans, cur)
				cur = span{start: i}
			} else {
				cur.soft = append(cur.soft, i)
			}
			i += len(cue)
			continue
		}

		i += size
	}

	if cur.start < len(raw) {
		cur.end = len(raw)
		spans = append(spans, cur)
	}
	return spans
}

func isTerminalRune(r rune) bool {
	switch r {
	case '。', '！', '？', '.', '!', '?', '…':
		return true
	}
	return false
}
