package textproc

import (
	"strings"
	"unicode/utf8"
)

// Punctuate appends a terminal punctuation mark to text when none is
// present, choosing the mark from trailing lexical cues. Already-terminated
// text is returned unchanged, so the function is idempotent. The choice is
// a pure function of the input text and profile.
func Punctuate(text string, profile Profile) string {
	trimmed := strings.TrimRightFunc(text, isTrimmableSpace)
	if trimmed == "" {
		return text
	}
	last, _ := utf8.DecodeLastRuneInString(trimmed)
	if isTerminalRune(last) {
		return text
	}

	period, question, exclaim := profile.marks()
	switch {
	case profile.isQuestion(trimmed):
		return trimmed + question
	case profile.isExclamation(trimmed):
		return trimmed + exclaim
	}
	return trimmed + period
}

func (p Profile) isQuestion(text string) bool {
	for _, particle := range p.cues.question {
		if strings.HasSuffix(text, particle) {
			return true
		}
	}
	for _, w := range p.cues.interrogative {
		if isLatinCue(w) {
			if leadingWordIs(text, w) {
				return true
			}
		} else if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

func (p Profile) isExclamation(text string) bool {
	for _, marker := range p.cues.exclaim {
		if isLatinCue(marker) {
			if trailingWordIs(text, marker) {
				return true
			}
		} else if strings.HasSuffix(text, marker) {
			return true
		}
	}
	return false
}

func leadingWordIs(text, word string) bool {
	fields := strings.Fields(text)
	return len(fields) > 0 && strings.EqualFold(fields[0], word)
}

func trailingWordIs(text, word string) bool {
	fields := strings.Fields(text)
	return len(fields) > 0 && strings.EqualFold(fields[len(fields)-1], word)
}

func isTrimmableSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '　'
}

// applySoftBreaks inserts a pause comma at every boundary that was merged
// forward by the minimum-length rule. Insertion only ever adds characters;
// stripping inserted punctuation recovers the candidate text exactly.
func applySoftBreaks(c Candidate, profile Profile) string {
	if len(c.softBreaks) == 0 {
		return c.Text
	}
	text := c.Text
	comma := profile.comma()
	for k := len(c.softBreaks) - 1; k >= 0; k-- {
		at := c.softBreaks[k]
		if at <= 0 || at >= len(text) {
			continue
		}
		// For space-joined scripts the comma binds to the preceding word.
		if text[at-1] == ' ' {
			at--
		}
		prev, _ := utf8.DecodeLastRuneInString(text[:at])
		if prev == '，' || prev == ',' || prev == '、' {
			continue
		}
		text = text[:at] + comma + text[at:]
	}
	return text
}
