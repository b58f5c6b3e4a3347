package textproc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Tag identifies the dominant script of a transcription job.
type Tag string

const (
	TagCJK   Tag = "CJK"
	TagLatin Tag = "LATIN"
	TagMixed Tag = "MIXED"
)

// majorityThreshold is the script proportion above which a single profile
// wins; anything else falls back to MIXED with combined cue sets.
const majorityThreshold = 0.5

// cueSet holds the lexical tables for one profile. Adding a language is a
// data change here, not a code change in the segmentation logic.
type cueSet struct {
	boundary      []string // connective / discourse words that open a new sentence
	question      []string // trailing interrogative particles
	interrogative []string // interrogative pronouns and leading auxiliaries
	exclaim       []string // trailing intensity markers
}

var cueTables = buildCueTables()

func buildCueTables() map[Tag]*cueSet {
	tables := map[Tag]*cueSet{
		TagCJK: {
			boundary: []string{
				"然后", "接着", "后来", "于是", "所以", "因此", "但是", "不过",
				"而且", "另外", "首先", "其次", "再次", "最后", "总之", "此外",
				"今天", "现在", "因为", "如果",
			},
			question:      []string{"吗", "呢"},
			interrogative: []string{"什么", "怎么", "为什么", "哪里", "哪儿", "多少"},
			exclaim:       []string{"啊", "哇", "呀", "啦"},
		},
		TagLatin: {
			boundary: []string{
				"then", "next", "so", "therefore", "but", "however", "also",
				"first", "second", "finally", "because", "although",
				"meanwhile", "anyway",
			},
			interrogative: []string{
				"what", "why", "how", "where", "who", "when", "which",
				"do", "does", "did", "is", "are", "can", "could", "would", "should",
			},
			exclaim: []string{"wow", "amazing", "incredible", "awesome"},
		},
	}

	mixed := &cueSet{}
	for _, tag := range []Tag{TagCJK, TagLatin} {
		src := tables[tag]
		mixed.boundary = append(mixed.boundary, src.boundary...)
		mixed.question = append(mixed.question, src.question...)
		mixed.interrogative = append(mixed.interrogative, src.interrogative...)
		mixed.exclaim = append(mixed.exclaim, src.exclaim...)
	}
	tables[TagMixed] = mixed
	return tables
}

// Profile is the active segmentation rule set selected for one input's
// dominant script. Computed once per job and immutable afterward.
type Profile struct {
	Tag  Tag
	cues *cueSet
}

// ProfileFor returns the profile for a known tag.
func ProfileFor(tag Tag) Profile {
	cues, ok := cueTables[tag]
	if !ok {
		cues = cueTables[TagMixed]
	}
	return Profile{Tag: tag, cues: cues}
}

// DetectProfile classifies text by counting CJK versus Latin runes.
// Empty or whitespace-only input yields ErrEmptyInput; callers must not
// run boundary detection in that case.
func DetectProfile(text string) (Profile, error) {
	if strings.TrimSpace(text) == "" {
		return Profile{}, ErrEmptyInput
	}

	var cjk, latin int
	for _, r := range text {
		switch {
		case isCJKRune(r):
			cjk++
		case unicode.Is(unicode.Latin, r):
			latin++
		}
	}

	total := cjk + latin
	switch {
	case total == 0:
		return ProfileFor(TagMixed), nil
	case float64(cjk)/float64(total) > majorityThreshold:
		return ProfileFor(TagCJK), nil
	case float64(latin)/float64(total) > majorityThreshold:
		return ProfileFor(TagLatin), nil
	}
	return ProfileFor(TagMixed), nil
}

// ProfileForLanguage maps a declared language hint (e.g. "zh", "en") to a
// profile, skipping auto-detection. Returns false when the hint is absent
// or asks for detection.
func ProfileForLanguage(lang string) (Profile, bool) {
	l := strings.ToLower(strings.TrimSpace(lang))
	switch {
	case l == "" || l == "auto":
		return Profile{}, false
	case l == "cjk" || l == "mixed" || l == "latin":
		return ProfileFor(Tag(strings.ToUpper(l))), true
	case strings.HasPrefix(l, "zh") || strings.HasPrefix(l, "ja") ||
		strings.HasPrefix(l, "ko") || strings.HasPrefix(l, "yue"):
		return ProfileFor(TagCJK), true
	}
	return ProfileFor(TagLatin), true
}

func isCJKRune(r rune) bool {
	if unicode.Is(unicode.Han, r) {
		return true
	}
	// Kana and Hangul share the CJK segmentation rules.
	return (r >= 0x3040 && r <= 0x30FF) || (r >= 0xAC00 && r <= 0xD7AF)
}

func (p Profile) joiner() string {
	if p.Tag == TagCJK {
		return ""
	}
	return " "
}

// spanLength measures a span in the profile's natural units: runes for CJK,
// whitespace-delimited words otherwise.
func (p Profile) spanLength(s string) int {
	if p.Tag == TagCJK {
		n := 0
		for _, r := range s {
			if !unicode.IsSpace(r) {
				n++
			}
		}
		return n
	}
	return len(strings.Fields(s))
}

func (p Profile) marks() (period, question, exclaim string) {
	if p.Tag == TagCJK {
		return "。", "？", "！"
	}
	return ".", "?", "!"
}

func (p Profile) comma() string {
	if p.Tag == TagCJK {
		return "，"
	}
	return ","
}

func (p Profile) titleLine(title string) string {
	if p.Tag == TagCJK {
		return "《" + title + "》"
	}
	return `"` + title + `"`
}

// cueAt reports the boundary cue word starting at byte offset i, if any.
// Latin cues match case-insensitively and only on word boundaries.
func (p Profile) cueAt(s string, i int) (string, bool) {
	for _, cue := range p.cues.boundary {
		if i+len(cue) > len(s) {
			continue
		}
		if isLatinCue(cue) {
			if !strings.EqualFold(s[i:i+len(cue)], cue) {
				continue
			}
			if !latinWordBoundary(s, i, len(cue)) {
				continue
			}
		} else if s[i:i+len(cue)] != cue {
			continue
		}
		return cue, true
	}
	return "", false
}

func isLatinCue(cue string) bool {
	r, _ := utf8.DecodeRuneInString(cue)
	return r < utf8.RuneSelf
}

func latinWordBoundary(s string, i, n int) bool {
	prev, _ := utf8.DecodeLastRuneInString(s[:i])
	if !unicode.IsSpace(prev) {
		return false
	}
	rest := s[i+n:]
	if rest == "" {
		return true
	}
	next, _ := utf8.DecodeRuneInString(rest)
	return unicode.IsSpace(next) || isTerminalRune(next)
}
