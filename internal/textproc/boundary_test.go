package textproc

import (
	"strings"
	"testing"
)

func mustProfile(t *testing.T, tag Tag) Profile {
	t.Helper()
	return ProfileFor(tag)
}

func TestSplitSentences_Lossless(t *testing.T) {
	tests := []struct {
		name string
		text string
		tag  Tag
	}{
		{"cjk_no_punctuation", "大家好今天我们来学习人工智能首先了解机器学习的基本概念", TagCJK},
		{"cjk_with_punctuation", "我们开始今天的课程吧。然后讲一个例子", TagCJK},
		{"english_plain", "hello everyone today we will learn about machine learning then we can build something so let's get started", TagLatin},
		{"english_punctuated", "Good morning everyone my friends. Welcome back to the channel", TagLatin},
		{"ellipsis_run", "wait for it... here it comes now", TagLatin},
		{"single_short", "hi", TagLatin},
		{"mixed_scripts", "我们用 Go 实现 then we test it together", TagMixed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cands := SplitSentences(tt.text, mustProfile(t, tt.tag), 4)
			if len(cands) == 0 {
				t.Fatal("SplitSentences() returned no candidates")
			}
			var b strings.Builder
			for _, c := range cands {
				b.WriteString(c.Text)
			}
			if got := b.String(); got != tt.text {
				t.Errorf("concatenated candidates = %q, want original %q", got, tt.text)
			}
		})
	}
}

func TestSplitSentences_CueBoundaries(t *testing.T) {
	profile := mustProfile(t, TagCJK)
	cands := SplitSentences("大家好今天我们来学习人工智能首先了解机器学习的基本概念", profile, 4)

	want := []string{
		"大家好今天我们来学习人工智能",
		"首先了解机器学习的基本概念",
	}
	if len(cands) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(cands), len(want), cands)
	}
	for i, w := range want {
		if cands[i].Text != w {
			t.Errorf("candidate[%d] = %q, want %q", i, cands[i].Text, w)
		}
	}
	// The suppressed boundary before 今天 is remembered for punctuation.
	if len(cands[0].softBreaks) != 1 {
		t.Errorf("candidate[0] soft breaks = %d, want 1", len(cands[0].softBreaks))
	}
}

func TestSplitSentences_EnglishCues(t *testing.T) {
	profile := mustProfile(t, TagLatin)
	text := "hello everyone today we will learn about machine learning then we can build something so let's get started"
	cands := SplitSentences(text, profile, 4)

	if len(cands) != 3 {
		t.Fatalf("got %d candidates, want 3: %+v", len(cands), cands)
	}
	if got := strings.TrimSpace(cands[1].Text); !strings.HasPrefix(got, "then ") {
		t.Errorf("candidate[1] = %q, want to start with cue word", got)
	}
	if got := strings.TrimSpace(cands[2].Text); !strings.HasPrefix(got, "so ") {
		t.Errorf("candidate[2] = %q, want to start with cue word", got)
	}
}

func TestSplitSentences_PunctuationWinsOverCue(t *testing.T) {
	profile := mustProfile(t, TagCJK)
	cands := SplitSentences("我们开始今天的课程吧。然后讲一个例子", profile, 4)

	want := []string{"我们开始", "今天的课程吧。", "然后讲一个例子"}
	if len(cands) != len(want) {
		t.Fatalf("got %d candidates, want %d: %+v", len(cands), len(want), cands)
	}
	for i, w := range want {
		if cands[i].Text != w {
			t.Errorf("candidate[%d] = %q, want %q", i, cands[i].Text, w)
		}
	}
}

func TestSplitSentences_MinimumLength(t *testing.T) {
	profile := mustProfile(t, TagLatin)
	text := "Good morning everyone my friends. Welcome back to the channel"
	cands := SplitSentences(text, profile, 4)

	for i, c := range cands {
		if i == len(cands)-1 {
			continue // trailing input may stay short
		}
		if n := profile.spanLength(c.Text); n < 4 {
			t.Errorf("candidate[%d] = %q has length %d, below minimum", i, c.Text, n)
		}
	}
}

func TestSplitSentences_ShortFragmentKept(t *testing.T) {
	cands := SplitSentences("hi", mustProfile(t, TagLatin), 4)
	if len(cands) != 1 || cands[0].Text != "hi" {
		t.Fatalf("candidates = %+v, want single %q", cands, "hi")
	}
}

func TestSplitSentences_NoCueInsideWord(t *testing.T) {
	// "so" inside "something" must not fire as a boundary cue.
	cands := SplitSentences("we built something great here today", mustProfile(t, TagLatin), 2)
	for _, c := range cands {
		if strings.HasPrefix(strings.TrimSpace(c.Text), "mething") {
			t.Fatalf("boundary fired inside a word: %+v", cands)
		}
	}
}
