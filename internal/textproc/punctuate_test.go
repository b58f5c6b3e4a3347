package textproc

import "testing"

func TestPunctuate(t *testing.T) {
	tests := []struct {
		name string
		text string
		tag  Tag
		want string
	}{
		{"cjk_default_period", "首先了解机器学习的基本概念", TagCJK, "首先了解机器学习的基本概念。"},
		{"cjk_question_particle", "你吃饭了吗", TagCJK, "你吃饭了吗？"},
		{"cjk_question_pronoun", "这到底是什么东西", TagCJK, "这到底是什么东西？"},
		{"cjk_exclamation", "太好了啊", TagCJK, "太好了啊！"},
		{"latin_default_period", "hi", TagLatin, "hi."},
		{"latin_question_leading", "what are we doing here", TagLatin, "what are we doing here?"},
		{"latin_question_auxiliary", "do you like it", TagLatin, "do you like it?"},
		{"latin_exclamation", "that was awesome", TagLatin, "that was awesome!"},
		{"trailing_space_trimmed", "hello there ", TagLatin, "hello there."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Punctuate(tt.text, ProfileFor(tt.tag)); got != tt.want {
				t.Errorf("Punctuate(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestPunctuate_Idempotent(t *testing.T) {
	tests := []struct {
		text string
		tag  Tag
	}{
		{"你好。", TagCJK},
		{"你吃饭了吗？", TagCJK},
		{"太好了啊！", TagCJK},
		{"hi.", TagLatin},
		{"Really?", TagLatin},
		{"Wow!", TagLatin},
		{"wait for it...", TagLatin},
	}

	for _, tt := range tests {
		profile := ProfileFor(tt.tag)
		once := Punctuate(tt.text, profile)
		if once != tt.text {
			t.Errorf("Punctuate(%q) = %q, want unchanged", tt.text, once)
		}
		if twice := Punctuate(once, profile); twice != once {
			t.Errorf("Punctuate applied twice = %q, want %q", twice, once)
		}
	}
}

func TestPunctuate_EmptyInput(t *testing.T) {
	if got := Punctuate("", ProfileFor(TagLatin)); got != "" {
		t.Errorf("Punctuate(%q) = %q, want empty", "", got)
	}
	if got := Punctuate("   ", ProfileFor(TagLatin)); got != "   " {
		t.Errorf("Punctuate(whitespace) = %q, want unchanged", got)
	}
}

func TestApplySoftBreaks(t *testing.T) {
	cjk := ProfileFor(TagCJK)
	c := Candidate{Text: "大家好今天我们来学习人工智能", softBreaks: []int{len("大家好")}}
	if got := applySoftBreaks(c, cjk); got != "大家好，今天我们来学习人工智能" {
		t.Errorf("applySoftBreaks() = %q", got)
	}

	latin := ProfileFor(TagLatin)
	text := "nice work then we continue"
	c = Candidate{Text: text, softBreaks: []int{len("nice work ")}}
	if got := applySoftBreaks(c, latin); got != "nice work, then we continue" {
		t.Errorf("applySoftBreaks() = %q", got)
	}

	// An existing pause mark is never doubled.
	c = Candidate{Text: "nice work, then we continue", softBreaks: []int{len("nice work, ")}}
	if got := applySoftBreaks(c, latin); got != "nice work, then we continue" {
		t.Errorf("applySoftBreaks() doubled a comma: %q", got)
	}
}
