package textproc

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestProcess_CJKScenario(t *testing.T) {
	segments := []Segment{
		{Text: "大家好今天我们来学习人工智能", Start: 0, End: 5 * time.Second},
		{Text: "首先了解机器学习的基本概念", Start: 5 * time.Second, End: 10 * time.Second},
	}

	doc, err := New(DefaultOptions()).Process(segments)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}

	if doc.Language != TagCJK {
		t.Errorf("Language = %v, want CJK", doc.Language)
	}
	if doc.SentenceCount != 2 {
		t.Fatalf("SentenceCount = %d, want 2", doc.SentenceCount)
	}

	want := []Sentence{
		{Text: "大家好，今天我们来学习人工智能。", Timestamp: 0},
		{Text: "首先了解机器学习的基本概念。", Timestamp: 5 * time.Second},
	}
	for i, w := range want {
		if doc.Sentences[i] != w {
			t.Errorf("sentence[%d] = %+v, want %+v", i, doc.Sentences[i], w)
		}
	}

	wantStamped := "[00:00:00] 大家好，今天我们来学习人工智能。\n[00:00:05] 首先了解机器学习的基本概念。"
	if doc.TimestampedText != wantStamped {
		t.Errorf("TimestampedText = %q, want %q", doc.TimestampedText, wantStamped)
	}

	if doc.RawText != "大家好今天我们来学习人工智能首先了解机器学习的基本概念" {
		t.Errorf("RawText = %q", doc.RawText)
	}
	if doc.WordCount != 27 {
		t.Errorf("WordCount = %d, want 27", doc.WordCount)
	}
}

func TestProcess_ShortFragment(t *testing.T) {
	doc, err := New(DefaultOptions()).Process([]Segment{
		{Text: "hi", Start: 0, End: time.Second},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if doc.SentenceCount != 1 {
		t.Fatalf("SentenceCount = %d, want 1", doc.SentenceCount)
	}
	if doc.Sentences[0].Text != "hi." {
		t.Errorf("sentence = %q, want %q", doc.Sentences[0].Text, "hi.")
	}
	if doc.WordCount != 1 {
		t.Errorf("WordCount = %d, want 1", doc.WordCount)
	}
}

func TestProcess_EmptyInput(t *testing.T) {
	cases := [][]Segment{
		nil,
		{},
		{{Text: "   ", Start: 0, End: time.Second}},
	}
	for _, segments := range cases {
		if _, err := New(DefaultOptions()).Process(segments); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Process(%+v) error = %v, want ErrEmptyInput", segments, err)
		}
	}
}

func TestProcess_MalformedSegment(t *testing.T) {
	tests := []struct {
		name string
		seg  Segment
	}{
		{"end_before_start", Segment{Text: "hello", Start: 5 * time.Second, End: 2 * time.Second}},
		{"negative_start", Segment{Text: "hello", Start: -time.Second, End: time.Second}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(DefaultOptions()).Process([]Segment{tt.seg})
			var segErr *SegmentError
			if !errors.As(err, &segErr) {
				t.Fatalf("Process() error = %v, want *SegmentError", err)
			}
			if segErr.Index != 0 {
				t.Errorf("SegmentError.Index = %d, want 0", segErr.Index)
			}
		})
	}
}

func TestProcess_MonotonicTimestamps(t *testing.T) {
	segments := []Segment{
		{Text: "good morning everyone and welcome back to the channel", Start: 0, End: 4 * time.Second},
		{Text: "today we will look at transcription pipelines", Start: 4 * time.Second, End: 9 * time.Second},
		{Text: "then we can build one ourselves", Start: 9 * time.Second, End: 13 * time.Second},
		{Text: "so let's get started right away", Start: 13 * time.Second, End: 16 * time.Second},
	}

	doc, err := New(DefaultOptions()).Process(segments)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if doc.SentenceCount < 2 {
		t.Fatalf("SentenceCount = %d, want several", doc.SentenceCount)
	}
	for i := 1; i < len(doc.Sentences); i++ {
		if doc.Sentences[i].Timestamp < doc.Sentences[i-1].Timestamp {
			t.Errorf("timestamps not monotonic at %d: %v < %v",
				i, doc.Sentences[i].Timestamp, doc.Sentences[i-1].Timestamp)
		}
	}
}

func TestProcess_ProcessingApplied(t *testing.T) {
	segments := []Segment{
		{Text: "hello everyone welcome back", Start: 0, End: 3 * time.Second},
	}

	t.Run("all_enabled_with_title", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Title = "My Video"
		doc, err := New(opts).Process(segments)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		want := []string{StepPunctuation, StepTimestamps, StepTitle}
		if len(doc.ProcessingApplied) != len(want) {
			t.Fatalf("ProcessingApplied = %v, want %v", doc.ProcessingApplied, want)
		}
		for i, w := range want {
			if doc.ProcessingApplied[i] != w {
				t.Errorf("ProcessingApplied[%d] = %q, want %q", i, doc.ProcessingApplied[i], w)
			}
		}
		if !strings.HasPrefix(doc.Transcript, `"My Video"`+"\n") {
			t.Errorf("Transcript = %q, want title line first", doc.Transcript)
		}
	})

	t.Run("punctuation_disabled", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Punctuate = false
		doc, err := New(opts).Process(segments)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		for _, step := range doc.ProcessingApplied {
			if step == StepPunctuation {
				t.Error("ProcessingApplied records punctuation although disabled")
			}
		}
		if strings.HasSuffix(doc.Sentences[0].Text, ".") {
			t.Errorf("sentence = %q, want no synthesized punctuation", doc.Sentences[0].Text)
		}
	})

	t.Run("timestamps_disabled", func(t *testing.T) {
		opts := DefaultOptions()
		opts.Timestamps = false
		doc, err := New(opts).Process(segments)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		if doc.TimestampedText != "" {
			t.Errorf("TimestampedText = %q, want empty", doc.TimestampedText)
		}
		if doc.Transcript != doc.FormattedText {
			t.Errorf("Transcript = %q, want formatted fallback", doc.Transcript)
		}
	})

	t.Run("title_suppressed", func(t *testing.T) {
		opts := DefaultOptions()
		opts.TitleLine = false
		opts.Title = "ignored"
		doc, err := New(opts).Process(segments)
		if err != nil {
			t.Fatalf("Process() error = %v", err)
		}
		for _, step := range doc.ProcessingApplied {
			if step == StepTitle {
				t.Error("ProcessingApplied records title although disabled")
			}
		}
	})
}

func TestProcess_LanguageHint(t *testing.T) {
	segments := []Segment{
		{Text: "ok ok ok", Start: 0, End: time.Second},
	}
	opts := DefaultOptions()
	opts.Language = "zh"
	doc, err := New(opts).Process(segments)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if doc.Language != TagCJK {
		t.Errorf("Language = %v, want CJK from hint", doc.Language)
	}
}

func TestProcess_CJKTitleLine(t *testing.T) {
	opts := DefaultOptions()
	opts.Title = "机器学习入门"
	doc, err := New(opts).Process([]Segment{
		{Text: "大家好今天我们来学习人工智能", Start: 0, End: 5 * time.Second},
	})
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	if !strings.HasPrefix(doc.Transcript, "《机器学习入门》\n") {
		t.Errorf("Transcript = %q, want CJK title line", doc.Transcript)
	}
}
