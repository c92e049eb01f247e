package localsearch

import (
	"strings"
	"testing"
)

// spacedContent places word at each position in a field of n spaces.
func spacedContent(n int, word string, positions ...int) string {
	runes := []rune(strings.Repeat(" ", n))
	for _, p := range positions {
		copy(runes[p:], []rune(word))
	}
	return string(runes)
}

func TestSelectSnippets_SeparateWindows(t *testing.T) {
	content := spacedContent(400, "hello", 10, 210)
	hits, _ := Locate([]string{"hello"}, content, false, false)

	slices := SelectSnippets(400, hits, 2)

	if len(slices) != 2 {
		t.Fatalf("len(slices) = %d, want 2", len(slices))
	}
	if slices[0].Start != 0 || slices[0].End != 110 {
		t.Errorf("first window = [%d, %d), want [0, 110)", slices[0].Start, slices[0].End)
	}
	if slices[1].Start != 190 || slices[1].End != 310 {
		t.Errorf("second window = [%d, %d), want [190, 310)", slices[1].Start, slices[1].End)
	}
	for i, s := range slices {
		if s.End-s.Start > SnippetLead+SnippetTrail {
			t.Errorf("window %d spans %d runes", i, s.End-s.Start)
		}
		if len(s.Hits) != 1 {
			t.Errorf("window %d has %d spans, want 1", i, len(s.Hits))
		}
	}
}

func TestSelectSnippets_TopN(t *testing.T) {
	content := spacedContent(400, "hello", 10, 210)
	hits, _ := Locate([]string{"hello"}, content, false, false)

	tests := []struct {
		topN int
		want int
	}{
		{topN: 0, want: 0},
		{topN: 1, want: 1},
		{topN: 5, want: 2},
		{topN: -1, want: 2},
	}
	for _, tt := range tests {
		if got := len(SelectSnippets(400, hits, tt.topN)); got != tt.want {
			t.Errorf("topN %d: len = %d, want %d", tt.topN, got, tt.want)
		}
	}

	if one := SelectSnippets(400, hits, 1); one[0].Start != 0 {
		t.Errorf("topN 1 kept window at %d, want the earliest", one[0].Start)
	}
}

func TestSelectSnippets_PrefersMoreDistinctWords(t *testing.T) {
	content := []rune(spacedContent(500, "go", 10, 20, 30))
	copy(content[300:], []rune("go rust"))
	hits, _ := Locate([]string{"go", "rust"}, string(content), false, false)

	slices := SelectSnippets(len(content), hits, -1)

	if len(slices) != 2 {
		t.Fatalf("len(slices) = %d, want 2", len(slices))
	}
	if slices[0].Count != 2 || slices[0].Start != 280 {
		t.Errorf("best window = %+v, want the one with both words", slices[0])
	}
	if slices[1].Count != 1 || len(slices[1].Hits) != 3 {
		t.Errorf("second window = %+v, want three go spans", slices[1])
	}
}

func TestSelectSnippets_WordLongerThanWindow(t *testing.T) {
	hits := []Hit{{Position: 0, Word: "x", Length: 150}}

	if slices := SelectSnippets(300, hits, -1); len(slices) != 0 {
		t.Errorf("slices = %+v, want none", slices)
	}
}

func TestSelectSnippets_ShortContent(t *testing.T) {
	hits, _ := Locate([]string{"hello"}, "foo bar hello", false, false)

	slices := SelectSnippets(13, hits, 1)

	if len(slices) != 1 {
		t.Fatalf("len(slices) = %d, want 1", len(slices))
	}
	if slices[0].Start != 0 || slices[0].End != 13 {
		t.Errorf("window = [%d, %d), want [0, 13)", slices[0].Start, slices[0].End)
	}
}
