package localsearch

import (
	"reflect"
	"testing"
)

func TestLocate_CaseInsensitive(t *testing.T) {
	hits, words := Locate([]string{"hello"}, "Hello, hello!", false, false)

	want := []Hit{{Position: 0, Word: "hello", Length: 5}, {Position: 7, Word: "hello", Length: 5}}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("hits = %+v, want %+v", hits, want)
	}
	if _, ok := words["hello"]; !ok || len(words) != 1 {
		t.Errorf("words = %v, want {hello}", words)
	}
}

func TestLocate_CaseSensitive(t *testing.T) {
	hits, _ := Locate([]string{"Go"}, "go Go GO", true, false)
	if len(hits) != 1 || hits[0].Position != 3 {
		t.Errorf("hits = %+v, want one hit at 3", hits)
	}
}

func TestLocate_NonOverlappingScan(t *testing.T) {
	// After a match the scan resumes at its end, so "aa" in "aaaa" is found twice.
	hits, _ := Locate([]string{"aa"}, "aaaa", false, false)
	if len(hits) != 2 || hits[0].Position != 0 || hits[1].Position != 2 {
		t.Errorf("hits = %+v, want positions 0 and 2", hits)
	}
}

func TestLocate_SortsByPositionThenLength(t *testing.T) {
	hits, _ := Locate([]string{"cat", "category"}, "category", false, false)

	want := []Hit{
		{Position: 0, Word: "category", Length: 8},
		{Position: 0, Word: "cat", Length: 3},
	}
	if !reflect.DeepEqual(hits, want) {
		t.Errorf("hits = %+v, want %+v", hits, want)
	}
}

func TestLocate_SkipsEmptyWords(t *testing.T) {
	hits, words := Locate([]string{"", "go", ""}, "go go", false, false)
	if len(hits) != 2 {
		t.Errorf("len(hits) = %d, want 2", len(hits))
	}
	if _, ok := words[""]; ok {
		t.Error("empty word reported as included")
	}
}

func TestLocate_Unescape(t *testing.T) {
	text := "if a &lt; b then"
	hits, _ := Locate([]string{"<"}, text, false, true)
	if len(hits) != 1 || hits[0].Position != 5 || hits[0].Length != 4 {
		t.Errorf("hits = %+v, want one 4-rune hit at 5", hits)
	}

	hits, _ = Locate([]string{"<"}, text, false, false)
	if len(hits) != 0 {
		t.Errorf("without unescape hits = %+v, want none", hits)
	}
}

func TestLocate_RuneOffsets(t *testing.T) {
	hits, _ := Locate([]string{"wörld"}, "Grüße, WÖRLD", false, false)
	if len(hits) != 1 || hits[0].Position != 7 || hits[0].Length != 5 {
		t.Errorf("hits = %+v, want one 5-rune hit at rune 7", hits)
	}
}

func TestLocate_NoMatches(t *testing.T) {
	hits, words := Locate([]string{"rust"}, "go channels", false, false)
	if len(hits) != 0 || len(words) != 0 {
		t.Errorf("hits = %+v, words = %v, want none", hits, words)
	}
}

func TestWordSet_Union(t *testing.T) {
	a := WordSet{"go": {}, "rust": {}}
	b := WordSet{"rust": {}, "zig": {}}

	u := a.Union(b)
	if len(u) != 3 {
		t.Errorf("len(Union) = %d, want 3", len(u))
	}
	if len(a) != 2 {
		t.Error("Union modified its receiver")
	}
}

func TestIndexRunes(t *testing.T) {
	hay := []rune("abcabc")
	if got := indexRunes(hay, []rune("bc"), 0); got != 1 {
		t.Errorf("indexRunes from 0 = %d, want 1", got)
	}
	if got := indexRunes(hay, []rune("bc"), 2); got != 4 {
		t.Errorf("indexRunes from 2 = %d, want 4", got)
	}
	if got := indexRunes(hay, []rune("bc"), 5); got != -1 {
		t.Errorf("indexRunes from 5 = %d, want -1", got)
	}
	if got := indexRunes(hay, nil, 0); got != -1 {
		t.Errorf("indexRunes with empty needle = %d, want -1", got)
	}
}
