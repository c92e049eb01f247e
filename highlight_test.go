package localsearch

import (
	"reflect"
	"testing"
)

func TestSegments(t *testing.T) {
	got := Segments("Hello World", Slice{Start: 0, End: 11, Hits: []Span{{Position: 0, Length: 5}}})

	want := []Segment{{Text: "Hello", Marked: true}, {Text: " World"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segments() = %+v, want %+v", got, want)
	}
}

func TestSegments_WindowDropsOutsideText(t *testing.T) {
	slice := Slice{Start: 4, End: 13, Hits: []Span{{Position: 8, Length: 5}}}

	got := Segments("foo bar hello world", slice)

	want := []Segment{{Text: "bar "}, {Text: "hello", Marked: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segments() = %+v, want %+v", got, want)
	}
}

func TestSegments_ClampsPastEnd(t *testing.T) {
	got := Segments("abc", Slice{Start: 0, End: 10, Hits: []Span{{Position: 1, Length: 10}}})

	want := []Segment{{Text: "a"}, {Text: "bc", Marked: true}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Segments() = %+v, want %+v", got, want)
	}
}

func TestHighlightString(t *testing.T) {
	text := "Go channels and go routines"
	hits, _ := Locate([]string{"go"}, text, false, false)
	slice, _ := Merge(0, len([]rune(text)), hits)

	got := HighlightString(text, slice)

	want := `<mark class="search-keyword">Go</mark> channels and <mark class="search-keyword">go</mark> routines`
	if got != want {
		t.Errorf("HighlightString() =\n%s\nwant\n%s", got, want)
	}
}

func TestHighlightString_MultibyteText(t *testing.T) {
	text := "日本語のテキスト"
	hits, _ := Locate([]string{"テキスト"}, text, false, false)
	slice, _ := Merge(0, len([]rune(text)), hits)

	got := HighlightString(text, slice)

	want := `日本語の<mark class="search-keyword">テキスト</mark>`
	if got != want {
		t.Errorf("HighlightString() = %s, want %s", got, want)
	}
}
