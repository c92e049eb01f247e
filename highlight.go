package localsearch

import "strings"

// MarkClass is the class attribute given to every highlight element.
const MarkClass = "search-keyword"

// Segment is a run of text that is either plain or highlighted.
type Segment struct {
	Text   string
	Marked bool
}

// Segments splits the window [slice.Start, slice.End) of text into plain and
// highlighted runs. Text outside the window is dropped; text inside it is kept
// verbatim, original casing included.
//
// Example:
//
//	Segments("Hello World", Slice{Start: 0, End: 11, Hits: []Span{{0, 5}}})
//	// [{"Hello" true} {" World" false}]
func Segments(text string, slice Slice) []Segment {
	return segmentRunes([]rune(text), slice)
}

func segmentRunes(runes []rune, slice Slice) []Segment {
	end := clamp(slice.End, 0, len(runes))
	index := clamp(slice.Start, 0, end)

	segments := make([]Segment, 0, 2*len(slice.Hits)+1)
	for _, span := range slice.Hits {
		position := clamp(span.Position, index, end)
		stop := clamp(span.Position+span.Length, position, end)
		if position > index {
			segments = append(segments, Segment{Text: string(runes[index:position])})
		}
		segments = append(segments, Segment{Text: string(runes[position:stop]), Marked: true})
		index = stop
	}
	if index < end {
		segments = append(segments, Segment{Text: string(runes[index:end])})
	}
	return segments
}

// HighlightString renders the slice window of text with each span wrapped in
// <mark class="search-keyword">. Text is copied as-is: the index payload has
// already been stripped of tags and is trusted markup.
func HighlightString(text string, slice Slice) string {
	return renderSegments(Segments(text, slice))
}

func renderSegments(segments []Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		if seg.Marked {
			b.WriteString(`<mark class="` + MarkClass + `">`)
			b.WriteString(seg.Text)
			b.WriteString("</mark>")
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
