package localsearch

// ═══════════════════════════════════════════════════════════════════════════════
// SLICE MERGING: Turning Overlapping Hits into Highlightable Spans
// ═══════════════════════════════════════════════════════════════════════════════
// A Slice is a window [Start, End) of a text plus the non-overlapping spans
// inside it that should be highlighted.
//
// THE GREEDY WALK:
// ----------------
// Hits arrive sorted by (position asc, length desc). We accept the first hit,
// then drop every following hit that starts before the accepted hit ends, then
// accept the next survivor, and so on, until the next hit would run past End.
//
// VISUAL EXAMPLE:
// ---------------
// Text: "a category of cats", window [0, 18)
// Hits: [{2 "category"}, {2 "cat"}, {14 "cat"}]
//
//	accept {2 "category"} → claimed until 10
//	drop   {2 "cat"}      → starts at 2 < 10
//	accept {14 "cat"}     → claimed until 17
//
// Result: Hits = [{2,8}, {14,3}], Count = 2 distinct words
//
// OWNERSHIP:
// ----------
// Merge consumes the prefix of the hit list it walked and hands the rest back.
// Callers continue with the returned remainder and never reuse the input.
// ═══════════════════════════════════════════════════════════════════════════════

// Span is an accepted hit inside a slice.
type Span struct {
	Position int // Rune offset of the highlighted run
	Length   int // Rune length of the highlighted run
}

// Slice is a window of a text and the spans to highlight within it.
type Slice struct {
	Start int    // First rune of the window
	End   int    // One past the last rune of the window
	Hits  []Span // Non-overlapping, strictly increasing spans
	Count int    // Number of distinct words among the accepted spans
}

// Merge walks hits greedily inside [start, end) and returns the resulting slice
// together with the hits it did not consume.
//
// Example:
//
//	slice, rest := Merge(0, 18, hits)
//	// slice.Hits = [{2 8} {14 3}], slice.Count = 2, rest = []
func Merge(start, end int, hits []Hit) (Slice, []Hit) {
	slice := Slice{Start: start, End: end}
	words := make(map[string]struct{})

	for len(hits) > 0 && hits[0].End() <= end {
		accepted := hits[0]
		words[accepted.Word] = struct{}{}
		slice.Hits = append(slice.Hits, Span{Position: accepted.Position, Length: accepted.Length})

		// Skip everything that overlaps the hit we just accepted
		hits = hits[1:]
		for len(hits) > 0 && accepted.End() > hits[0].Position {
			hits = hits[1:]
		}
	}

	slice.Count = len(words)
	return slice, hits
}
