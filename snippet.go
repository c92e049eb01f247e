package localsearch

import "sort"

// ═══════════════════════════════════════════════════════════════════════════════
// SNIPPET SELECTION: Choosing Which Parts of an Article to Show
// ═══════════════════════════════════════════════════════════════════════════════
// Content fields are long; a result shows only short windows around matches.
//
// THE ALGORITHM:
// --------------
// While hits remain:
//  1. Anchor a window at the first remaining hit p: [max(0, p-20), min(len, p+100)]
//  2. Merge the remaining hits into that window (consumes what it accepts)
//  3. Repeat with whatever is left
//
// Then rank the candidate windows and keep the best N:
//
//	distinct words desc → hit count desc → start asc
//
// EXAMPLE:
// --------
// Content of 400 runes, "kafka" at 10 and at 210:
//
//	window 1: [0, 110)   hits [{10 5}]
//	window 2: [190, 310) hits [{210 5}]
//
// With topN = 1 only window 1 is kept (ties broken by start).
// ═══════════════════════════════════════════════════════════════════════════════

const (
	// SnippetLead is how many runes of context precede the anchoring hit.
	SnippetLead = 20
	// SnippetTrail is how many runes after the anchoring hit's start are kept.
	SnippetTrail = 100
)

// SelectSnippets builds candidate windows over a content field of contentLen
// runes and returns the topN best. A negative topN keeps every window.
func SelectSnippets(contentLen int, hits []Hit, topN int) []Slice {
	var slices []Slice

	for len(hits) > 0 {
		position := hits[0].Position
		start := max(0, position-SnippetLead)
		end := min(contentLen, position+SnippetTrail)

		var slice Slice
		slice, hits = Merge(start, end, hits)
		if len(slice.Hits) == 0 {
			// The anchoring word is longer than the window; nothing can be
			// accepted from here, so drop it to make progress.
			hits = hits[1:]
			continue
		}
		slices = append(slices, slice)
	}

	sortSlices(slices)
	return limitSlices(slices, topN)
}

// sortSlices orders candidate windows best first.
func sortSlices(slices []Slice) {
	sort.SliceStable(slices, func(i, j int) bool {
		left, right := slices[i], slices[j]
		if left.Count != right.Count {
			return left.Count > right.Count
		}
		if len(left.Hits) != len(right.Hits) {
			return len(left.Hits) > len(right.Hits)
		}
		return left.Start < right.Start
	})
}

// limitSlices returns at most topN slices; a negative topN disables the cap.
func limitSlices(slices []Slice, topN int) []Slice {
	if topN < 0 || topN >= len(slices) {
		return slices
	}
	return slices[:topN]
}
