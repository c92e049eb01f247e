package localsearch

import (
	"sort"
	"unicode"
)

// ═══════════════════════════════════════════════════════════════════════════════
// MATCH LOCATION: Finding Every Occurrence of Every Query Word
// ═══════════════════════════════════════════════════════════════════════════════
// The locator is the leaf of the search pipeline. For one text body (a title or
// a content field) it finds all literal occurrences of each query word.
//
// VISUAL EXAMPLE:
// ---------------
// Text:    "the category of cats"
// Offsets:  0123456789...
// Words:   ["cat", "category"]
//
//	"cat"      → pos 4, pos 16
//	"category" → pos 4
//
// Sorted hits (position asc, longer word first on ties):
//
//	[{4 "category"}, {4 "cat"}, {16 "cat"}]
//
// Hits for the SAME word never overlap (the scan cursor jumps past each match),
// but hits for DIFFERENT words may; the slice merger resolves those later.
//
// OFFSETS ARE RUNES:
// ------------------
// Positions count Unicode code points, not bytes. Case folding is done one rune
// at a time, so the folded text has exactly as many runes as the original and
// a position found in folded text indexes the original text.
// ═══════════════════════════════════════════════════════════════════════════════

// Hit is one occurrence of a query word in a text body.
type Hit struct {
	Position int    // Rune offset of the first matched rune
	Word     string // The (normalised) query word that matched
	Length   int    // Rune length of Word
}

// End returns the rune offset just past the match.
func (h Hit) End() int {
	return h.Position + h.Length
}

// WordSet is the set of distinct query words that matched at least once.
type WordSet map[string]struct{}

// Union returns a new set holding the words of both sets.
func (s WordSet) Union(other WordSet) WordSet {
	r := make(WordSet, len(s)+len(other))
	for w := range s {
		r[w] = struct{}{}
	}
	for w := range other {
		r[w] = struct{}{}
	}
	return r
}

// needle is a query word prepared for scanning.
type needle struct {
	word  string
	runes []rune
}

// Locate finds every occurrence of each word in text
//
// ALGORITHM:
// ----------
//  1. Fold text to lowercase unless caseSensitive
//  2. For each word: escape it (when unescape is set), fold it, skip if empty
//  3. Scan left to right; after a match, resume at the match end
//  4. Sort all hits by (position asc, word length desc)
//
// Example:
//
//	hits, words := Locate([]string{"hello"}, "Hello, hello!", false, false)
//	// hits  = [{0 "hello" 5}, {7 "hello" 5}]
//	// words = {"hello"}
func Locate(words []string, text string, caseSensitive, unescape bool) ([]Hit, WordSet) {
	runes := []rune(text)
	if !caseSensitive {
		runes = foldRunes(runes)
	}
	return locateNeedles(prepareNeedles(words, caseSensitive, unescape), runes)
}

// prepareNeedles normalises query words once per query, so scanning many
// documents does not repeat the escaping and folding work.
func prepareNeedles(words []string, caseSensitive, unescape bool) []needle {
	needles := make([]needle, 0, len(words))
	for _, word := range words {
		if unescape {
			word = escapeWord(word)
		}
		if word == "" {
			continue
		}
		runes := []rune(word)
		if !caseSensitive {
			runes = foldRunes(runes)
		}
		needles = append(needles, needle{word: string(runes), runes: runes})
	}
	return needles
}

// locateNeedles scans already-folded text for prepared needles.
func locateNeedles(needles []needle, text []rune) ([]Hit, WordSet) {
	var hits []Hit
	included := make(WordSet)

	for _, n := range needles {
		length := len(n.runes)
		start := 0
		for {
			position := indexRunes(text, n.runes, start)
			if position < 0 {
				break
			}
			hits = append(hits, Hit{Position: position, Word: n.word, Length: length})
			included[n.word] = struct{}{}
			start = position + length
		}
	}

	sortHits(hits)
	return hits, included
}

// sortHits orders hits by position, longer words first on equal positions.
func sortHits(hits []Hit) {
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].Position != hits[j].Position {
			return hits[i].Position < hits[j].Position
		}
		return hits[i].Length > hits[j].Length
	})
}

// foldRunes lowercases rune by rune, keeping the rune count unchanged.
func foldRunes(runes []rune) []rune {
	r := make([]rune, len(runes))
	for i, c := range runes {
		r[i] = unicode.ToLower(c)
	}
	return r
}

// indexRunes returns the first index >= from at which needle occurs in hay,
// or -1.
func indexRunes(hay, needle []rune, from int) int {
	if from < 0 {
		from = 0
	}
	n := len(needle)
	if n == 0 || n > len(hay)-from {
		return -1
	}
	first := needle[0]
	for i := from; i+n <= len(hay); i++ {
		if hay[i] != first {
			continue
		}
		match := true
		for j := 1; j < n; j++ {
			if hay[i+j] != needle[j] {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}
