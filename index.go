// ═══════════════════════════════════════════════════════════════════════════════
// WHAT IS A TRIGRAM PREFILTER?
// ═══════════════════════════════════════════════════════════════════════════════
// Search here is literal substring matching, which cannot be answered from a
// word index: "ategor" must match "category". A trigram index can still rule
// documents OUT cheaply. Every substring of length >= 3 is made of consecutive
// trigrams, so a document lacking any one of a word's trigrams cannot contain
// the word.
//
// Example: Given these (folded) documents:
//   Doc 0: "go channels"
//   Doc 1: "rust traits"
//
// Some trigram postings:
//   "cha" → {0}    "han" → {0}    "rai" → {1}    " tr" → {1}
//
// Query word "chan": trigrams "cha", "han" → {0} ∩ {0} = {0}
// Doc 1 is never scanned.
//
// GUARANTEES:
// -----------
// - Candidates are a SUPERSET of the documents with hits: ranking over the
//   candidates returns exactly what ranking over everything returns.
// - Words shorter than 3 runes cannot be filtered; they make every document a
//   candidate.
// - Trigrams never span two fields: title and content are indexed separately,
//   just as they are located separately.
// ═══════════════════════════════════════════════════════════════════════════════

package localsearch

import (
	"github.com/RoaringBitmap/roaring"
)

// trigram is three consecutive folded runes.
type trigram [3]rune

// TrigramIndex maps each trigram to the bitmap of documents containing it.
//
// Architecture:
//
//	TrigramIndex
//	└── DocBitmaps: map[trigram]*roaring.Bitmap
//	    ├── "cha" → Bitmap of document IDs [0, 4, 9, ...]
//	    ├── "han" → Bitmap of document IDs [0, 9, ...]
//	    └── ...
//
// Document IDs are corpus insertion indexes, so iterating a bitmap visits
// documents in insertion order.
type TrigramIndex struct {
	DocBitmaps map[trigram]*roaring.Bitmap
	TotalDocs  int
}

// NewTrigramIndex creates an empty index.
func NewTrigramIndex() *TrigramIndex {
	return &TrigramIndex{
		DocBitmaps: make(map[trigram]*roaring.Bitmap),
	}
}

// Index records every trigram of the given folded fields for docID.
func (idx *TrigramIndex) Index(docID int, fields ...[]rune) {
	for _, field := range fields {
		for i := 0; i+3 <= len(field); i++ {
			t := trigram{field[i], field[i+1], field[i+2]}
			bitmap := idx.DocBitmaps[t]
			if bitmap == nil {
				bitmap = roaring.NewBitmap()
				idx.DocBitmaps[t] = bitmap
			}
			bitmap.Add(uint32(docID))
		}
	}
	if docID+1 > idx.TotalDocs {
		idx.TotalDocs = docID + 1
	}
}

// Candidates returns the documents that may contain at least one needle, or
// nil when the needles cannot be filtered and every document is a candidate.
//
// ALGORITHM:
// ----------
//
//	for each needle:
//	    len < 3 → give up, everything is a candidate
//	    AND the bitmaps of all its trigrams
//	OR the per-needle bitmaps together
func (idx *TrigramIndex) Candidates(needles []needle) *roaring.Bitmap {
	result := roaring.NewBitmap()
	for _, n := range needles {
		if len(n.runes) < 3 {
			return nil
		}
		result.Or(idx.wordCandidates(n.runes))
	}
	return result
}

// wordCandidates intersects the bitmaps of every trigram in word.
func (idx *TrigramIndex) wordCandidates(word []rune) *roaring.Bitmap {
	var acc *roaring.Bitmap
	for i := 0; i+3 <= len(word); i++ {
		bitmap, exists := idx.DocBitmaps[trigram{word[i], word[i+1], word[i+2]}]
		if !exists {
			return roaring.NewBitmap()
		}
		if acc == nil {
			acc = bitmap.Clone()
			continue
		}
		acc.And(bitmap)
		if acc.IsEmpty() {
			return acc
		}
	}
	return acc
}
