package localsearch

import (
	"log/slog"

	"github.com/RoaringBitmap/roaring"
)

// entry is a document plus the rune buffers the locator works on.
type entry struct {
	doc           Document
	title         []rune
	content       []rune
	foldedTitle   []rune
	foldedContent []rune
}

func newEntry(doc Document) entry {
	title, content := []rune(doc.Title), []rune(doc.Content)
	return entry{
		doc:           doc,
		title:         title,
		content:       content,
		foldedTitle:   foldRunes(title),
		foldedContent: foldRunes(content),
	}
}

// Corpus is the loaded, read-only set of documents a session searches.
//
// STRUCTURE:
// ----------
//
//	Corpus
//	├── entries: documents in payload order, with folded rune buffers
//	└── index:   trigram prefilter over the folded buffers
//
// A document's position in entries is its ID everywhere (prefilter bitmaps,
// snapshot records). Result sequence IDs are separate and count only matched
// documents.
type Corpus struct {
	entries []entry
	index   *TrigramIndex
	fromXML bool // Built from an XML payload: queries escape angle brackets
}

// NewCorpus builds a corpus from already-normalised documents.
func NewCorpus(docs []Document) *Corpus {
	c := &Corpus{
		entries: make([]entry, len(docs)),
		index:   NewTrigramIndex(),
	}
	for i, doc := range docs {
		c.entries[i] = newEntry(doc)
		c.index.Index(i, c.entries[i].foldedTitle, c.entries[i].foldedContent)
	}
	slog.Debug("corpus built",
		slog.Int("documents", len(docs)),
		slog.Int("trigrams", len(c.index.DocBitmaps)))
	return c
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.entries)
}

// Documents returns a copy of the documents in payload order.
func (c *Corpus) Documents() []Document {
	docs := make([]Document, len(c.entries))
	for i, e := range c.entries {
		docs[i] = e.doc
	}
	return docs
}

// FromXML reports whether the corpus was loaded from an XML payload.
func (c *Corpus) FromXML() bool {
	return c.fromXML
}

// Index exposes the trigram prefilter.
func (c *Corpus) Index() *TrigramIndex {
	return c.index
}

// forEachCandidate calls fn, in insertion order, for every document that may
// contain one of the needles. With prefilter off every document is visited.
func (c *Corpus) forEachCandidate(needles []needle, prefilter bool, fn func(id int, e *entry)) {
	var candidates *roaring.Bitmap
	if prefilter && c.index != nil {
		candidates = c.index.Candidates(needles)
	}
	if candidates == nil {
		for i := range c.entries {
			fn(i, &c.entries[i])
		}
		return
	}

	it := candidates.Iterator()
	for it.HasNext() {
		id := int(it.Next())
		if id < len(c.entries) {
			fn(id, &c.entries[id])
		}
	}
}
