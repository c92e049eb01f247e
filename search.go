package localsearch

import (
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"sort"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// RANKING: Ordering Articles by How Much of the Query They Contain
// ═══════════════════════════════════════════════════════════════════════════════
// Relevance here is deliberately simple and lexical:
//
//  1. IncludedCount: how many DIFFERENT query words occur in title ∪ content
//  2. HitCount:      how many occurrences in total (title + content)
//  3. ID:            later-indexed documents win remaining ties
//
// EXAMPLE:
// --------
// Query: ["go", "channel"]
//
//	Doc A: title "Go tips",        content mentions "channel" twice
//	       → IncludedCount 2, HitCount 3
//	Doc B: title "Channel basics", content mentions "channel" 4 times
//	       → IncludedCount 1, HitCount 5
//
// A ranks first: covering more of the query beats repeating one word.
//
// PER-DOCUMENT PIPELINE:
// ----------------------
//
//	title   → Locate → Merge(0, len(title))          → 1 title slice
//	content → Locate → SelectSnippets(len, hits, N)  → ≤ N content slices
//
// Title and content are located separately, so their offsets never mix.
// ═══════════════════════════════════════════════════════════════════════════════

// ResultItem is one matched document, rendered and scored.
type ResultItem struct {
	HTML          string // <li> markup for the result list
	ID            int    // Sequence number among matched documents, in corpus order
	HitCount      int    // Title hits + content hits
	IncludedCount int    // Distinct query words matched in title ∪ content

	Document      Document
	Href          string  // Document link carrying the highlight parameter
	TitleSlice    *Slice  // Nil when the title has no hits
	ContentSlices []Slice // Selected content windows, best first
}

// RankOptions tunes ranking and rendering.
type RankOptions struct {
	TopNPerArticle int    // Content windows per result; negative keeps all
	Unescape       bool   // HTML-escape query words before matching
	Origin         string // Base URL result links are resolved against
	NoPrefilter    bool   // Scan every document instead of trigram candidates
}

// Rank evaluates every document against the query words and returns the
// matched ones in corpus order. Use SortResults for display order.
//
// A document that fails while being ranked is logged and skipped; the others
// are still evaluated.
func (c *Corpus) Rank(words []string, opts RankOptions) []ResultItem {
	needles := prepareNeedles(words, false, opts.Unescape)
	highlight := strings.Join(words, " ")

	var items []ResultItem
	c.forEachCandidate(needles, !opts.NoPrefilter, func(id int, e *entry) {
		item, ok, err := rankEntry(e, needles, highlight, opts)
		if err != nil {
			slog.Error("ranking document failed",
				slog.Int("document", id),
				slog.String("url", e.doc.URL),
				slog.Any("error", err))
			return
		}
		if !ok {
			return
		}
		item.ID = len(items)
		items = append(items, item)
	})
	return items
}

// renderResult renders a ranked item; replaced in tests.
var renderResult = renderItem

// rankEntry locates the needles in one document, builds its slices and
// renders it. A panic is returned as an error.
func rankEntry(e *entry, needles []needle, highlight string, opts RankOptions) (item ResultItem, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("rank %q: %v", e.doc.URL, r)
		}
	}()

	titleHits, titleWords := locateNeedles(needles, e.foldedTitle)
	contentHits, contentWords := locateNeedles(needles, e.foldedContent)

	hitCount := len(titleHits) + len(contentHits)
	if hitCount == 0 {
		return ResultItem{}, false, nil
	}

	item = ResultItem{
		Document:      e.doc,
		HitCount:      hitCount,
		IncludedCount: len(titleWords.Union(contentWords)),
	}
	if len(titleHits) > 0 {
		slice, _ := Merge(0, len(e.title), titleHits)
		item.TitleSlice = &slice
	}
	item.ContentSlices = SelectSnippets(len(e.content), contentHits, opts.TopNPerArticle)
	item.Href = resultHref(opts.Origin, e.doc.URL, highlight)
	item.HTML = renderResult(e, item)
	return item, true, nil
}

// renderItem builds the <li> markup for a result.
func renderItem(e *entry, item ResultItem) string {
	var b strings.Builder
	b.WriteString(`<li class="local-search-hit-item"><a href="`)
	b.WriteString(html.EscapeString(item.Href))
	b.WriteString(`"><span class="search-result-title">`)
	if item.TitleSlice != nil {
		b.WriteString(renderSegments(segmentRunes(e.title, *item.TitleSlice)))
	} else {
		b.WriteString(e.doc.Title)
	}
	b.WriteString(`</span>`)
	for _, slice := range item.ContentSlices {
		b.WriteString(`<p class="search-result">`)
		b.WriteString(renderSegments(segmentRunes(e.content, slice)))
		b.WriteString(`...</p>`)
	}
	b.WriteString(`</a></li>`)
	return b.String()
}

// resultHref resolves a document URL against origin and appends the
// highlight parameter the article page reads back.
func resultHref(origin, docURL, highlight string) string {
	target, err := url.Parse(docURL)
	if err != nil {
		target = &url.URL{Path: docURL}
	}
	if origin != "" {
		if base, err := url.Parse(origin); err == nil {
			target = base.ResolveReference(target)
		}
	}
	// Existing parameters keep their order and encoding.
	param := "highlight=" + url.QueryEscape(highlight)
	if target.RawQuery == "" {
		target.RawQuery = param
	} else {
		target.RawQuery += "&" + param
	}
	return target.String()
}

// SortResults orders items for display:
//
//	IncludedCount desc → HitCount desc → ID desc
func SortResults(items []ResultItem) {
	sort.Slice(items, func(i, j int) bool {
		left, right := items[i], items[j]
		if left.IncludedCount != right.IncludedCount {
			return left.IncludedCount > right.IncludedCount
		}
		if left.HitCount != right.HitCount {
			return left.HitCount > right.HitCount
		}
		return left.ID > right.ID
	})
}

// Rank is a convenience wrapper ranking and sorting documents without a session.
func Rank(docs []Document, words []string, opts RankOptions) []ResultItem {
	items := NewCorpus(docs).Rank(words, opts)
	SortResults(items)
	return items
}
