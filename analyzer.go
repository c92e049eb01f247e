// ═══════════════════════════════════════════════════════════════════════════════
// QUERY ANALYSIS OVERVIEW
// ═══════════════════════════════════════════════════════════════════════════════
// Query analysis turns the raw text typed into the search box into the ordered
// list of words the locator scans for. Unlike a tokenizing indexer we never
// touch the documents here: matching is literal substring search, so the only
// normalisation happens on the query side.
//
// ANALYSIS PIPELINE:
// ------------------
//  1. Trim          → Drop leading/trailing whitespace (JavaScript's set)
//  2. Lowercasing   → "Hello" → "hello"
//  3. XML escaping  → "<" → "&lt;", ">" → "&gt;" (only for XML payloads)
//  4. Splitting     → Break on runs of whitespace or hyphens
//  5. Stemming      → Optional: "running" → "run" (only when the stem is a prefix)
//
// EXAMPLE TRANSFORMATION:
// -----------------------
// Input:  "  Go-Routines  Channel "
// Step 1: "Go-Routines  Channel"
// Step 2: "go-routines  channel"
// Step 4: ["go", "routines", "channel"]
//
// SPLIT QUIRK:
// ------------
// A leading separator produces a leading empty word ("-foo" → ["", "foo"]).
// Empty words are kept in the list (they show up in result links) and are
// skipped by the locator. A query whose only word is "" is a "clear" request.
// ═══════════════════════════════════════════════════════════════════════════════

package localsearch

import (
	"regexp"
	"strings"
	"unicode/utf8"

	snowballeng "github.com/kljensen/snowball/english"
)

// jsWhitespace is the character class JavaScript uses for \s and String.trim.
const jsWhitespace = "\t\n\v\f\r \u00a0\u1680\u2000\u2001\u2002\u2003\u2004\u2005\u2006\u2007\u2008\u2009\u200a\u2028\u2029\u202f\u205f\u3000\ufeff"

var wordSeparator = regexp.MustCompile(`[-\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}]+`)

// htmlEscaper mirrors what a DOM text node serialises as innerHTML.
var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// xmlQueryEscaper is applied to the whole query when the payload is XML, where
// the index stores markup entity-encoded.
var xmlQueryEscaper = strings.NewReplacer("<", "&lt;", ">", "&gt;")

// QueryOptions controls how raw input is turned into query words.
type QueryOptions struct {
	XML  bool // Payload is XML: escape angle brackets before splitting
	Stem bool // Replace each word with its English stem when the stem is a prefix of it
}

// ParseQuery normalises raw input and splits it into query words.
//
// It returns the normalised search text (used in the empty-state message) and
// the words in input order.
//
// Example:
//
//	text, words := ParseQuery("  Hello-World ", QueryOptions{})
//	// text  = "hello-world"
//	// words = ["hello", "world"]
func ParseQuery(raw string, opts QueryOptions) (string, []string) {
	text := strings.ToLower(trimJS(raw))
	if opts.XML {
		text = xmlQueryEscaper.Replace(text)
	}

	words := wordSeparator.Split(text, -1)

	if opts.Stem {
		words = stemFilter(words)
	}

	return text, words
}

// IsClear reports whether a split query is the "clear results" input.
func IsClear(words []string) bool {
	return len(words) == 1 && words[0] == ""
}

// trimJS trims the JavaScript whitespace set from both ends.
func trimJS(s string) string {
	return strings.Trim(s, jsWhitespace)
}

// escapeWord applies the "unescape" option to a single query word.
func escapeWord(word string) string {
	return htmlEscaper.Replace(word)
}

// stemFilter reduces words to their English stems
//
// WHY ONLY PREFIX STEMS?
// ----------------------
// Matching is literal substring search over the original text. A stem that is
// a prefix of the word broadens the match ("running" → "run" also finds "runs"),
// but a stem that rewrites the tail ("happy" → "happi") would match nothing the
// original word matched. Those words are kept as typed.
func stemFilter(words []string) []string {
	r := make([]string, len(words))
	for i, word := range words {
		r[i] = word
		if utf8.RuneCountInString(word) < 4 {
			continue
		}
		stem := snowballeng.Stem(word, false)
		if stem != "" && strings.HasPrefix(word, stem) {
			r[i] = stem
		}
	}
	return r
}
