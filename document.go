package localsearch

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════════
// ERROR DEFINITIONS
// ═══════════════════════════════════════════════════════════════════════════════
var (
	ErrEmptyPath          = errors.New("index path is empty")
	ErrUnsupportedPayload = errors.New("unsupported index payload")
	ErrBadSnapshot        = errors.New("malformed corpus snapshot")
	ErrNotReady           = errors.New("search session is not ready")
)

// ═══════════════════════════════════════════════════════════════════════════════
// DOCUMENTS: The Searchable Unit
// ═══════════════════════════════════════════════════════════════════════════════
// The site generator emits one record per article:
//
//	JSON: [{"title": "...", "content": "<p>...</p>", "url": "/2024/01/post/"}]
//	XML:  <search><entry><title/><content/><url/></entry>...</search>
//
// Both are normalised into the same Document:
//
//	title   → trimmed; records with an empty title are dropped
//	content → trimmed, then every <tag> removed
//	url     → percent-decoded, runs of "/" collapsed to one
// ═══════════════════════════════════════════════════════════════════════════════

// Document is one normalised article. It is immutable once loaded.
type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

// rawDocument is a record as it appears in the payload, before normalisation.
type rawDocument struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	URL     string `json:"url"`
}

var (
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	slashPattern = regexp.MustCompile(`/{2,}`)
)

// ParseJSON decodes a JSON array payload into normalised documents.
func ParseJSON(data []byte) ([]Document, error) {
	var raw []rawDocument
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: decode json index: %w", ErrUnsupportedPayload, err)
	}
	return Normalize(raw), nil
}

// xmlText collects the text content of an element and all its descendants,
// CDATA included. Only the first occurrence of an element is kept.
type xmlText struct {
	value string
	set   bool
}

func (t *xmlText) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	if t.set {
		return d.Skip()
	}
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		case xml.CharData:
			b.Write(tok)
		}
	}
	t.value, t.set = b.String(), true
	return nil
}

type xmlEntry struct {
	Title   xmlText `xml:"title"`
	Content xmlText `xml:"content"`
	URL     xmlText `xml:"url"`
}

// ParseXML decodes every <entry> element of an XML payload, at any depth, into
// normalised documents.
func ParseXML(data []byte) ([]Document, error) {
	d := xml.NewDecoder(bytes.NewReader(data))
	d.Strict = false

	var raw []rawDocument
	for {
		tok, err := d.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: decode xml index: %w", ErrUnsupportedPayload, err)
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "entry" {
			continue
		}
		var e xmlEntry
		if err := d.DecodeElement(&e, &start); err != nil {
			return nil, fmt.Errorf("%w: decode xml entry: %w", ErrUnsupportedPayload, err)
		}
		raw = append(raw, rawDocument{
			Title:   e.Title.value,
			Content: e.Content.value,
			URL:     e.URL.value,
		})
	}
	return Normalize(raw), nil
}

// Normalize cleans raw records and drops those without a title.
func Normalize(raw []rawDocument) []Document {
	docs := make([]Document, 0, len(raw))
	for _, r := range raw {
		title := trimJS(r.Title)
		if title == "" {
			continue
		}
		docs = append(docs, Document{
			Title:   title,
			Content: stripTags(trimJS(r.Content)),
			URL:     normalizeURL(r.URL),
		})
	}
	return docs
}

// NewDocuments normalises caller-supplied documents the same way payload
// records are normalised.
func NewDocuments(docs ...Document) []Document {
	raw := make([]rawDocument, len(docs))
	for i, d := range docs {
		raw[i] = rawDocument(d)
	}
	return Normalize(raw)
}

func stripTags(content string) string {
	return tagPattern.ReplaceAllString(content, "")
}

// normalizeURL percent-decodes a URL and collapses duplicate slashes. A
// "scheme://" separator is left alone.
func normalizeURL(raw string) string {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		slog.Debug("keeping undecodable url", slog.String("url", raw), slog.Any("error", err))
		decoded = raw
	}

	prefix, rest := "", decoded
	if i := strings.Index(decoded, "://"); i > 0 && isScheme(decoded[:i]) {
		prefix, rest = decoded[:i+3], decoded[i+3:]
	}
	return prefix + slashPattern.ReplaceAllString(rest, "/")
}

func isScheme(s string) bool {
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
		case i > 0 && (c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.'):
		default:
			return false
		}
	}
	return s != ""
}
