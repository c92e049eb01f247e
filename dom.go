package localsearch

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ═══════════════════════════════════════════════════════════════════════════════
// LIVE-DOM HIGHLIGHTING: Marking Search Words Inside a Rendered Page
// ═══════════════════════════════════════════════════════════════════════════════
// Result links carry the query in a "highlight" URL parameter. The article page
// reads it back and wraps every occurrence inside its content container:
//
//	<p>Go channels are typed</p>      highlight=channel
//	            ▼
//	<p>Go <mark class="search-keyword">channel</mark>s are typed</p>
//
// NODE SPLITTING:
// ---------------
// A text node "Go channels are typed" with one span at [3, 10) becomes:
//
//	text("Go ") · mark(text("channel")) · text("s are typed")
//
// New nodes are inserted BEFORE the original, which keeps the tail text, so
// the surrounding structure (siblings, parent) is untouched.
//
// SKIPPED TEXT:
// -------------
// Text directly inside form controls (button, select, textarea), diagram
// containers (class "mermaid") and raw-text elements (script, style) is left
// alone: marking it would change behaviour or break rendering.
// ═══════════════════════════════════════════════════════════════════════════════

// HighlightParam is the URL query parameter carrying words to highlight.
const HighlightParam = "highlight"

// ContainerID is the id of the element holding article content.
const ContainerID = "article-container"

// WordsFromURL returns the words of the highlight parameter, split on single
// spaces. It returns nil when the parameter is missing or empty.
func WordsFromURL(u *url.URL) []string {
	if u == nil {
		return nil
	}
	param := u.Query().Get(HighlightParam)
	if param == "" {
		return nil
	}
	return strings.Split(param, " ")
}

// HighlightTextNode splits a text node around the slice's spans, wrapping each
// span in <mark class="className">. The slice must have been computed over the
// node's own text.
func HighlightTextNode(node *html.Node, slice Slice, className string) {
	if node == nil || node.Type != html.TextNode || node.Parent == nil {
		return
	}

	segments := segmentRunes([]rune(node.Data), slice)
	// The original node keeps the trailing plain text, or becomes empty.
	tail := ""
	if n := len(segments); n > 0 && !segments[n-1].Marked {
		tail = segments[n-1].Text
		segments = segments[:n-1]
	}

	parent := node.Parent
	for _, seg := range segments {
		text := &html.Node{Type: html.TextNode, Data: seg.Text}
		if !seg.Marked {
			parent.InsertBefore(text, node)
			continue
		}
		mark := &html.Node{
			Type:     html.ElementNode,
			DataAtom: atom.Mark,
			Data:     "mark",
			Attr:     []html.Attribute{{Key: "class", Val: className}},
		}
		mark.AppendChild(text)
		parent.InsertBefore(mark, node)
	}
	node.Data = tail
}

// HighlightSearchWords marks every occurrence of words in the text under root
// and returns the number of marks inserted.
//
// Nodes are collected before any is modified, so inserted marks are never
// walked again.
func HighlightSearchWords(root *html.Node, words []string, unescape bool) int {
	if root == nil || len(words) == 0 {
		return 0
	}
	needles := prepareNeedles(words, false, unescape)
	if len(needles) == 0 {
		return 0
	}

	var nodes []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode && !skipTextIn(n.Parent) {
			nodes = append(nodes, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	marks := 0
	for _, node := range nodes {
		runes := []rune(node.Data)
		hits, _ := locateNeedles(needles, foldRunes(runes))
		if len(hits) == 0 {
			continue
		}
		slice, _ := Merge(0, len(runes), hits)
		HighlightTextNode(node, slice, MarkClass)
		marks += len(slice.Hits)
	}
	return marks
}

// skipTextIn reports whether text directly under parent must not be marked.
func skipTextIn(parent *html.Node) bool {
	if parent == nil || parent.Type != html.ElementNode {
		return false
	}
	switch parent.DataAtom {
	case atom.Button, atom.Select, atom.Textarea, atom.Script, atom.Style:
		return true
	}
	return hasClass(parent, "mermaid")
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// FindByID returns the first element under root with the given id, or nil.
func FindByID(root *html.Node, id string) *html.Node {
	if root == nil {
		return nil
	}
	if root.Type == html.ElementNode {
		for _, a := range root.Attr {
			if a.Key == "id" && a.Val == id {
				return root
			}
		}
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := FindByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

// HighlightPage parses an HTML page, highlights words inside the content
// container (the whole document when there is none) and renders it back.
func HighlightPage(page string, words []string, unescape bool) (string, int, error) {
	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return "", 0, err
	}
	root := FindByID(doc, ContainerID)
	if root == nil {
		root = doc
	}
	marks := HighlightSearchWords(root, words, unescape)

	var b strings.Builder
	if err := html.Render(&b, doc); err != nil {
		return "", 0, err
	}
	return b.String(), marks, nil
}
