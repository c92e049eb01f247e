package localsearch

import (
	"net/url"
	"reflect"
	"strings"
	"testing"

	"golang.org/x/net/html"
)

func TestWordsFromURL(t *testing.T) {
	tests := []struct {
		raw  string
		want []string
	}{
		{"/post/?highlight=go+channel", []string{"go", "channel"}},
		{"/post/?highlight=go%20channel&x=1", []string{"go", "channel"}},
		{"/post/?highlight=", nil},
		{"/post/", nil},
	}
	for _, tt := range tests {
		u, err := url.Parse(tt.raw)
		if err != nil {
			t.Fatalf("url.Parse(%q) error = %v", tt.raw, err)
		}
		if got := WordsFromURL(u); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("WordsFromURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
	if got := WordsFromURL(nil); got != nil {
		t.Errorf("WordsFromURL(nil) = %q, want nil", got)
	}
}

func TestHighlightPage_ContainerOnly(t *testing.T) {
	page := `<html><body><div id="article-container"><p>Go channels are typed</p></div><p>channel outside</p></body></html>`

	out, marks, err := HighlightPage(page, []string{"channel"}, false)
	if err != nil {
		t.Fatalf("HighlightPage() error = %v", err)
	}
	if marks != 1 {
		t.Errorf("marks = %d, want 1", marks)
	}
	if !strings.Contains(out, `<p>Go <mark class="search-keyword">channel</mark>s are typed</p>`) {
		t.Errorf("container not highlighted:\n%s", out)
	}
	if !strings.Contains(out, `<p>channel outside</p>`) {
		t.Errorf("text outside the container was modified:\n%s", out)
	}
}

func TestHighlightPage_WholeDocumentWithoutContainer(t *testing.T) {
	page := `<html><body><h1>Channel</h1><p>a channel</p></body></html>`

	out, marks, err := HighlightPage(page, []string{"channel"}, false)
	if err != nil {
		t.Fatalf("HighlightPage() error = %v", err)
	}
	if marks != 2 {
		t.Errorf("marks = %d, want 2", marks)
	}
	if !strings.Contains(out, `<h1><mark class="search-keyword">Channel</mark></h1>`) {
		t.Errorf("heading not highlighted with original casing:\n%s", out)
	}
}

func TestHighlightPage_SkipsControlsAndScripts(t *testing.T) {
	page := `<div id="article-container">` +
		`<button>channel</button>` +
		`<textarea>channel</textarea>` +
		`<script>var channel = 1;</script>` +
		`<div class="mermaid">graph channel</div>` +
		`<p>channel</p>` +
		`</div>`

	out, marks, err := HighlightPage(page, []string{"channel"}, false)
	if err != nil {
		t.Fatalf("HighlightPage() error = %v", err)
	}
	if marks != 1 {
		t.Errorf("marks = %d, want 1:\n%s", marks, out)
	}
	for _, kept := range []string{
		`<button>channel</button>`,
		`<script>var channel = 1;</script>`,
		`<div class="mermaid">graph channel</div>`,
	} {
		if !strings.Contains(out, kept) {
			t.Errorf("output lost %s:\n%s", kept, out)
		}
	}
}

func TestHighlightPage_NestedInlineElements(t *testing.T) {
	page := `<div id="article-container"><p>go <a href="/x">go</a> <code>go</code></p></div>`

	_, marks, err := HighlightPage(page, []string{"go"}, false)
	if err != nil {
		t.Fatalf("HighlightPage() error = %v", err)
	}
	if marks != 3 {
		t.Errorf("marks = %d, want 3", marks)
	}
}

func TestHighlightTextNode(t *testing.T) {
	parent := &html.Node{Type: html.ElementNode, Data: "p"}
	text := &html.Node{Type: html.TextNode, Data: "go and go here"}
	parent.AppendChild(text)

	slice := Slice{Start: 0, End: 14, Hits: []Span{{Position: 0, Length: 2}, {Position: 7, Length: 2}}}
	HighlightTextNode(text, slice, "hl")

	var b strings.Builder
	if err := html.Render(&b, parent); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	want := `<p><mark class="hl">go</mark> and <mark class="hl">go</mark> here</p>`
	if b.String() != want {
		t.Errorf("rendered %s, want %s", b.String(), want)
	}
	if text.Data != " here" {
		t.Errorf("original node holds %q, want the tail", text.Data)
	}
}

func TestHighlightSearchWords_NoWords(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<p>text</p>`))
	if err != nil {
		t.Fatal(err)
	}
	if marks := HighlightSearchWords(doc, []string{""}, false); marks != 0 {
		t.Errorf("marks = %d, want 0", marks)
	}
}

func TestFindByID(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<div><section id="x"><p id="article-container">hi</p></section></div>`))
	if err != nil {
		t.Fatal(err)
	}
	node := FindByID(doc, ContainerID)
	if node == nil || node.Data != "p" {
		t.Errorf("FindByID() = %v, want the <p>", node)
	}
	if FindByID(doc, "missing") != nil {
		t.Error("FindByID(missing) != nil")
	}
}
