// Package ui renders search results for a terminal.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/wizenheimer/localsearch"
)

// Unicode symbols for status lines
const (
	SymbolSuccess = "✓"
	SymbolInfo    = "ℹ"
	SymbolWarning = "⚠"
)

// Successf returns a formatted success message with checkmark symbol
func Successf(format string, args ...any) string {
	return fmt.Sprintf("%s %s", SymbolSuccess, fmt.Sprintf(format, args...))
}

// Renderer formats results. Without color, matched words are wrapped in
// brackets instead of styled.
type Renderer struct {
	Color bool
}

// NewRenderer enables color when w is a terminal.
func NewRenderer(w io.Writer) *Renderer {
	f, ok := w.(*os.File)
	return &Renderer{Color: ok && isatty.IsTerminal(f.Fd())}
}

func (r *Renderer) style(s string, st interface{ Render(...string) string }) string {
	if !r.Color {
		return s
	}
	return st.Render(s)
}

// Segments renders highlighted text.
func (r *Renderer) Segments(segments []localsearch.Segment) string {
	var b strings.Builder
	for _, seg := range segments {
		switch {
		case !seg.Marked:
			b.WriteString(seg.Text)
		case r.Color:
			b.WriteString(Mark.Render(seg.Text))
		default:
			b.WriteString("[" + seg.Text + "]")
		}
	}
	return b.String()
}

// Item renders one result: a numbered title, its link, then each snippet.
func (r *Renderer) Item(n int, item localsearch.ResultItem) string {
	title := item.Document.Title
	if item.TitleSlice != nil {
		title = r.Segments(localsearch.Segments(title, *item.TitleSlice))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d. %s\n", n, r.style(title, Title))
	fmt.Fprintf(&b, "   %s\n", r.style(item.Href, Link))
	for _, slice := range item.ContentSlices {
		text := r.Segments(localsearch.Segments(item.Document.Content, slice))
		text = strings.Join(strings.Fields(text), " ")
		line := text + r.style("...", Muted)
		if r.Color {
			line = Snippet.Render(line)
		} else {
			line = "   " + line
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// Results renders a full answer, including its stats line.
func (r *Renderer) Results(res localsearch.Results) string {
	switch {
	case res.Pending:
		return fmt.Sprintf("%s %s\n", SymbolWarning, "search index is still loading")
	case res.Cleared:
		return ""
	case len(res.Items) == 0:
		return fmt.Sprintf("%s %s\n", SymbolInfo, res.Stats)
	}

	var b strings.Builder
	for i, item := range res.Items {
		b.WriteString(r.Item(i+1, item))
		b.WriteString("\n")
	}
	b.WriteString(r.style(res.Stats, Muted))
	b.WriteString("\n")
	return b.String()
}
