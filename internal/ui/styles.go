package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
// - Accent (amber #F5A524): matched words, the same role as <mark> on the web
// - Link (soft blue #7AA2F7): result URLs
// - Muted (gray): stats, snippet ellipses, hints

var (
	// Mark style for matched query words
	Mark = lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A524")).Bold(true)

	// Title style for result titles
	Title = lipgloss.NewStyle().Bold(true)

	// Link style for result URLs
	Link = lipgloss.NewStyle().Foreground(lipgloss.Color("#7AA2F7")).Underline(true)

	// Muted style for secondary info
	Muted = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))

	// Snippet indents content windows under their title
	Snippet = lipgloss.NewStyle().PaddingLeft(3)
)
