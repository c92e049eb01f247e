package cli

import (
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/localsearch"
)

var (
	highlightWords string
	highlightURL   string
	highlightOut   string
)

var highlightCmd = &cobra.Command{
	Use:   "highlight <page.html|->",
	Short: "Mark search words inside a rendered article page",
	Long: `Wraps every occurrence of the search words inside the page's
#article-container (or the whole document when there is none) in
<mark class="search-keyword"> and prints the resulting HTML.

Words come from --words, or from the highlight parameter of --url, the link a
search result points to.

Examples:
  localsearch highlight public/2024/go-channels/index.html --words "go channel"
  localsearch highlight page.html --url "/2024/go-channels/?highlight=go%20channel"`,
	Args: cobra.ExactArgs(1),
	RunE: runHighlight,
}

func init() {
	highlightCmd.Flags().StringVarP(&highlightWords, "words", "w", "", "Space-separated words to highlight")
	highlightCmd.Flags().StringVar(&highlightURL, "url", "", "Result link carrying a highlight parameter")
	highlightCmd.Flags().StringVarP(&highlightOut, "output", "o", "", "Write the page here instead of stdout")
	rootCmd.AddCommand(highlightCmd)
}

func runHighlight(cmd *cobra.Command, args []string) error {
	words, err := highlightTerms()
	if err != nil {
		return err
	}

	var page []byte
	if args[0] == "-" {
		page, err = io.ReadAll(cmd.InOrStdin())
	} else {
		page, err = os.ReadFile(args[0])
	}
	if err != nil {
		return fmt.Errorf("failed to read page: %w", err)
	}

	out, marks, err := localsearch.HighlightPage(string(page), words, cfg.Search.Unescape)
	if err != nil {
		return fmt.Errorf("failed to highlight page: %w", err)
	}
	slog.Debug("page highlighted", slog.String("page", args[0]), slog.Int("marks", marks))

	if highlightOut != "" {
		return os.WriteFile(highlightOut, []byte(out), 0o644)
	}
	_, err = io.WriteString(cmd.OutOrStdout(), out)
	return err
}

func highlightTerms() ([]string, error) {
	if highlightWords != "" {
		return strings.Split(highlightWords, " "), nil
	}
	if highlightURL != "" {
		u, err := url.Parse(highlightURL)
		if err != nil {
			return nil, fmt.Errorf("invalid --url: %w", err)
		}
		if words := localsearch.WordsFromURL(u); len(words) > 0 {
			return words, nil
		}
	}
	return nil, fmt.Errorf("nothing to highlight: pass --words or a --url with a %s parameter", localsearch.HighlightParam)
}
