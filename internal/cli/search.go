package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/localsearch/internal/ui"
)

var (
	searchJSON    bool
	searchHTML    bool
	searchTopN    int
	searchNoStems bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>...",
	Short: "Search the index and print ranked results",
	Long: `Loads the search payload, evaluates the query and prints matching articles
with highlighted excerpts, best match first.

Examples:
  localsearch search --index public/search.xml go channels
  localsearch search --index https://blog.example.com/search.json --json closures`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "Output results as JSON")
	searchCmd.Flags().BoolVar(&searchHTML, "html", false, "Output the result list markup")
	searchCmd.Flags().IntVarP(&searchTopN, "top-n", "n", 0, "Excerpts per article; negative shows all (default from config)")
	searchCmd.Flags().BoolVar(&searchNoStems, "no-stem", false, "Disable stemming even if enabled in config")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if searchJSON && searchHTML {
		return fmt.Errorf("--json and --html are mutually exclusive")
	}

	search := cfg.Search
	if cmd.Flags().Changed("top-n") {
		search.TopNPerArticle = searchTopN
	}
	if searchNoStems {
		search.Stem = false
	}

	session := newSession(search)
	if err := session.Fetch(cmd.Context()); err != nil {
		return err
	}
	res := session.Query(strings.Join(args, " "))

	out := cmd.OutOrStdout()
	switch {
	case searchJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(res.View())
	case searchHTML:
		_, err := fmt.Fprintln(out, res.StatsHTML()+res.HTML())
		return err
	default:
		_, err := fmt.Fprint(out, ui.NewRenderer(out).Results(res))
		return err
	}
}
