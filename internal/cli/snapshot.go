package cli

import (
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/localsearch"
	"github.com/wizenheimer/localsearch/internal/ui"
)

var snapshotOut string

var snapshotCmd = &cobra.Command{
	Use:   "snapshot <payload>",
	Short: "Precompile a search payload into a binary snapshot",
	Long: `Parses and normalises a search.xml or search.json payload, builds its trigram
index and writes the result as a snapshot. Point search.path at a file ending
in .snap to load it without re-parsing.

Example:
  localsearch snapshot public/search.xml -o public/search.snap`,
	Args: cobra.ExactArgs(1),
	RunE: runSnapshot,
}

func init() {
	snapshotCmd.Flags().StringVarP(&snapshotOut, "output", "o", "", "Snapshot file to write (default: payload name with .snap)")
	rootCmd.AddCommand(snapshotCmd)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	search := cfg.Search
	search.Path = args[0]

	session := newSession(search)
	if err := session.Fetch(cmd.Context()); err != nil {
		return err
	}
	data, err := localsearch.EncodeSnapshot(session.Corpus())
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	out := snapshotOut
	if out == "" {
		out = snapshotName(args[0])
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), ui.Successf("%d documents written to %s", session.Corpus().Len(), out))
	return nil
}

// snapshotName replaces the payload's extension with .snap. Local payloads
// keep their directory; remote ones are written to the working directory.
func snapshotName(payload string) string {
	if u, err := url.Parse(payload); err == nil && u.Scheme != "" && u.Host != "" {
		payload = path.Base(u.Path)
		if payload == "." || payload == "/" {
			payload = "search"
		}
	}
	return strings.TrimSuffix(payload, filepath.Ext(payload)) + localsearch.SnapshotExt
}
