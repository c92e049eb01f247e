// Package cli implements the command-line interface.
package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/localsearch"
	"github.com/wizenheimer/localsearch/internal/config"
)

var (
	// Global flags
	configPath     string
	siteConfigPath string
	themeConfig    string
	languageConfig string
	indexPath      string
	logLevel       string
	fetchTimeout   time.Duration

	// Resolved values
	cfg *config.Config
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "localsearch",
	Short: "Lexical search over a static site's search index",
	Long: `localsearch answers keyword queries against the search.xml or search.json
payload generated for a static blog, ranks matching articles, builds
highlighted excerpts and can serve the same results over HTTP.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		err = config.ApplyHexo(&loaded.Search, config.HexoFiles{
			Site:     siteConfigPath,
			Theme:    themeConfig,
			Language: languageConfig,
		})
		if err != nil {
			return fmt.Errorf("failed to import hexo config: %w", err)
		}
		if indexPath != "" {
			loaded.Search.Path = indexPath
		}
		if cmd.Flags().Changed("log-level") || loaded.LogLevel == "" {
			loaded.LogLevel = logLevel
		}
		cfg = loaded

		return setupLogging(cfg.LogLevel)
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&siteConfigPath, "site-config", "", "Hexo site _config.yml to import search.path and url from")
	rootCmd.PersistentFlags().StringVar(&themeConfig, "theme-config", "", "Theme config to import local_search options from")
	rootCmd.PersistentFlags().StringVar(&languageConfig, "language-config", "", "Theme language file to import stats messages from")
	rootCmd.PersistentFlags().StringVarP(&indexPath, "index", "i", "", "Search payload path or URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().DurationVar(&fetchTimeout, "fetch-timeout", 30*time.Second, "Timeout for fetching a remote payload")
}

// setupLogging installs a text slog handler on stderr.
func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(level))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
	return nil
}

// newSession builds a session from the resolved configuration. A
// root-relative path imported from a site config is fetched from the site
// origin unless server.base_url says otherwise.
func newSession(search localsearch.Config) *localsearch.Session {
	base := cfg.Server.BaseURL
	if base == "" {
		base = search.Origin
	}
	fetcher := &localsearch.DefaultFetcher{
		Client:  &http.Client{Timeout: fetchTimeout},
		BaseURL: base,
	}
	return localsearch.NewSession(search, fetcher)
}
