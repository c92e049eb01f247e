package cli

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wizenheimer/localsearch/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve search and page highlighting over HTTP",
	Long: `Starts the HTTP query service:

  GET  /api/search?q=...           ranked results as JSON
  POST /api/highlight?highlight=   the posted page with search words marked
  GET  /healthz, /readyz, /metrics

With preload enabled the payload is fetched at startup; otherwise the first
search request triggers the fetch and is answered as pending.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := server.New(cfg.Server, newSession(cfg.Search))
		return srv.Run(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	rootCmd.AddCommand(serveCmd)
}
