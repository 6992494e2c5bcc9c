package cmd

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/sitesearch/internal/controller"
	"github.com/Aman-CERP/sitesearch/internal/server"
)

func newServeCmd() *cobra.Command {
	var (
		addr      string
		file      string
		rateLimit float64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a search page over HTTP",
		Long: `Serve a search page with an input box, a status line and a results list.

The index loads in the background; the page reports "Loading search index…"
until it is ready and "Search failed to load" if loading fails. Typing
searches after a short pause. The same results are available as an HTML
fragment at /search and as JSON at /api/search.`,
		Example: `  sitesearch serve --origin https://example.com
  sitesearch serve --file public/search_index.en.json --addr :9000`,
		Annotations: map[string]string{logAnnotation: logStderr},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Server.Addr
			}

			loader, err := newLoader(cfg, file)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			ctx, stop := signalContext(ctx)
			defer stop()

			ctrl := controller.New(loader, nil, controllerOptions(cfg))
			defer func() { _ = ctrl.Close() }()

			srv := server.New(ctrl, server.Options{
				Addr:      addr,
				RateLimit: rateLimit,
				Debounce:  cfg.DebounceDuration(),
			})

			slog.Info("serve_started", slog.String("addr", srv.Addr()))

			g, gCtx := errgroup.WithContext(ctx)
			g.Go(func() error { return ctrl.Run(gCtx) })
			g.Go(func() error { return srv.Run(gCtx) })
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config, 127.0.0.1:8080)")
	cmd.Flags().StringVar(&file, "file", "", "Read the index from a local file instead of the site")
	cmd.Flags().Float64Var(&rateLimit, "rate-limit", server.DefaultRateLimit, "Search requests per second per client, negative disables")

	return cmd
}
