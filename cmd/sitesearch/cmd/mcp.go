package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/sitesearch/internal/controller"
	"github.com/Aman-CERP/sitesearch/internal/mcp"
)

func newMCPCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the site index to AI clients over MCP (stdio)",
		Long: `Run an MCP server on stdin/stdout exposing two tools:

  search_site   ranked pages for a query, with links and excerpts
  index_status  whether the index has loaded and what it covers

Stdout carries the protocol only; logs go to ~/.sitesearch/logs/.`,
		Annotations: map[string]string{logAnnotation: logQuiet},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
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

			srv, err := mcp.NewServer(ctrl, cfg)
			if err != nil {
				return err
			}

			g, gCtx := errgroup.WithContext(ctx)
			runCtx, cancel := context.WithCancel(gCtx)
			g.Go(func() error { return ctrl.Run(runCtx) })
			g.Go(func() error {
				// The client closing stdin ends the session and the command.
				defer cancel()
				return srv.Serve(runCtx)
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "Read the index from a local file instead of the site")

	return cmd
}
