package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/sitesearch/internal/controller"
	"github.com/Aman-CERP/sitesearch/internal/ui"
)

func newTUICmd() *cobra.Command {
	var (
		initial string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Search interactively in the terminal",
		Long: `Open an interactive search page in the terminal. Results update as you
type; use the arrow keys to move through them and esc to quit.`,
		Example: `  sitesearch tui --origin https://example.com
  sitesearch tui --file public/search_index.en.json --query kubernetes`,
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

			app := ui.NewApp(ui.AppConfig{
				Input:     cmd.InOrStdin(),
				Output:    os.Stdout,
				AltScreen: true,
			})

			opts := controllerOptions(cfg)
			opts.InitialQuery = initial
			ctrl := controller.New(loader, app.Page(), opts)
			defer func() { _ = ctrl.Close() }()
			app.Bind(ctrl)

			g, gCtx := errgroup.WithContext(ctx)
			runCtx, cancel := context.WithCancel(gCtx)
			g.Go(func() error { return ctrl.Run(runCtx) })
			g.Go(func() error {
				defer cancel()
				return app.Run()
			})
			g.Go(func() error {
				<-runCtx.Done()
				app.Quit()
				return nil
			})
			return g.Wait()
		},
	}

	cmd.Flags().StringVarP(&initial, "query", "q", "", "Search for this query as soon as the index is ready")
	cmd.Flags().StringVar(&file, "file", "", "Read the index from a local file instead of the site")

	return cmd
}
