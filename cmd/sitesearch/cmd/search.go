package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/sitesearch/internal/controller"
	"github.com/Aman-CERP/sitesearch/internal/output"
	"github.com/Aman-CERP/sitesearch/internal/query"
	"github.com/Aman-CERP/sitesearch/internal/render"
)

// searchOptions holds CLI flags for search.
type searchOptions struct {
	format string // "text", "json"
	file   string
	limit  int
}

// searchResult is the JSON output of the search command.
type searchResult struct {
	Query    string          `json:"query"`
	Searched bool            `json:"searched"`
	Results  []render.Result `json:"results"`
}

func newSearchCmd() *cobra.Command {
	var opts searchOptions

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the site index once",
		Long: `Load the site's search index and print the ranked results for a query.

Every query word matches as a prefix, so "sta gen" finds "static generator".
Matches in titles rank above matches in summaries, which rank above matches
in the body. Queries shorter than two characters are not searched.`,
		Example: `  sitesearch search --origin https://example.com "static site"
  sitesearch search --file public/search_index.en.json kubernetes
  sitesearch search --origin https://example.com cats --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd.Context(), cmd, strings.Join(args, " "), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "text", "Output format: text, json")
	cmd.Flags().StringVar(&opts.file, "file", "", "Read the index from a local file instead of the site")
	cmd.Flags().IntVarP(&opts.limit, "limit", "n", 0, "Maximum number of results (default from config)")

	return cmd
}

func runSearch(ctx context.Context, cmd *cobra.Command, q string, opts searchOptions) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (supported: text, json)", opts.format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.limit > 0 {
		cfg.Search.MaxResults = opts.limit
	}

	loader, err := newLoader(cfg, opts.file)
	if err != nil {
		return err
	}

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := signalContext(ctx)
	defer cancel()

	ctrl := controller.New(loader, nil, controllerOptions(cfg))
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = ctrl.Run(ctx)
	}()
	defer func() {
		cancel()
		<-done
		_ = ctrl.Close()
	}()

	start := time.Now()
	results, ran, err := ctrl.Results(ctx, q)
	if err != nil {
		return err
	}

	slog.Info("search_executed",
		slog.String("query", q),
		slog.Bool("searched", ran),
		slog.Int("results", len(results)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()))

	out := output.New(cmd.OutOrStdout())
	if opts.format == "json" {
		if results == nil {
			results = []render.Result{}
		}
		return out.JSON(searchResult{
			Query:    query.Normalize(q),
			Searched: ran,
			Results:  results,
		})
	}

	out.Results(query.Normalize(q), results, ran)
	return nil
}
