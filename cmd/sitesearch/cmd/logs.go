package cmd

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
	"github.com/Aman-CERP/sitesearch/internal/logging"
	"github.com/Aman-CERP/sitesearch/internal/ui"
)

type logsOptions struct {
	follow  bool
	lines   int
	level   string
	filter  string
	noColor bool
	logFile string
}

// newLogsCmd creates the logs command.
func newLogsCmd() *cobra.Command {
	var opts logsOptions

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "View sitesearch logs",
		Long: `View and tail the sitesearch log file (~/.sitesearch/logs/sitesearch.log).

Examples:
  sitesearch logs                    # Show last 50 lines
  sitesearch logs -n 100             # Show last 100 lines
  sitesearch logs -f                 # Follow logs in real-time
  sitesearch logs --level warn       # Show warnings and errors
  sitesearch logs --filter "search_" # Filter by pattern`,
		Args:        cobra.NoArgs,
		Annotations: map[string]string{logAnnotation: logNone},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLogs(cmd, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of lines to show")
	cmd.Flags().StringVar(&opts.level, "level", "", "Filter by log level (debug|info|warn|error)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by keyword/pattern (regex)")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")
	cmd.Flags().StringVar(&opts.logFile, "file", "", "Path to log file")

	return cmd
}

func runLogs(cmd *cobra.Command, opts logsOptions) error {
	var pattern *regexp.Regexp
	if opts.filter != "" {
		re, err := regexp.Compile(opts.filter)
		if err != nil {
			return siteerrors.ValidationError(fmt.Sprintf("invalid filter pattern %q", opts.filter), err)
		}
		pattern = re
	}

	path := opts.logFile
	if path == "" {
		path = logging.DefaultLogPath()
	}
	if _, err := os.Stat(path); err != nil {
		return siteerrors.New(siteerrors.ErrCodeFileNotFound, fmt.Sprintf("log file not found: %s", path), err).
			WithSuggestion("run a sitesearch command first, or pass --file")
	}

	out := cmd.OutOrStdout()
	viewer := logging.NewViewer(logging.ViewerConfig{
		Level:   opts.level,
		Pattern: pattern,
		NoColor: opts.noColor || !ui.UseColor(out),
	}, out)

	entries, err := viewer.Tail(path, opts.lines)
	if err != nil {
		return siteerrors.Wrap(siteerrors.ErrCodeFileNotFound, err)
	}
	viewer.Print(entries)

	if !opts.follow {
		return nil
	}

	ctx, stop := signalContext(cmd.Context())
	defer stop()

	followed := make(chan logging.LogEntry)
	done := make(chan error, 1)
	go func() {
		done <- viewer.Follow(ctx, path, followed)
	}()

	for {
		select {
		case entry := <-followed:
			viewer.Print([]logging.LogEntry{entry})
		case err := <-done:
			return err
		}
	}
}
