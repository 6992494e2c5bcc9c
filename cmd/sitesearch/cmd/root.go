// Package cmd provides the CLI commands for sitesearch.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/sitesearch/internal/config"
	"github.com/Aman-CERP/sitesearch/internal/controller"
	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
	"github.com/Aman-CERP/sitesearch/internal/index"
	"github.com/Aman-CERP/sitesearch/internal/logging"
	"github.com/Aman-CERP/sitesearch/internal/profiling"
	"github.com/Aman-CERP/sitesearch/internal/search"
	"github.com/Aman-CERP/sitesearch/pkg/version"
)

// Logging modes, set per command through the "logging" annotation.
const (
	logAnnotation = "logging"

	// logFile writes to the log file only. It is the default.
	logFile = "file"
	// logStderr writes to the log file and stderr (long-running servers).
	logStderr = "stderr"
	// logQuiet is logFile for commands that own stdio (MCP, terminal UI).
	logQuiet = "quiet"
	// logNone skips logging setup.
	logNone = "none"
)

// Global flags.
var (
	debugMode  bool
	configFile string
	originFlag string
	indexFlag  string
	cpuProfile string
	memProfile string

	loggingCleanup func()
	profile        *profiling.Session
)

// NewRootCmd creates the root command for the sitesearch CLI.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sitesearch",
		Short: "Full-text search for a static site",
		Long: `sitesearch loads the search index a static site generator publishes
(search_index.en.json) and searches it with prefix matching and
field-weighted ranking.

It can search once from the command line, serve a search page over HTTP,
run an interactive search page in the terminal, or expose the index to AI
clients as MCP tools.`,
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("sitesearch version {{.Version}}\n")

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.sitesearch/logs/")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: .sitesearch.yaml in the current directory)")
	cmd.PersistentFlags().StringVar(&originFlag, "origin", "", "Site origin the index is loaded from, e.g. https://example.com")
	cmd.PersistentFlags().StringVar(&indexFlag, "index-url", "", "Index URL, resolved against the origin")

	cmd.PersistentFlags().StringVar(&cpuProfile, "profile-cpu", "", "Write a CPU profile to this file")
	cmd.PersistentFlags().StringVar(&memProfile, "profile-mem", "", "Write a heap profile to this file on exit")

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if err := startLogging(cmd, args); err != nil {
			return err
		}
		return startProfiling()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		err := stopProfiling()
		if logErr := stopLogging(cmd, args); err == nil {
			err = logErr
		}
		return err
	}

	cmd.AddCommand(newSearchCmd())
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newTUICmd())
	cmd.AddCommand(newMCPCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newLogsCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command and prints any error for humans.
func Execute() error {
	cmd := NewRootCmd()
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), siteerrors.FormatForCLI(err))
	}
	return err
}

func startLogging(cmd *cobra.Command, _ []string) error {
	mode := cmd.Annotations[logAnnotation]
	if mode == "" {
		mode = logFile
	}
	if mode == logNone {
		return nil
	}

	level := "info"
	if debugMode {
		level = "debug"
	}

	var cfg logging.Config
	switch mode {
	case logStderr:
		cfg = logging.DefaultConfig()
		cfg.Level = level
		cfg.Stderr = cmd.ErrOrStderr()
	default:
		cfg = logging.QuietConfig(level)
	}

	cleanup, err := logging.SetupDefault(cfg)
	if err != nil {
		if debugMode {
			return fmt.Errorf("failed to setup debug logging: %w", err)
		}
		// Logging is best-effort outside debug mode.
		return nil
	}
	loggingCleanup = cleanup

	slog.Debug("logging_started",
		slog.String("command", cmd.Name()),
		slog.String("log_file", cfg.FilePath),
		slog.String("version", version.Short()))
	return nil
}

func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

func startProfiling() error {
	opts := profiling.Options{CPUPath: cpuProfile, HeapPath: memProfile}
	if !opts.Enabled() {
		return nil
	}
	session, err := profiling.Start(opts)
	if err != nil {
		return siteerrors.InternalError("failed to start profiling", err)
	}
	profile = session
	return nil
}

func stopProfiling() error {
	if profile == nil {
		return nil
	}
	err := profile.Stop()
	profile = nil
	if err != nil {
		return siteerrors.InternalError("failed to write profile", err)
	}
	return nil
}

// loadConfig loads configuration for the current directory and applies the
// global flags, which take precedence over every other source.
func loadConfig() (*config.Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}

	cfg, err := config.LoadWithFile(cwd, configFile)
	if err != nil {
		return nil, err
	}

	if originFlag != "" {
		cfg.Site.Origin = originFlag
	}
	if indexFlag != "" {
		cfg.Site.IndexURL = indexFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLoader returns a file loader when file is set, else an HTTP loader
// pinned to the configured origin.
func newLoader(cfg *config.Config, file string) (controller.Loader, error) {
	if file != "" {
		return &index.FileLoader{Path: file}, nil
	}

	if cfg.Site.Origin == "" {
		return nil, siteerrors.ConfigError("site origin is not configured", nil).
			WithSuggestion("pass --origin https://example.com, set site.origin, or use --file")
	}
	origin, err := cfg.OriginURL()
	if err != nil {
		return nil, err
	}

	client := &http.Client{Timeout: cfg.FetchTimeoutDuration()}
	return index.NewLoader(origin, cfg.Site.IndexURL, client), nil
}

// controllerOptions maps configuration onto controller options.
func controllerOptions(cfg *config.Config) controller.Options {
	return controller.Options{
		Debounce: cfg.DebounceDuration(),
		Search: search.Options{
			MinQueryLength: cfg.Search.MinQueryLength,
			MaxResults:     cfg.Search.MaxResults,
			CacheSize:      cfg.Search.CacheSize,
		},
		SnippetLength: cfg.Search.SnippetLength,
	}
}

// signalContext cancels on Ctrl+C or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
