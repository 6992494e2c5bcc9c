// Package server serves the search page over HTTP: the page itself, a results
// fragment for in-page updates, a JSON search API and a health check.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/Aman-CERP/sitesearch/internal/controller"
	"github.com/Aman-CERP/sitesearch/internal/debounce"
	"github.com/Aman-CERP/sitesearch/internal/render"
)

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = "127.0.0.1:8080"

	// DefaultReadyTimeout bounds how long a request waits for the index.
	DefaultReadyTimeout = 10 * time.Second

	// DefaultRateLimit is the sustained per-client search rate (requests/second).
	DefaultRateLimit = 20

	shutdownTimeout = 10 * time.Second
)

// Searcher is the part of the controller the server needs.
type Searcher interface {
	Results(ctx context.Context, q string) ([]render.Result, bool, error)
	Status() controller.Status
}

// Options configures the server.
type Options struct {
	Addr         string
	ReadyTimeout time.Duration
	// RateLimit is requests per second per client on search endpoints.
	// Negative disables limiting.
	RateLimit float64
	// Debounce is passed to the page script as its input quiet period.
	Debounce time.Duration
}

func (o Options) withDefaults() Options {
	if o.Addr == "" {
		o.Addr = DefaultAddr
	}
	if o.ReadyTimeout <= 0 {
		o.ReadyTimeout = DefaultReadyTimeout
	}
	if o.RateLimit == 0 {
		o.RateLimit = DefaultRateLimit
	}
	if o.Debounce <= 0 {
		o.Debounce = debounce.DefaultWindow
	}
	return o
}

// Server is the HTTP search page.
type Server struct {
	searcher Searcher
	opts     Options
	echo     *echo.Echo
}

// New creates a server for searcher.
func New(searcher Searcher, opts Options) *Server {
	s := &Server{
		searcher: searcher,
		opts:     opts.withDefaults(),
	}
	s.echo = s.routes()
	return s
}

func (s *Server) routes() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = newPageRenderer()
	e.HTTPErrorHandler = s.handleError

	e.Use(securityHeaders())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		Skipper: func(c echo.Context) bool {
			return c.Request().URL.Path == "/healthz"
		},
		LogStatus:   true,
		LogURI:      true,
		LogError:    true,
		LogMethod:   true,
		LogLatency:  true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			rctx := c.Request().Context()
			if v.Error == nil {
				slog.DebugContext(rctx, "request_completed",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Int64("latency_ms", v.Latency.Milliseconds()))
			} else {
				slog.WarnContext(rctx, "request_failed",
					slog.String("method", v.Method),
					slog.String("uri", v.URI),
					slog.Int("status", v.Status),
					slog.Int64("latency_ms", v.Latency.Milliseconds()),
					slog.String("error", v.Error.Error()))
			}
			return nil
		},
	}))
	e.Use(middleware.Recover())

	var limit []echo.MiddlewareFunc
	if s.opts.RateLimit > 0 {
		store := middleware.NewRateLimiterMemoryStore(rate.Limit(s.opts.RateLimit))
		limit = append(limit, middleware.RateLimiter(store))
	}

	e.GET("/", s.handlePage)
	e.GET("/search", s.handleFragment, limit...)
	e.GET("/api/search", s.handleAPI, limit...)
	e.GET("/healthz", s.handleHealth)
	e.GET("/assets/search.js", s.handleScript)

	return e
}

// Handler returns the HTTP handler, for embedding or tests.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Addr returns the configured listen address.
func (s *Server) Addr() string {
	return s.opts.Addr
}

// Run listens on Addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("server_started", slog.String("addr", s.opts.Addr))
		if err := s.echo.Start(s.opts.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		slog.Info("server_stopping")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
