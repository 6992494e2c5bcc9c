// Package controller owns the search lifecycle of one page: it loads the
// index once, reports readiness, and turns debounced input and programmatic
// triggers into rendered results.
package controller

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Aman-CERP/sitesearch/internal/debounce"
	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
	"github.com/Aman-CERP/sitesearch/internal/index"
	"github.com/Aman-CERP/sitesearch/internal/render"
	"github.com/Aman-CERP/sitesearch/internal/search"
)

// requestBuffer bounds programmatic searches queued for the event loop.
const requestBuffer = 16

// Loader produces the search index. Both index.Loader and index.FileLoader
// satisfy it.
type Loader interface {
	Load(ctx context.Context) (*index.Index, error)
}

// State is the lifecycle stage of a controller.
type State string

const (
	StateLoading State = "loading"
	StateReady   State = "ready"
	StateFailed  State = "failed"
)

// Status describes the controller for health checks and status tools.
type Status struct {
	State     State    `json:"state"`
	Documents int      `json:"documents"`
	Fields    []string `json:"fields,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// Text returns the status line a page shows for s.
func (s Status) Text() string {
	switch s.State {
	case StateReady:
		return fmt.Sprintf("%d documents indexed", s.Documents)
	case StateFailed:
		return StatusFailedText
	default:
		return StatusLoadingText
	}
}

// Options configures a controller.
type Options struct {
	// Debounce is the input quiet period (default 120ms).
	Debounce time.Duration
	// Search configures the engine.
	Search search.Options
	// SnippetLength is the snippet window in characters (default 200).
	SnippetLength int
	// InitialQuery runs once after the index is ready and is reflected into the page.
	InitialQuery string
}

// Controller replaces process-wide readiness and trigger hooks with an
// explicit object. Create one per page with New and start it with Run.
type Controller struct {
	loader Loader
	page   Page
	opts   Options

	debouncer *debounce.Debouncer
	requests  chan string
	ready     chan struct{}
	running   atomic.Bool

	mu      sync.RWMutex
	state   State
	idx     *index.Index
	engine  *search.Engine
	loadErr error
}

// New creates a controller. A nil page is replaced by a LogPage.
func New(loader Loader, page Page, opts Options) *Controller {
	if page == nil {
		page = &LogPage{}
	}
	return &Controller{
		loader:    loader,
		page:      page,
		opts:      opts,
		debouncer: debounce.New(opts.Debounce),
		requests:  make(chan string, requestBuffer),
		ready:     make(chan struct{}),
		state:     StateLoading,
	}
}

// Run loads the index and serves the event loop until ctx is done.
// A load failure is reported on the page and leaves the controller inert;
// it is not returned. All page writes happen on the goroutine calling Run.
func (c *Controller) Run(ctx context.Context) error {
	if !c.running.CompareAndSwap(false, true) {
		return siteerrors.InternalError("controller already running", nil)
	}
	defer c.debouncer.Stop()

	if c.loader == nil {
		c.fail(siteerrors.InternalError("no index loader configured", nil))
		<-ctx.Done()
		return nil
	}

	c.page.SetStatus(StatusLoadingText)

	start := time.Now()
	idx, err := c.loader.Load(ctx)
	if err == nil {
		var engine *search.Engine
		engine, err = search.NewEngine(idx, c.opts.Search)
		if err == nil {
			c.succeed(idx, engine)
		} else {
			_ = idx.Close()
		}
	}
	if err != nil {
		c.fail(err)
		<-ctx.Done()
		return nil
	}

	slog.Info("search_ready",
		slog.Int("documents", idx.DocCount()),
		slog.Int64("load_ms", time.Since(start).Milliseconds()),
	)

	if q := c.opts.InitialQuery; q != "" {
		c.page.SetQuery(q)
		c.execute(ctx, q)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case q, ok := <-c.debouncer.Output():
			if !ok {
				return nil
			}
			c.execute(ctx, q)
		case q := <-c.requests:
			// A programmatic search supersedes typing in progress.
			c.debouncer.Cancel()
			c.page.SetQuery(q)
			c.execute(ctx, q)
		}
	}
}

func (c *Controller) succeed(idx *index.Index, engine *search.Engine) {
	c.mu.Lock()
	c.idx = idx
	c.engine = engine
	c.state = StateReady
	c.mu.Unlock()

	c.page.SetStatus(Status{State: StateReady, Documents: idx.DocCount()}.Text())
	close(c.ready)
}

func (c *Controller) fail(err error) {
	c.mu.Lock()
	c.loadErr = err
	c.state = StateFailed
	c.mu.Unlock()

	slog.Warn("index_load_failed", siteerrors.LogAttrs(err)...)
	c.page.SetStatus(StatusFailedText)
	close(c.ready)
}

// execute runs one query and replaces the page results.
func (c *Controller) execute(ctx context.Context, q string) {
	results, ran, err := c.query(ctx, q)
	switch {
	case err != nil:
		slog.Warn("search_failed", append([]any{slog.String("query", q)}, siteerrors.LogAttrs(err)...)...)
		c.page.SetResults([]render.Result{})
	case !ran:
		c.page.ClearResults()
	default:
		c.page.SetResults(results)
	}
}

// query runs the engine and builds the view model. It expects readiness.
func (c *Controller) query(ctx context.Context, q string) ([]render.Result, bool, error) {
	c.mu.RLock()
	engine, idx := c.engine, c.idx
	c.mu.RUnlock()

	if engine == nil {
		return nil, false, siteerrors.New(siteerrors.ErrCodeIndexNotReady, "search index not ready", nil)
	}

	out, err := engine.Run(ctx, q)
	if err != nil {
		return nil, false, err
	}
	if out.Skipped {
		return nil, false, nil
	}
	return render.BuildView(out.Hits, idx.Documents(), out.Query, c.opts.SnippetLength), true, nil
}

// Input feeds a keystroke's query value through the debouncer.
// Input before readiness, or after a failed load, is ignored.
func (c *Controller) Input(q string) {
	if c.State() != StateReady {
		slog.Debug("input_ignored", slog.String("state", string(c.State())))
		return
	}
	c.debouncer.Add(q)
}

// Search triggers a search without debounce and reflects q into the page.
// It is ignored while the controller is not ready.
func (c *Controller) Search(q string) {
	if c.State() != StateReady {
		slog.Debug("search_ignored", slog.String("state", string(c.State())))
		return
	}
	select {
	case c.requests <- q:
	default:
		slog.Warn("search_request_dropped", slog.String("query", q))
	}
}

// Ready blocks until the load attempt has finished. It returns the load
// error when loading failed, or an index-not-ready error wrapping ctx's
// error when ctx ends first.
func (c *Controller) Ready(ctx context.Context) error {
	select {
	case <-c.ready:
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.loadErr
	case <-ctx.Done():
		return siteerrors.New(siteerrors.ErrCodeIndexNotReady, "search index not ready", ctx.Err())
	}
}

// Results waits for readiness and returns the view model for q without
// touching the page. ran is false when the query was too short to search.
// Safe for concurrent use.
func (c *Controller) Results(ctx context.Context, q string) (results []render.Result, ran bool, err error) {
	if err := c.Ready(ctx); err != nil {
		return nil, false, err
	}
	return c.query(ctx, q)
}

// State returns the lifecycle stage.
func (c *Controller) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Status returns a snapshot for health checks.
func (c *Controller) Status() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s := Status{State: c.state}
	if c.idx != nil {
		s.Documents = c.idx.DocCount()
		s.Fields = c.idx.Metadata().Fields()
	}
	if c.loadErr != nil {
		s.Error = c.loadErr.Error()
	}
	return s
}

// Close releases the index. Call it after Run has returned.
func (c *Controller) Close() error {
	c.mu.Lock()
	idx := c.idx
	c.mu.Unlock()

	if idx == nil {
		return nil
	}
	return idx.Close()
}
