package controller

import (
	"log/slog"
	"sync"

	"github.com/Aman-CERP/sitesearch/internal/render"
)

// Status texts shown by the page's status element.
const (
	StatusLoadingText = "Loading search index…"
	StatusFailedText  = "Search failed to load"
)

// Page is the narrow surface the controller writes to: a status element,
// a query input and a results container.
type Page interface {
	// SetStatus replaces the status text.
	SetStatus(text string)
	// SetQuery reflects a query into the input control.
	SetQuery(q string)
	// SetResults replaces the whole results container. An empty slice is
	// displayed as the "No results" placeholder.
	SetResults(results []render.Result)
	// ClearResults empties the results container.
	ClearResults()
}

// LogPage is a Page for headless hosts. It records the last state and logs
// each change at debug level.
type LogPage struct {
	mu      sync.Mutex
	status  string
	query   string
	results []render.Result
}

// SetStatus implements Page.
func (p *LogPage) SetStatus(text string) {
	p.mu.Lock()
	p.status = text
	p.mu.Unlock()
	slog.Debug("page_status", slog.String("status", text))
}

// SetQuery implements Page.
func (p *LogPage) SetQuery(q string) {
	p.mu.Lock()
	p.query = q
	p.mu.Unlock()
	slog.Debug("page_query", slog.String("query", q))
}

// SetResults implements Page.
func (p *LogPage) SetResults(results []render.Result) {
	p.mu.Lock()
	p.results = results
	p.mu.Unlock()
	slog.Debug("page_results", slog.Int("count", len(results)))
}

// ClearResults implements Page.
func (p *LogPage) ClearResults() {
	p.mu.Lock()
	p.results = nil
	p.mu.Unlock()
	slog.Debug("page_results_cleared")
}

// Snapshot returns the last status, query and results.
func (p *LogPage) Snapshot() (status, query string, results []render.Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status, p.query, p.results
}
