// Package search ranks documents in a loaded site index against a user query.
//
// Queries are tokenized, combined with OR, matched as prefixes of indexed terms,
// and scored with fixed per-field boosts. Short queries never reach the index.
package search

import (
	"context"

	"github.com/Aman-CERP/sitesearch/internal/index"
)

// Searcher is the ranking capability the controller and adapters depend on.
type Searcher interface {
	// Run executes a query and reports whether ranking was skipped.
	Run(ctx context.Context, raw string) (Outcome, error)
}

// Outcome is the result of one query execution.
type Outcome struct {
	// Query is the trimmed query string.
	Query string
	// Tokens are the normalized query terms.
	Tokens []string
	// Hits are ordered by descending score, at most MaxResults long.
	Hits []index.Hit
	// Skipped is true when the query was too short to rank; results should be cleared.
	Skipped bool
	// Cached is true when hits came from the query cache.
	Cached bool
}

// Index is the subset of *index.Index the engine needs.
type Index interface {
	Search(ctx context.Context, req index.Request) ([]index.Hit, error)
	Metadata() index.Metadata
}
