package search

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/sitesearch/internal/index"
	"github.com/Aman-CERP/sitesearch/internal/query"
)

// ErrNilIndex is returned when an engine is created without an index.
var ErrNilIndex = errors.New("nil index")

// Engine executes ranked queries against one loaded index.
// The index is immutable, so results are cached per normalized query.
type Engine struct {
	idx    Index
	boosts map[string]float64
	opts   Options
	cache  *lru.Cache[string, []index.Hit]
	logger *slog.Logger
}

// Ensure Engine implements Searcher.
var _ Searcher = (*Engine)(nil)

// NewEngine creates an engine over idx. The weighting map is fixed at
// construction from the index's metadata.
func NewEngine(idx Index, opts Options) (*Engine, error) {
	if idx == nil {
		return nil, ErrNilIndex
	}
	opts = opts.withDefaults()

	e := &Engine{
		idx:    idx,
		boosts: BoostsFor(idx.Metadata()),
		opts:   opts,
		logger: slog.Default(),
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[string, []index.Hit](opts.CacheSize)
		if err != nil {
			return nil, err
		}
		e.cache = cache
	}
	return e, nil
}

// Boosts returns a copy of the field weighting used for every query.
func (e *Engine) Boosts() map[string]float64 {
	out := make(map[string]float64, len(e.boosts))
	for k, v := range e.boosts {
		out[k] = v
	}
	return out
}

// Search returns ranked hits for raw. Too-short queries return no hits.
func (e *Engine) Search(ctx context.Context, raw string) ([]index.Hit, error) {
	out, err := e.Run(ctx, raw)
	if err != nil {
		return nil, err
	}
	return out.Hits, nil
}

// Run executes raw and reports whether ranking was skipped.
func (e *Engine) Run(ctx context.Context, raw string) (Outcome, error) {
	q := query.Normalize(raw)
	out := Outcome{Query: q, Hits: []index.Hit{}}

	if utf8.RuneCountInString(q) < e.opts.MinQueryLength {
		out.Skipped = true
		out.Tokens = []string{}
		return out, nil
	}

	out.Tokens = query.Tokenize(q)
	key := cacheKey(out.Tokens)

	if e.cache != nil {
		if hits, ok := e.cache.Get(key); ok {
			out.Hits = hits
			out.Cached = true
			return out, nil
		}
	}

	start := time.Now()
	hits, err := e.idx.Search(ctx, index.Request{
		Tokens: out.Tokens,
		Boosts: e.boosts,
		Expand: true,
		Limit:  e.opts.MaxResults,
	})
	if err != nil {
		return Outcome{}, err
	}
	if len(hits) > e.opts.MaxResults {
		hits = hits[:e.opts.MaxResults]
	}

	e.logger.Debug("search_executed",
		slog.String("query", q),
		slog.Int("tokens", len(out.Tokens)),
		slog.Int("hits", len(hits)),
		slog.Duration("duration", time.Since(start)))

	if e.cache != nil {
		e.cache.Add(key, hits)
	}
	out.Hits = hits
	return out, nil
}

// cacheKey joins tokens so queries differing only in case or punctuation share an entry.
func cacheKey(tokens []string) string {
	n := 0
	for _, t := range tokens {
		n += len(t) + 1
	}
	b := make([]byte, 0, n)
	for _, t := range tokens {
		b = append(b, t...)
		b = append(b, 0)
	}
	return string(b)
}
