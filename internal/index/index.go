// Package index loads a static site's published search index and makes it queryable.
//
// The published payload is parsed into a DocumentStore and an explicit Metadata
// field set, and the documents are indexed into an in-memory bleve index that
// lives for the lifetime of the process. Nothing is written to disk.
package index

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
)

// Index is a loaded, read-only search index.
type Index struct {
	bleve bleve.Index
	docs  *DocumentStore
	meta  Metadata

	closeOnce sync.Once
}

// Request describes one ranked query against the index.
type Request struct {
	// Tokens are normalized query terms, combined with OR.
	Tokens []string
	// Boosts maps field name to its weight. Only listed fields are searched.
	Boosts map[string]float64
	// Expand matches tokens as prefixes of indexed terms instead of exact terms.
	Expand bool
	// Limit caps the number of hits. Zero means no hits.
	Limit int
}

// Build indexes a parsed payload into a new in-memory index.
func Build(p *Payload) (*Index, error) {
	if p == nil {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexBuildFailed, "nil payload", nil)
	}

	meta := NewMetadata(p.Fields...)
	indexMapping, err := createIndexMapping(meta)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexBuildFailed, "failed to create index mapping", err)
	}

	idx, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexBuildFailed, "failed to create index", err)
	}

	batch := idx.NewBatch()
	for ref, doc := range p.Docs {
		fields := make(map[string]interface{}, len(TextFields))
		for _, f := range TextFields {
			if !meta.Has(f) {
				continue
			}
			if v := doc.Field(f); v != "" {
				fields[f] = v
			}
		}
		if err := batch.Index(ref, fields); err != nil {
			_ = idx.Close()
			return nil, siteerrors.New(siteerrors.ErrCodeIndexBuildFailed,
				fmt.Sprintf("failed to index document %s", ref), err)
		}
	}
	if err := idx.Batch(batch); err != nil {
		_ = idx.Close()
		return nil, siteerrors.New(siteerrors.ErrCodeIndexBuildFailed, "failed to execute batch", err)
	}

	return &Index{
		bleve: idx,
		docs:  NewDocumentStore(p.Docs),
		meta:  meta,
	}, nil
}

// createIndexMapping maps every known text field present in meta with the site analyzer.
func createIndexMapping(meta Metadata) (*mapping.IndexMappingImpl, error) {
	indexMapping := bleve.NewIndexMapping()

	if err := indexMapping.AddCustomAnalyzer(SiteAnalyzerName, analyzerConfig()); err != nil {
		return nil, fmt.Errorf("failed to add custom analyzer: %w", err)
	}
	indexMapping.DefaultAnalyzer = SiteAnalyzerName

	docMapping := bleve.NewDocumentMapping()
	docMapping.Dynamic = false
	for _, f := range TextFields {
		if !meta.Has(f) {
			continue
		}
		fm := bleve.NewTextFieldMapping()
		fm.Analyzer = SiteAnalyzerName
		fm.Store = false
		fm.IncludeInAll = false
		docMapping.AddFieldMappingsAt(f, fm)
	}
	indexMapping.DefaultMapping = docMapping

	return indexMapping, nil
}

// Search runs a ranked OR query. Hits are ordered by descending score; equal
// scores keep the store's native order (ascending reference).
func (i *Index) Search(ctx context.Context, req Request) ([]Hit, error) {
	if req.Limit <= 0 || len(req.Tokens) == 0 || len(req.Boosts) == 0 {
		return []Hit{}, nil
	}

	clauses := make([]query.Query, 0, len(req.Tokens)*len(req.Boosts))
	for _, token := range req.Tokens {
		if token == "" {
			continue
		}
		for _, field := range TextFields {
			boost, ok := req.Boosts[field]
			if !ok || !i.meta.Has(field) {
				continue
			}
			clauses = append(clauses, termClause(token, field, boost, req.Expand))
		}
	}
	if len(clauses) == 0 {
		return []Hit{}, nil
	}

	disjunction := bleve.NewDisjunctionQuery(clauses...)
	disjunction.SetMin(1)

	searchRequest := bleve.NewSearchRequestOptions(disjunction, req.Limit, 0, false)
	searchRequest.SortBy([]string{"-_score", "_id"})

	result, err := i.bleve.SearchInContext(ctx, searchRequest)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeSearchFailed, "search failed", err)
	}

	hits := make([]Hit, 0, len(result.Hits))
	for _, h := range result.Hits {
		hits = append(hits, Hit{Ref: h.ID, Score: h.Score})
	}
	return hits, nil
}

// termClause matches a single token in one field, exactly or as a prefix.
func termClause(token, field string, boost float64, expand bool) query.Query {
	if expand {
		q := bleve.NewPrefixQuery(token)
		q.SetField(field)
		q.SetBoost(boost)
		return q
	}
	q := bleve.NewTermQuery(token)
	q.SetField(field)
	q.SetBoost(boost)
	return q
}

// Metadata returns the set of fields the index carries.
func (i *Index) Metadata() Metadata {
	return i.meta
}

// Documents returns the document store.
func (i *Index) Documents() *DocumentStore {
	return i.docs
}

// DocCount returns the number of indexed documents.
func (i *Index) DocCount() int {
	return i.docs.Len()
}

// Close releases the underlying bleve index. Safe to call multiple times.
func (i *Index) Close() error {
	var err error
	i.closeOnce.Do(func() {
		if i.bleve != nil {
			err = i.bleve.Close()
		}
	})
	return err
}
