package search

import "github.com/Aman-CERP/sitesearch/internal/index"

// Defaults for query execution.
const (
	// MinQueryLength is the shortest trimmed query (in characters) that is ranked.
	MinQueryLength = 2

	// MaxResults caps the number of hits per query.
	MaxResults = 20

	// DefaultCacheSize is the default number of distinct queries kept in the LRU cache.
	DefaultCacheSize = 256
)

// FieldBoosts are the static weights applied to matches in each field.
var FieldBoosts = map[string]float64{
	index.FieldTitle:       8,
	index.FieldSummary:     4,
	index.FieldDescription: 4,
	index.FieldBody:        2,
	index.FieldContent:     2,
}

// BoostsFor returns the weighting map restricted to fields present in meta.
// Absent fields are omitted rather than weighted zero.
func BoostsFor(meta index.Metadata) map[string]float64 {
	boosts := make(map[string]float64, len(FieldBoosts))
	for field, boost := range FieldBoosts {
		if meta.Has(field) {
			boosts[field] = boost
		}
	}
	return boosts
}

// Options configures an Engine.
type Options struct {
	// MinQueryLength overrides the shortest ranked query. Zero uses the default.
	MinQueryLength int
	// MaxResults overrides the hit cap. Zero uses the default.
	MaxResults int
	// CacheSize is the LRU size. Zero uses the default; negative disables caching.
	CacheSize int
}

func (o Options) withDefaults() Options {
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = MinQueryLength
	}
	if o.MaxResults <= 0 {
		o.MaxResults = MaxResults
	}
	if o.CacheSize == 0 {
		o.CacheSize = DefaultCacheSize
	}
	return o
}
