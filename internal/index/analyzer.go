package index

import (
	"unicode/utf8"

	"github.com/blevesearch/bleve/v2/analysis"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/registry"

	"github.com/Aman-CERP/sitesearch/internal/query"
)

const (
	// SiteTokenizerName is the name of the tokenizer that splits like the query processor.
	SiteTokenizerName = "site_tokenizer"

	// SiteAnalyzerName is the name of the analyzer applied to every text field.
	SiteAnalyzerName = "site_analyzer"
)

func init() {
	_ = registry.RegisterTokenizer(SiteTokenizerName, siteTokenizerConstructor)
}

// analyzerConfig is the custom analyzer definition registered on each index mapping.
// Lowercasing happens in the token filter so stored offsets stay byte-accurate.
func analyzerConfig() map[string]interface{} {
	return map[string]interface{}{
		"type":      custom.Name,
		"tokenizer": SiteTokenizerName,
		"token_filters": []string{
			lowercase.Name,
		},
	}
}

func siteTokenizerConstructor(config map[string]interface{}, cache *registry.Cache) (analysis.Tokenizer, error) {
	return &siteTokenizer{}, nil
}

// siteTokenizer splits input on the same separators as query.Tokenize, so
// indexed terms and query tokens always line up.
type siteTokenizer struct{}

// Tokenize implements analysis.Tokenizer.
func (t *siteTokenizer) Tokenize(input []byte) analysis.TokenStream {
	result := make(analysis.TokenStream, 0, len(input)/6+1)
	pos := 1
	start := -1

	emit := func(end int) {
		result = append(result, &analysis.Token{
			Term:     input[start:end],
			Start:    start,
			End:      end,
			Position: pos,
			Type:     analysis.AlphaNumeric,
		})
		pos++
		start = -1
	}

	for i := 0; i < len(input); {
		r, size := utf8.DecodeRune(input[i:])
		if query.IsSeparator(r) {
			if start >= 0 {
				emit(i)
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		emit(len(input))
	}

	return result
}
