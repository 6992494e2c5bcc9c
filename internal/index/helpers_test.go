package index

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

// zolaIndex renders docs in the elasticlunr layout static site generators publish.
func zolaIndex(t *testing.T, fields []string, docs map[string]Document) []byte {
	t.Helper()
	payload := map[string]any{
		"version": "0.9.5",
		"fields":  fields,
		"ref":     "id",
		"pipeline": []string{
			"trimmer", "stopWordFilter", "stemmer",
		},
		"documentStore": map[string]any{
			"docs":   docs,
			"length": len(docs),
			"save":   true,
		},
		"index": map[string]any{},
	}
	data, err := json.Marshal(payload)
	require.NoError(t, err)
	return data
}

// buildIndex parses and builds an index from docs, closing it when the test ends.
func buildIndex(t *testing.T, fields []string, docs map[string]Document) *Index {
	t.Helper()
	p, err := Parse(zolaIndex(t, fields, docs))
	require.NoError(t, err)
	idx, err := Build(p)
	require.NoError(t, err)
	t.Cleanup(func() { _ = idx.Close() })
	return idx
}
