package index

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
)

// Payload is the parsed, engine-independent content of a published index.
type Payload struct {
	// Fields are the field names the generator declared (or that were inferred).
	Fields []string
	// Ref is the name of the document key used as reference.
	Ref string
	// Docs maps reference to document.
	Docs map[string]Document
}

// rawIndex covers both accepted layouts:
//   - elasticlunr: {"fields": [...], "ref": "id", "documentStore": {"docs": {ref: doc}}}
//   - flat: {"fields": [...], "ref": "id", "docs": [doc, ...]}
type rawIndex struct {
	Version       string            `json:"version"`
	Fields        []string          `json:"fields"`
	Ref           string            `json:"ref"`
	DocumentStore *rawDocumentStore `json:"documentStore"`
	Docs          []json.RawMessage `json:"docs"`
}

type rawDocumentStore struct {
	Docs map[string]json.RawMessage `json:"docs"`
	Save *bool                      `json:"save"`
}

// Parse decodes a published search index.
// Payloads that carry neither a document store nor a flat document list are rejected.
func Parse(data []byte) (*Payload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexMalformed, "search index is empty", nil)
	}

	var raw rawIndex
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexMalformed, "search index is not valid JSON", err)
	}

	p := &Payload{
		Fields: raw.Fields,
		Ref:    raw.Ref,
		Docs:   make(map[string]Document),
	}
	if p.Ref == "" {
		p.Ref = "id"
	}

	switch {
	case raw.DocumentStore != nil:
		if raw.DocumentStore.Docs == nil {
			se := siteerrors.New(siteerrors.ErrCodeIndexMalformed, "search index has no stored documents", nil)
			if raw.DocumentStore.Save != nil && !*raw.DocumentStore.Save {
				se.WithSuggestion("rebuild the index with document saving enabled")
			}
			return nil, se
		}
		for ref, msg := range raw.DocumentStore.Docs {
			var doc Document
			if err := json.Unmarshal(msg, &doc); err != nil {
				return nil, siteerrors.New(siteerrors.ErrCodeIndexMalformed,
					fmt.Sprintf("document %q is malformed", ref), err)
			}
			p.Docs[ref] = doc
		}

	case raw.Docs != nil:
		for i, msg := range raw.Docs {
			doc, ref, err := decodeFlatDoc(msg, p.Ref)
			if err != nil {
				return nil, siteerrors.New(siteerrors.ErrCodeIndexMalformed,
					fmt.Sprintf("document %d is malformed", i), err)
			}
			if ref == "" {
				return nil, siteerrors.New(siteerrors.ErrCodeIndexMalformed,
					fmt.Sprintf("document %d has no %q reference", i, p.Ref), nil)
			}
			p.Docs[ref] = doc
		}

	default:
		return nil, siteerrors.New(siteerrors.ErrCodeIndexMalformed,
			"search index has neither documentStore nor docs", nil)
	}

	if len(p.Fields) == 0 {
		p.Fields = inferFields(p.Docs)
	}
	for i, f := range p.Fields {
		p.Fields[i] = strings.ToLower(strings.TrimSpace(f))
	}

	return p, nil
}

// decodeFlatDoc decodes one entry of the flat layout and extracts its reference.
// The declared ref key wins, then permalink, then url.
func decodeFlatDoc(msg json.RawMessage, refKey string) (Document, string, error) {
	var doc Document
	if err := json.Unmarshal(msg, &doc); err != nil {
		return Document{}, "", err
	}

	var keys map[string]any
	if err := json.Unmarshal(msg, &keys); err != nil {
		return Document{}, "", err
	}

	if v, ok := keys[refKey]; ok {
		switch ref := v.(type) {
		case string:
			return doc, ref, nil
		case float64:
			return doc, fmt.Sprintf("%v", ref), nil
		}
	}
	if doc.Permalink != "" {
		return doc, doc.Permalink, nil
	}
	return doc, doc.URL, nil
}

// inferFields returns the text fields that are non-empty in at least one document.
func inferFields(docs map[string]Document) []string {
	var fields []string
	for _, f := range TextFields {
		for _, doc := range docs {
			if doc.Field(f) != "" {
				fields = append(fields, f)
				break
			}
		}
	}
	return fields
}
