package index

import (
	"sort"
	"strings"
)

// Field names understood by the index and the result renderer.
const (
	FieldTitle       = "title"
	FieldSummary     = "summary"
	FieldDescription = "description"
	FieldContent     = "content"
	FieldBody        = "body"
)

// TextFields lists the free-text fields a Document can carry, in indexing order.
var TextFields = []string{FieldTitle, FieldSummary, FieldDescription, FieldContent, FieldBody}

// Document is one page of the site as stored in the published index.
type Document struct {
	ID          string `json:"id,omitempty"`
	Permalink   string `json:"permalink,omitempty"`
	URL         string `json:"url,omitempty"`
	Title       string `json:"title,omitempty"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	Content     string `json:"content,omitempty"`
	Body        string `json:"body,omitempty"`
}

// Field returns the value of a named text field, or "" for unknown names.
func (d Document) Field(name string) string {
	switch name {
	case FieldTitle:
		return d.Title
	case FieldSummary:
		return d.Summary
	case FieldDescription:
		return d.Description
	case FieldContent:
		return d.Content
	case FieldBody:
		return d.Body
	default:
		return ""
	}
}

// DocumentStore maps reference identifiers to documents.
// It is immutable once built.
type DocumentStore struct {
	docs map[string]Document
	refs []string
}

// NewDocumentStore copies docs into a new store.
func NewDocumentStore(docs map[string]Document) *DocumentStore {
	s := &DocumentStore{
		docs: make(map[string]Document, len(docs)),
		refs: make([]string, 0, len(docs)),
	}
	for ref, doc := range docs {
		s.docs[ref] = doc
		s.refs = append(s.refs, ref)
	}
	sort.Strings(s.refs)
	return s
}

// Get returns the document for ref.
func (s *DocumentStore) Get(ref string) (Document, bool) {
	if s == nil {
		return Document{}, false
	}
	doc, ok := s.docs[ref]
	return doc, ok
}

// Len returns the number of documents.
func (s *DocumentStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.docs)
}

// Refs returns all references in the store's stable order (lexicographic).
func (s *DocumentStore) Refs() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.refs))
	copy(out, s.refs)
	return out
}

// Metadata describes which fields the loaded index carries.
type Metadata struct {
	fields map[string]struct{}
}

// NewMetadata builds a field set. Names are lowercased and blanks dropped.
func NewMetadata(fields ...string) Metadata {
	m := Metadata{fields: make(map[string]struct{}, len(fields))}
	for _, f := range fields {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			m.fields[f] = struct{}{}
		}
	}
	return m
}

// Has reports whether field is available in the index.
func (m Metadata) Has(field string) bool {
	_, ok := m.fields[field]
	return ok
}

// Fields returns the available field names, sorted.
func (m Metadata) Fields() []string {
	out := make([]string, 0, len(m.fields))
	for f := range m.fields {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Hit is a scored reference to a matching document.
type Hit struct {
	Ref   string  `json:"ref"`
	Score float64 `json:"score"`
}
