package render

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/Aman-CERP/sitesearch/internal/index"
)

const (
	// UntitledText is shown for results without a title or permalink.
	UntitledText = "Untitled"

	// FallbackHref is the link target when nothing better is known.
	FallbackHref = "#"
)

// snippetFields is the priority order for choosing snippet source text.
var snippetFields = []string{index.FieldSummary, index.FieldDescription, index.FieldContent, index.FieldBody}

// Result is one entry of the results view model.
type Result struct {
	Ref         string  `json:"ref"`
	Href        string  `json:"href"`
	Title       string  `json:"title"`
	SnippetHTML string  `json:"snippet_html,omitempty"`
	Score       float64 `json:"score"`
}

// Snippet returns the highlighted snippet as trusted markup for html/template.
func (r Result) Snippet() template.HTML {
	return template.HTML(r.SnippetHTML) //nolint:gosec // built from escaped text by BuildSnippet
}

// Documents resolves hit references to documents.
type Documents interface {
	Get(ref string) (index.Document, bool)
}

// BuildView resolves each hit to a result, in hit order.
// Missing documents render with placeholder title and link.
func BuildView(hits []index.Hit, docs Documents, q string, snippetLen int) []Result {
	results := make([]Result, 0, len(hits))
	for _, hit := range hits {
		var doc index.Document
		if docs != nil {
			doc, _ = docs.Get(hit.Ref)
		}

		r := Result{
			Ref:   hit.Ref,
			Href:  ResolveHref(doc, hit.Ref),
			Title: ResolveTitle(doc),
			Score: hit.Score,
		}
		if source := SnippetSource(doc); source != "" {
			r.SnippetHTML = BuildSnippet(source, q, snippetLen)
		}
		results = append(results, r)
	}
	return results
}

// ResolveHref picks the link target: permalink, url, then the reference itself
// when it addresses a page, else "#".
func ResolveHref(doc index.Document, ref string) string {
	switch {
	case doc.Permalink != "":
		return doc.Permalink
	case doc.URL != "":
		return doc.URL
	case isLinkRef(ref):
		return ref
	default:
		return FallbackHref
	}
}

// isLinkRef reports whether a reference is usable as a link: a root-relative
// path or an absolute http(s) URL.
func isLinkRef(ref string) bool {
	if ref == "" {
		return false
	}
	if strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//") {
		return true
	}
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// ResolveTitle picks the link text: title, permalink, then "Untitled".
func ResolveTitle(doc index.Document) string {
	switch {
	case doc.Title != "":
		return doc.Title
	case doc.Permalink != "":
		return doc.Permalink
	default:
		return UntitledText
	}
}

// SnippetSource returns the first non-empty of summary, description, content, body.
func SnippetSource(doc index.Document) string {
	for _, f := range snippetFields {
		if v := doc.Field(f); v != "" {
			return v
		}
	}
	return ""
}
