package render

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTML_EmptyRendersPlaceholder(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, HTML(&buf, nil))
	assert.Equal(t, `<p class="search-empty">No results</p>`, buf.String())

	assert.Equal(t, `<p class="search-empty">No results</p>`, HTMLString([]Result{}))
}

func TestHTML_RendersResultList(t *testing.T) {
	// Given: one result with a snippet and one without
	results := []Result{
		{Href: "/cats/", Title: "Cats", SnippetHTML: "<mark>Cats</mark> are great pets"},
		{Href: "#", Title: "Untitled"},
	}

	// When: rendering
	out := HTMLString(results)

	// Then: every result is a list item and only the first has a snippet
	assert.Contains(t, out, `<ul class="search-results">`)
	assert.Contains(t, out, `<a href="/cats/">Cats</a>`)
	assert.Contains(t, out, `<p class="search-snippet"><mark>Cats</mark> are great pets</p>`)
	assert.Contains(t, out, `<a href="#">Untitled</a>`)
	assert.Equal(t, 2, bytes.Count([]byte(out), []byte(`<li class="search-result">`)))
	assert.Equal(t, 1, bytes.Count([]byte(out), []byte(`search-snippet`)))
}

func TestHTML_EscapesTitleAndHref(t *testing.T) {
	results := []Result{{Href: `/a/"onmouseover="x`, Title: "<script>alert(1)</script>"}}

	out := HTMLString(results)

	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
	assert.NotContains(t, out, `"onmouseover="`)
}

func TestHTML_UnsafeSchemeIsNeutralised(t *testing.T) {
	out := HTMLString([]Result{{Href: "javascript:alert(1)", Title: "x"}})

	assert.NotContains(t, out, "javascript:")
}
