package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/sitesearch/internal/render"
)

func TestWriter_StatusMessages(t *testing.T) {
	// Given: a writer with a buffer
	buf := &bytes.Buffer{}
	w := New(buf)

	// When: printing each kind of message
	w.Status("🔍", "Loading index")
	w.Status("", "indented")
	w.Success("Ready")
	w.Warning("Slow origin")
	w.Error("Search failed to load")

	// Then: icons and messages appear in order
	out := buf.String()
	assert.Contains(t, out, "🔍 Loading index")
	assert.Contains(t, out, "   indented")
	assert.Contains(t, out, "✅ Ready")
	assert.Contains(t, out, "Slow origin")
	assert.Contains(t, out, "❌ Search failed to load")
}

func TestWriter_Statusf(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Statusf("📄", "%d documents indexed", 42)

	assert.Equal(t, "📄 42 documents indexed\n", buf.String())
}

func TestWriter_Results(t *testing.T) {
	// Given: two results, one with a snippet
	buf := &bytes.Buffer{}
	w := New(buf)
	results := []render.Result{
		{Title: "Cats", Href: "/cats/", SnippetHTML: "<mark>Cats</mark> &amp; kittens"},
		{Title: "Untitled", Href: "#"},
	}

	// When: printing
	w.Results("cat", results, true)

	// Then: results are numbered with plain highlights and unescaped text
	out := buf.String()
	assert.Contains(t, out, " 1. Cats")
	assert.Contains(t, out, "    /cats/")
	assert.Contains(t, out, "    [Cats] & kittens")
	assert.Contains(t, out, " 2. Untitled")
	assert.NotContains(t, out, "<mark>")
}

func TestWriter_ResultsEmpty(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Results("zebra", []render.Result{}, true)

	assert.Contains(t, buf.String(), render.NoResultsText)
}

func TestWriter_ResultsSkipped(t *testing.T) {
	buf := &bytes.Buffer{}
	New(buf).Results("a", nil, false)

	assert.Contains(t, buf.String(), "too short")
	assert.NotContains(t, buf.String(), render.NoResultsText)
}

func TestWriter_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, New(buf).JSON([]render.Result{{Title: "Cats", Href: "/cats/"}}))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Cats", got[0]["title"])
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
}
