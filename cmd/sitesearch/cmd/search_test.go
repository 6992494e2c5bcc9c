package cmd

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
)

func TestSearchCmd_RequiresQuery(t *testing.T) {
	isolate(t)

	_, err := execute(t, "search")

	require.Error(t, err)
}

func TestSearchCmd_RequiresOriginOrFile(t *testing.T) {
	// Given: no origin anywhere
	isolate(t)

	// When: searching
	_, err := execute(t, "search", "cats")

	// Then: a config error suggesting --origin or --file
	require.Error(t, err)
	assert.True(t, siteerrors.HasCode(err, siteerrors.ErrCodeConfigInvalid))
}

func TestSearchCmd_FromFile_Text(t *testing.T) {
	// Given: a local index file
	dir := isolate(t)
	path := writeIndex(t, dir)

	// When: searching for a prefix
	out, err := execute(t, "search", "--file", path, "cat")

	// Then: the matching page is listed with its link and highlighted snippet
	require.NoError(t, err)
	assert.Contains(t, out, " 1. Cats")
	assert.Contains(t, out, "/cats/")
	assert.Contains(t, out, "[Cat]s are great")
	assert.NotContains(t, out, "Dogs")
}

func TestSearchCmd_FromFile_JSON(t *testing.T) {
	dir := isolate(t)
	path := writeIndex(t, dir)

	out, err := execute(t, "search", "--file", path, "--format", "json", "static", "gen")

	require.NoError(t, err)
	var got searchResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "static gen", got.Query)
	assert.True(t, got.Searched)
	require.Len(t, got.Results, 1)
	assert.Equal(t, "/static-sites/", got.Results[0].Href)
	assert.Equal(t, "Static site generators", got.Results[0].Title)
	assert.Contains(t, got.Results[0].SnippetHTML, "<mark>")
}

func TestSearchCmd_ShortQuery(t *testing.T) {
	dir := isolate(t)
	path := writeIndex(t, dir)

	out, err := execute(t, "search", "--file", path, "--format", "json", "c")

	require.NoError(t, err)
	assert.Contains(t, out, `"searched": false`)
	assert.Contains(t, out, `"results": []`)
}

func TestSearchCmd_NoResults(t *testing.T) {
	dir := isolate(t)
	path := writeIndex(t, dir)

	out, err := execute(t, "search", "--file", path, "zebra")

	require.NoError(t, err)
	assert.Contains(t, out, "No results")
}

func TestSearchCmd_Limit(t *testing.T) {
	dir := isolate(t)
	path := writeIndex(t, dir)

	out, err := execute(t, "search", "--file", path, "--format", "json", "--limit", "1", "are")

	require.NoError(t, err)
	var got searchResult
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Len(t, got.Results, 1)
}

func TestSearchCmd_UnknownFormat(t *testing.T) {
	isolate(t)

	_, err := execute(t, "search", "--format", "xml", "cats")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")
}

func TestSearchCmd_FromOrigin(t *testing.T) {
	// Given: a site serving its index
	isolate(t)
	body := sampleIndex(t)
	site := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search_index.en.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer site.Close()

	// When: searching against the origin
	out, err := execute(t, "search", "--origin", site.URL, "dogs")

	// Then: results come from the fetched index
	require.NoError(t, err)
	assert.Contains(t, out, "Dogs")
}

func TestSearchCmd_IndexNotFound(t *testing.T) {
	isolate(t)
	site := httptest.NewServer(http.NotFoundHandler())
	defer site.Close()

	_, err := execute(t, "search", "--origin", site.URL, "dogs")

	require.Error(t, err)
	assert.True(t, siteerrors.HasCode(err, siteerrors.ErrCodeIndexHTTPStatus))
}
