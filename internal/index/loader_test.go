package index

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
)

func mustURL(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

func TestResolveURL(t *testing.T) {
	origin := mustURL(t, "https://blog.example.com")

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "default", raw: "", want: "https://blog.example.com/search_index.en.json"},
		{name: "root relative", raw: "/search_index.fr.json", want: "https://blog.example.com/search_index.fr.json"},
		{name: "relative", raw: "search_index.en.json", want: "https://blog.example.com/search_index.en.json"},
		{name: "same origin absolute", raw: "https://blog.example.com/idx.json", want: "https://blog.example.com/idx.json"},
		{name: "foreign host pinned", raw: "https://evil.example.net/steal.json?x=1", want: "https://blog.example.com/steal.json?x=1"},
		{name: "scheme mismatch pinned", raw: "http://blog.example.com/idx.json", want: "https://blog.example.com/idx.json"},
		{name: "protocol relative pinned", raw: "//cdn.example.org/idx.json", want: "https://blog.example.com/idx.json"},
		{name: "user info and fragment dropped", raw: "https://u:p@x.org/idx.json#top", want: "https://blog.example.com/idx.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveURL(tt.raw, origin)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestResolveURL_RelativeToSubpathOrigin(t *testing.T) {
	// Given: a site served under a sub-path
	origin := mustURL(t, "https://example.com/docs/")

	// When: resolving a relative index URL
	got, err := ResolveURL("search_index.en.json", origin)

	// Then: it resolves under the sub-path
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/docs/search_index.en.json", got.String())
}

func TestResolveURL_RequiresAbsoluteOrigin(t *testing.T) {
	_, err := ResolveURL("/idx.json", nil)
	require.Error(t, err)
	assert.Equal(t, siteerrors.ErrCodeInvalidURL, siteerrors.GetCode(err))

	_, err = ResolveURL("/idx.json", mustURL(t, "/relative"))
	require.Error(t, err)
}

func TestLoader_Load_Success(t *testing.T) {
	// Given: a site serving an index
	body := zolaIndex(t, []string{"title", "body"}, map[string]Document{
		"/cats/": {Title: "Cats", Body: "Cats are great pets"},
		"/dogs/": {Title: "Dogs", Body: "Dogs are loyal"},
	})
	var gotPath, gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(body)
	}))
	defer srv.Close()

	// When: loading through a foreign absolute URL
	loader := NewLoader(mustURL(t, srv.URL), "https://elsewhere.example/search_index.en.json", srv.Client())
	idx, err := loader.Load(context.Background())

	// Then: the request stayed on the origin and the index was built
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()
	assert.Equal(t, "/search_index.en.json", gotPath)
	assert.Equal(t, "application/json", gotAccept)
	assert.Equal(t, 2, idx.DocCount())
}

func TestLoader_Load_HTTPStatusError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	loader := NewLoader(mustURL(t, srv.URL), "", srv.Client())
	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, siteerrors.ErrCodeIndexHTTPStatus, siteerrors.GetCode(err))
	var se *siteerrors.SiteError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "404", se.Details["status"])
}

func TestLoader_Load_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	loader := NewLoader(mustURL(t, srv.URL), "", srv.Client())
	_, err := loader.Load(context.Background())

	require.Error(t, err)
	assert.Equal(t, siteerrors.ErrCodeIndexMalformed, siteerrors.GetCode(err))
}

func TestLoader_Load_NetworkFailure(t *testing.T) {
	// Given: a server that is already gone
	srv := httptest.NewServer(http.NotFoundHandler())
	origin := mustURL(t, srv.URL)
	srv.Close()

	// When: loading
	_, err := NewLoader(origin, "", nil).Load(context.Background())

	// Then: a retryable fetch error is reported
	require.Error(t, err)
	assert.Equal(t, siteerrors.ErrCodeIndexFetchFailed, siteerrors.GetCode(err))
	assert.True(t, siteerrors.IsRetryable(err))
}

func TestLoader_Load_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(mustURL(t, srv.URL), "", srv.Client()).Load(ctx)

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadFile(t *testing.T) {
	// Given: an index written next to a generated site
	dir := t.TempDir()
	path := filepath.Join(dir, "search_index.en.json")
	require.NoError(t, os.WriteFile(path, zolaIndex(t, []string{"title"}, map[string]Document{
		"/a/": {Title: "A"},
	}), 0o644))

	// When: loading through the file loader
	idx, err := (&FileLoader{Path: path}).Load(context.Background())

	// Then: the index is ready
	require.NoError(t, err)
	defer func() { _ = idx.Close() }()
	assert.Equal(t, 1, idx.DocCount())
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))

	require.Error(t, err)
	assert.Equal(t, siteerrors.ErrCodeFileNotFound, siteerrors.GetCode(err))
}
