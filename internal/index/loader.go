package index

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
	"github.com/Aman-CERP/sitesearch/pkg/version"
)

const (
	// DefaultIndexPath is where static site generators publish the English index.
	DefaultIndexPath = "/search_index.en.json"

	// MaxIndexBytes caps the size of a fetched index payload (64 MiB).
	MaxIndexBytes = 64 << 20

	// DefaultFetchTimeout bounds the index request when the caller's client has none.
	DefaultFetchTimeout = 30 * time.Second
)

// ResolveURL pins raw onto origin. Relative references resolve against origin;
// absolute references keep only their path and query, so an index URL can never
// point at another host.
func ResolveURL(raw string, origin *url.URL) (*url.URL, error) {
	if origin == nil || origin.Scheme == "" || origin.Host == "" {
		return nil, siteerrors.New(siteerrors.ErrCodeInvalidURL, "site origin must be an absolute URL", nil)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		raw = DefaultIndexPath
	}

	ref, err := url.Parse(raw)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeInvalidURL,
			fmt.Sprintf("invalid index URL %q", raw), err)
	}

	// Drop scheme, host and user info; keep only what addresses a resource on the origin.
	local := &url.URL{
		Path:     ref.Path,
		RawPath:  ref.RawPath,
		RawQuery: ref.RawQuery,
	}
	if local.Path == "" {
		local.Path = "/"
	}

	base := &url.URL{Scheme: origin.Scheme, Host: origin.Host, Path: origin.Path}
	resolved := base.ResolveReference(local)
	resolved.Scheme = origin.Scheme
	resolved.Host = origin.Host
	resolved.User = nil
	resolved.Fragment = ""

	return resolved, nil
}

// Loader fetches and builds the index over HTTP from the site's own origin.
type Loader struct {
	// Client performs the request. Nil uses a client with DefaultFetchTimeout.
	Client *http.Client
	// Origin is the site origin the index is pinned to.
	Origin *url.URL
	// Path is the configured index URL, relative or absolute.
	Path string
}

// NewLoader creates a loader for the index at path on origin.
func NewLoader(origin *url.URL, path string, client *http.Client) *Loader {
	return &Loader{Client: client, Origin: origin, Path: path}
}

// URL returns the origin-pinned index URL.
func (l *Loader) URL() (*url.URL, error) {
	return ResolveURL(l.Path, l.Origin)
}

// Load fetches, parses and builds the index. There is no retry.
func (l *Loader) Load(ctx context.Context) (*Index, error) {
	start := time.Now()

	data, err := l.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := Parse(data)
	if err != nil {
		return nil, err
	}

	idx, err := Build(payload)
	if err != nil {
		return nil, err
	}

	slog.Info("index_loaded",
		slog.Int("documents", idx.DocCount()),
		slog.Any("fields", idx.Metadata().Fields()),
		slog.Int("bytes", len(data)),
		slog.Duration("duration", time.Since(start)))

	return idx, nil
}

// Fetch performs the single GET for the index body.
func (l *Loader) Fetch(ctx context.Context) ([]byte, error) {
	target, err := l.URL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeInvalidURL, "failed to build index request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	slog.Debug("index_fetch_started", slog.String("url", target.String()))

	resp, err := client.Do(req)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexFetchFailed, "failed to fetch search index", err).
			WithDetail("url", target.String())
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexHTTPStatus,
			fmt.Sprintf("search index request returned %s", resp.Status), nil).
			WithDetail("url", target.String()).
			WithDetail("status", fmt.Sprintf("%d", resp.StatusCode))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxIndexBytes+1))
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexFetchFailed, "failed to read search index body", err).
			WithDetail("url", target.String())
	}
	if len(data) > MaxIndexBytes {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexTooLarge,
			fmt.Sprintf("search index exceeds %d bytes", MaxIndexBytes), nil)
	}

	return data, nil
}

// FileLoader builds the index from a local file, for tooling that works on a
// generated site directory before it is published.
type FileLoader struct {
	Path string
}

// Load reads, parses and builds the index.
func (f *FileLoader) Load(_ context.Context) (*Index, error) {
	return LoadFile(f.Path)
}

// LoadFile reads, parses and builds the index at path.
func LoadFile(path string) (*Index, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeFileNotFound,
			fmt.Sprintf("search index file %s not found", path), err)
	}
	if info.Size() > MaxIndexBytes {
		return nil, siteerrors.New(siteerrors.ErrCodeIndexTooLarge,
			fmt.Sprintf("search index exceeds %d bytes", MaxIndexBytes), nil)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, siteerrors.New(siteerrors.ErrCodeFileNotFound,
			fmt.Sprintf("failed to read search index file %s", path), err)
	}

	payload, err := Parse(data)
	if err != nil {
		return nil, err
	}
	idx, err := Build(payload)
	if err != nil {
		return nil, err
	}

	slog.Info("index_loaded",
		slog.String("path", path),
		slog.Int("documents", idx.DocCount()),
		slog.Any("fields", idx.Metadata().Fields()))

	return idx, nil
}
