package mcp

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Aman-CERP/sitesearch/internal/config"
	"github.com/Aman-CERP/sitesearch/internal/controller"
	"github.com/Aman-CERP/sitesearch/internal/query"
	"github.com/Aman-CERP/sitesearch/internal/render"
	"github.com/Aman-CERP/sitesearch/internal/search"
	"github.com/Aman-CERP/sitesearch/pkg/version"
)

const (
	// ServerName is the implementation name reported to clients.
	ServerName = "sitesearch"

	defaultLimit = 10

	// readyTimeout bounds how long a tool call waits for the index.
	readyTimeout = 30 * time.Second
)

// Tool names.
const (
	ToolSearchSite  = "search_site"
	ToolIndexStatus = "index_status"
)

// Searcher is the part of the controller the tools need.
type Searcher interface {
	Results(ctx context.Context, q string) ([]render.Result, bool, error)
	Status() controller.Status
}

// ToolInfo contains information about a registered tool.
type ToolInfo struct {
	Name        string
	Description string
}

var tools = []ToolInfo{
	{
		Name:        ToolSearchSite,
		Description: "Full-text search over the site's pages. Returns up to 20 pages ranked by relevance, each with its title, link and an excerpt around the first match. Words are matched by prefix, so partial words work.",
	},
	{
		Name:        ToolIndexStatus,
		Description: "Report whether the site's search index has loaded, how many pages it covers and which fields are searchable.",
	},
}

// Server is the MCP server for site search.
type Server struct {
	mcp      *mcp.Server
	searcher Searcher
	origin   *url.URL
	indexURL string
	logger   *slog.Logger
}

// NewServer creates a new MCP server over searcher. cfg supplies the site
// origin used to make result links absolute; it may be nil.
func NewServer(searcher Searcher, cfg *config.Config) (*Server, error) {
	if searcher == nil {
		return nil, errors.New("searcher is required")
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	s := &Server{
		searcher: searcher,
		indexURL: cfg.Site.IndexURL,
		logger:   slog.Default(),
	}
	if cfg.Site.Origin != "" {
		if origin, err := cfg.OriginURL(); err == nil {
			s.origin = origin
		}
	}

	s.mcp = mcp.NewServer(
		&mcp.Implementation{
			Name:    ServerName,
			Version: version.Short(),
		},
		nil,
	)
	s.registerTools()

	return s, nil
}

// MCPServer returns the underlying MCP server instance.
func (s *Server) MCPServer() *mcp.Server {
	return s.mcp
}

// ListTools returns all registered tools.
func (s *Server) ListTools() []ToolInfo {
	return append([]ToolInfo(nil), tools...)
}

// CallTool invokes a tool by name with loosely typed arguments. search_site
// returns markdown and index_status returns *IndexStatusOutput.
func (s *Server) CallTool(ctx context.Context, name string, args map[string]any) (any, error) {
	switch name {
	case ToolSearchSite:
		q, _ := args["query"].(string)
		limit := 0
		if l, ok := args["limit"].(float64); ok {
			limit = int(l)
		}
		out, err := s.search(ctx, SearchInput{Query: q, Limit: limit})
		if err != nil {
			return "", err
		}
		return FormatSearchResults(out.Query, out), nil
	case ToolIndexStatus:
		return s.indexStatus(), nil
	default:
		return nil, NewMethodNotFoundError(name)
	}
}

func (s *Server) registerTools() {
	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolSearchSite,
		Description: tools[0].Description,
	}, s.mcpSearchHandler)

	mcp.AddTool(s.mcp, &mcp.Tool{
		Name:        ToolIndexStatus,
		Description: tools[1].Description,
	}, s.mcpIndexStatusHandler)

	s.logger.Debug("mcp_tools_registered", slog.Int("count", len(tools)))
}

// search validates input and runs the query through the searcher.
func (s *Server) search(ctx context.Context, input SearchInput) (SearchOutput, error) {
	if strings.TrimSpace(input.Query) == "" {
		return SearchOutput{}, NewInvalidParamsError("query parameter is required and must be a non-empty string")
	}

	start := time.Now()
	requestID := generateRequestID()
	limit := clampLimit(input.Limit, defaultLimit, 1, search.MaxResults)

	ctx, cancel := context.WithTimeout(ctx, readyTimeout)
	defer cancel()

	results, ran, err := s.searcher.Results(ctx, input.Query)
	if err != nil {
		s.logger.Warn("mcp_search_failed",
			slog.String("request_id", requestID),
			slog.String("query", input.Query),
			slog.String("error", err.Error()))
		return SearchOutput{}, MapError(err)
	}

	out := SearchOutput{
		Query:    query.Normalize(input.Query),
		Searched: ran,
		Results:  make([]ResultOutput, 0, min(limit, len(results))),
	}
	for i, r := range results {
		if i == limit {
			break
		}
		out.Results = append(out.Results, toResultOutput(r, s.origin))
	}

	s.logger.Info("mcp_search_completed",
		slog.String("request_id", requestID),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		slog.Int("result_count", len(out.Results)))

	return out, nil
}

func (s *Server) indexStatus() *IndexStatusOutput {
	st := s.searcher.Status()
	return &IndexStatusOutput{
		State:     string(st.State),
		Status:    st.Text(),
		Documents: st.Documents,
		Fields:    st.Fields,
		IndexURL:  s.indexURL,
		Error:     st.Error,
	}
}

// mcpSearchHandler is the MCP SDK handler for the search_site tool.
func (s *Server) mcpSearchHandler(ctx context.Context, _ *mcp.CallToolRequest, input SearchInput) (
	*mcp.CallToolResult,
	SearchOutput,
	error,
) {
	out, err := s.search(ctx, input)
	if err != nil {
		return nil, SearchOutput{}, err
	}
	return nil, out, nil
}

// mcpIndexStatusHandler is the MCP SDK handler for the index_status tool.
func (s *Server) mcpIndexStatusHandler(_ context.Context, _ *mcp.CallToolRequest, _ IndexStatusInput) (
	*mcp.CallToolResult,
	*IndexStatusOutput,
	error,
) {
	return nil, s.indexStatus(), nil
}

// Serve runs the server over stdio until ctx is done or the client disconnects.
func (s *Server) Serve(ctx context.Context) error {
	s.logger.Info("mcp_server_started", slog.String("transport", "stdio"))

	err := s.mcp.Run(ctx, &mcp.StdioTransport{})
	if err != nil && !errors.Is(err, context.Canceled) {
		s.logger.Error("mcp_server_stopped", slog.String("error", err.Error()))
		return fmt.Errorf("mcp server: %w", err)
	}
	s.logger.Info("mcp_server_stopped")
	return nil
}

// clampLimit returns def for non-positive values, else v bounded to [lo, hi].
func clampLimit(v, def, lo, hi int) int {
	if v <= 0 {
		return def
	}
	return max(lo, min(v, hi))
}

// generateRequestID creates a short unique request ID for log correlation.
func generateRequestID() string {
	b := make([]byte, 4)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}
