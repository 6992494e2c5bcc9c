package server

import (
	"bytes"
	"context"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Aman-CERP/sitesearch/internal/controller"
	siteerrors "github.com/Aman-CERP/sitesearch/internal/errors"
	"github.com/Aman-CERP/sitesearch/internal/query"
	"github.com/Aman-CERP/sitesearch/internal/render"
)

// searchResponse is the /api/search body.
type searchResponse struct {
	Query    string          `json:"query"`
	Searched bool            `json:"searched"`
	Results  []render.Result `json:"results"`
	Status   string          `json:"status"`
}

// errorResponse is the JSON error body.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status,omitempty"`
}

func (s *Server) results(c echo.Context) ([]render.Result, bool, error) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), s.opts.ReadyTimeout)
	defer cancel()
	return s.searcher.Results(ctx, c.QueryParam("q"))
}

// handlePage renders the full page. A q parameter is reflected into the
// input and its results are rendered server-side.
func (s *Server) handlePage(c echo.Context) error {
	q := c.QueryParam("q")
	data := pageData{
		Query:      q,
		DebounceMS: s.opts.Debounce.Milliseconds(),
	}

	if query.Normalize(q) != "" {
		results, ran, err := s.results(c)
		switch {
		case err != nil:
			slog.Debug("initial_search_failed", siteerrors.LogAttrs(err)...)
		case ran:
			var buf bytes.Buffer
			if err := render.HTML(&buf, results); err != nil {
				return err
			}
			data.Results = template.HTML(buf.String()) //nolint:gosec // produced by render.HTML
		}
	}

	status := s.searcher.Status()
	data.Status = status.Text()
	data.Failed = status.State == controller.StateFailed

	return c.Render(http.StatusOK, "page", data)
}

// handleFragment returns the results container content for q.
// Too-short queries return an empty body.
func (s *Server) handleFragment(c echo.Context) error {
	results, ran, err := s.results(c)
	if err != nil {
		return err
	}
	if !ran {
		return c.HTML(http.StatusOK, "")
	}

	var buf bytes.Buffer
	if err := render.HTML(&buf, results); err != nil {
		return err
	}
	return c.HTML(http.StatusOK, buf.String())
}

// handleAPI returns the view model for q as JSON.
func (s *Server) handleAPI(c echo.Context) error {
	results, ran, err := s.results(c)
	if err != nil {
		return err
	}
	if results == nil {
		results = []render.Result{}
	}
	return c.JSON(http.StatusOK, searchResponse{
		Query:    query.Normalize(c.QueryParam("q")),
		Searched: ran,
		Results:  results,
		Status:   s.searcher.Status().Text(),
	})
}

// handleHealth reports readiness: 200 when ready, 503 otherwise.
func (s *Server) handleHealth(c echo.Context) error {
	status := s.searcher.Status()
	code := http.StatusOK
	if status.State != controller.StateReady {
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, status)
}

func (s *Server) handleScript(c echo.Context) error {
	return c.Blob(http.StatusOK, "text/javascript; charset=utf-8", searchJS)
}

// handleError maps errors to responses. Search errors become 503 while the
// index is loading or failed to load.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) && siteerrors.GetCode(err) == "" {
		msg, _ := he.Message.(string)
		if msg == "" {
			msg = http.StatusText(he.Code)
		}
		_ = c.JSON(he.Code, errorResponse{Code: siteerrors.ErrCodeInternal, Message: msg})
		return
	}

	code := http.StatusInternalServerError
	if s.searcher.Status().State != controller.StateReady || siteerrors.HasCode(err, siteerrors.ErrCodeIndexNotReady) {
		code = http.StatusServiceUnavailable
	}

	resp := errorResponse{
		Code:    siteerrors.GetCode(err),
		Message: err.Error(),
		Status:  s.searcher.Status().Text(),
	}
	if resp.Code == "" {
		resp.Code = siteerrors.ErrCodeInternal
	}

	if c.Request().URL.Path == "/search" {
		_ = c.HTML(code, `<p class="search-empty">`+template.HTMLEscapeString(resp.Status)+`</p>`)
		return
	}
	_ = c.JSON(code, resp)
}
