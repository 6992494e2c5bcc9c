package server

import (
	_ "embed"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

var (
	//go:embed assets/page.html
	pageHTML string

	//go:embed assets/search.js
	searchJS []byte
)

// pageData feeds assets/page.html.
type pageData struct {
	Query      string
	Status     string
	Failed     bool
	Results    template.HTML
	DebounceMS int64
}

// pageRenderer adapts html/template to echo.Renderer.
type pageRenderer struct {
	templates *template.Template
}

func newPageRenderer() *pageRenderer {
	return &pageRenderer{
		templates: template.Must(template.New("page").Parse(pageHTML)),
	}
}

// Render implements echo.Renderer.
func (r *pageRenderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
