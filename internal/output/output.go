// Package output formats command-line results and status messages.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Aman-CERP/sitesearch/internal/render"
	"github.com/Aman-CERP/sitesearch/internal/ui"
)

// Writer provides formatted output for CLI.
type Writer struct {
	out    io.Writer
	styles ui.Styles
	color  bool
}

// New creates a Writer. Color is used only when out is a terminal.
func New(out io.Writer) *Writer {
	color := ui.UseColor(out)
	return &Writer{
		out:    out,
		styles: ui.GetStyles(!color),
		color:  color,
	}
}

// Status prints a status message with an icon.
// Errors from writing are intentionally ignored for console output.
func (w *Writer) Status(icon, msg string) {
	if icon != "" {
		_, _ = fmt.Fprintf(w.out, "%s %s\n", icon, msg)
	} else {
		_, _ = fmt.Fprintf(w.out, "   %s\n", msg)
	}
}

// Statusf prints a formatted status message with an icon.
func (w *Writer) Statusf(icon, format string, args ...any) {
	w.Status(icon, fmt.Sprintf(format, args...))
}

// Success prints a success message with checkmark.
func (w *Writer) Success(msg string) {
	w.Status("✅", msg)
}

// Warning prints a warning message.
func (w *Writer) Warning(msg string) {
	w.Status("⚠️ ", w.styles.Warning.Render(msg))
}

// Error prints an error message.
func (w *Writer) Error(msg string) {
	w.Status("❌", w.styles.Error.Render(msg))
}

// Newline prints an empty line.
func (w *Writer) Newline() {
	_, _ = fmt.Fprintln(w.out)
}

// Results prints a ranked result list. ran is false when the query was too
// short to search, in which case nothing is listed.
func (w *Writer) Results(query string, results []render.Result, ran bool) {
	if !ran {
		w.Warning(fmt.Sprintf("query %q is too short to search", query))
		return
	}
	if len(results) == 0 {
		w.Status("🔍", render.NoResultsText)
		return
	}

	hl := ui.Highlighter(w.styles, w.color)
	for i, r := range results {
		_, _ = fmt.Fprintf(w.out, "%2d. %s\n", i+1, w.styles.Title.Render(r.Title))
		_, _ = fmt.Fprintf(w.out, "    %s\n", w.styles.Link.Render(r.Href))
		if r.SnippetHTML != "" {
			_, _ = fmt.Fprintf(w.out, "    %s\n", render.Terminal(r.SnippetHTML, hl))
		}
		if i < len(results)-1 {
			w.Newline()
		}
	}
}

// JSON prints v as indented JSON.
func (w *Writer) JSON(v any) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
