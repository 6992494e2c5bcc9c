// Package ui provides the terminal search page and terminal styling helpers.
package ui

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/Aman-CERP/sitesearch/internal/render"
)

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}

// UseColor reports whether w should receive styled output.
func UseColor(w io.Writer) bool {
	return IsTTY(w) && !DetectNoColor() && !DetectCI()
}

// StylesFor returns colored styles for terminals and plain styles otherwise.
func StylesFor(w io.Writer) Styles {
	return GetStyles(!UseColor(w))
}

// Highlighter returns a render.Highlighter for s. Plain styles fall back to
// bracketing matches so they stay visible without color.
func Highlighter(s Styles, color bool) render.Highlighter {
	if !color {
		return func(text string) string { return "[" + text + "]" }
	}
	return func(text string) string { return s.Highlight.Render(text) }
}
