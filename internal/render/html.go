package render

import (
	"bytes"
	"html/template"
	"io"
)

// NoResultsText is the placeholder shown for an empty result list.
const NoResultsText = "No results"

var resultsTemplate = template.Must(template.New("results").Parse(
	`{{if not .}}<p class="search-empty">` + NoResultsText + `</p>` +
		`{{else}}<ul class="search-results">` +
		`{{range .}}<li class="search-result"><a href="{{.Href}}">{{.Title}}</a>` +
		`{{if .SnippetHTML}}<p class="search-snippet">{{.Snippet}}</p>{{end}}</li>{{end}}` +
		`</ul>{{end}}`))

// HTML writes the complete content of the results container.
// Link targets and titles are escaped; snippets are already escaped markup.
func HTML(w io.Writer, results []Result) error {
	return resultsTemplate.Execute(w, results)
}

// HTMLString renders results to a string.
func HTMLString(results []Result) string {
	var buf bytes.Buffer
	if err := HTML(&buf, results); err != nil {
		return ""
	}
	return buf.String()
}
