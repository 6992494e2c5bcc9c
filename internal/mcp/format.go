package mcp

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Aman-CERP/sitesearch/internal/render"
)

// FormatSearchResults formats results as markdown.
func FormatSearchResults(q string, out SearchOutput) string {
	if !out.Searched {
		return fmt.Sprintf("Query \"%s\" is too short to search.", q)
	}
	if len(out.Results) == 0 {
		return fmt.Sprintf("No results found for \"%s\"", q)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## Search Results for \"%s\"\n\n", q)
	fmt.Fprintf(&sb, "Found %d result", len(out.Results))
	if len(out.Results) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString("\n\n")

	for i, r := range out.Results {
		fmt.Fprintf(&sb, "### %d. [%s](%s)\n", i+1, r.Title, r.URL)
		fmt.Fprintf(&sb, "**Score:** %.2f\n\n", r.Score)
		if r.Snippet != "" {
			sb.WriteString("> ")
			sb.WriteString(r.Snippet)
			sb.WriteString("\n\n")
		}
	}

	return sb.String()
}

// toResultOutput converts a view-model result for MCP clients. Site-relative
// links are resolved against origin when it is set.
func toResultOutput(r render.Result, origin *url.URL) ResultOutput {
	return ResultOutput{
		Title:   r.Title,
		URL:     absoluteURL(origin, r.Href),
		Snippet: render.PlainText(r.SnippetHTML),
		Score:   r.Score,
	}
}

func absoluteURL(origin *url.URL, href string) string {
	if origin == nil || href == render.FallbackHref {
		return href
	}
	ref, err := url.Parse(href)
	if err != nil {
		return href
	}
	return origin.ResolveReference(ref).String()
}
