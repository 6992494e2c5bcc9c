package render

import (
	"html"
	"strings"
)

// Highlighter styles a highlighted run of text for display.
type Highlighter func(string) string

// Terminal converts snippet markup to display text. Marked runs are passed
// through hl (nil leaves them plain) and entities are unescaped.
// Nested marks count as a single highlighted run.
func Terminal(snippetHTML string, hl Highlighter) string {
	if snippetHTML == "" {
		return ""
	}

	var sb strings.Builder
	depth := 0
	rest := snippetHTML

	flush := func(segment string) {
		if segment == "" {
			return
		}
		text := html.UnescapeString(segment)
		if depth > 0 && hl != nil {
			text = hl(text)
		}
		sb.WriteString(text)
	}

	for rest != "" {
		open := strings.Index(rest, MarkOpen)
		closing := strings.Index(rest, MarkClose)

		switch {
		case open < 0 && closing < 0:
			flush(rest)
			rest = ""
		case closing < 0 || (open >= 0 && open < closing):
			flush(rest[:open])
			depth++
			rest = rest[open+len(MarkOpen):]
		default:
			flush(rest[:closing])
			if depth > 0 {
				depth--
			}
			rest = rest[closing+len(MarkClose):]
		}
	}

	return sb.String()
}

// PlainText strips highlight marks and unescapes entities.
func PlainText(snippetHTML string) string {
	return Terminal(snippetHTML, nil)
}
