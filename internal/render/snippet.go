// Package render turns ranked hits into what a results container displays:
// a pure view model of links and highlighted snippets, plus thin adapters that
// write it as HTML or terminal text.
package render

import (
	"html"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/Aman-CERP/sitesearch/internal/query"
)

const (
	// DefaultSnippetLength is the snippet window in characters.
	DefaultSnippetLength = 200

	// Ellipsis marks a window that does not reach the start or end of the text.
	Ellipsis = "…"

	// MarkOpen and MarkClose wrap highlighted matches.
	MarkOpen  = "<mark>"
	MarkClose = "</mark>"
)

// BuildSnippet extracts an escaped window of text around the earliest match of
// any query token and highlights every token occurrence inside it.
//
// Offsets are in characters (runes). The window starts maxLen/3 characters
// before the match. Without tokens or without a match, the first maxLen
// characters are returned escaped, with no marks and no ellipsis.
func BuildSnippet(text, q string, maxLen int) string {
	if text == "" {
		return ""
	}
	if maxLen <= 0 {
		maxLen = DefaultSnippetLength
	}

	runes := []rune(text)
	tokens := query.Tokenize(q)
	if len(tokens) == 0 {
		return EscapeHTML(string(runes[:min(maxLen, len(runes))]))
	}

	offset := earliestMatch(runes, tokens)
	if offset < 0 {
		return EscapeHTML(string(runes[:min(maxLen, len(runes))]))
	}

	start := max(0, offset-maxLen/3)
	end := min(len(runes), start+maxLen)

	snippet := EscapeHTML(string(runes[start:end]))
	for _, token := range tokens {
		snippet = Highlight(snippet, token)
	}

	if start > 0 {
		snippet = Ellipsis + snippet
	}
	if end < len(runes) {
		snippet += Ellipsis
	}
	return snippet
}

// earliestMatch returns the smallest rune offset in the lowercased text at
// which any token occurs, or -1.
func earliestMatch(runes []rune, tokens []string) int {
	// Per-rune lowering keeps rune offsets aligned with the original text.
	lowered := make([]rune, len(runes))
	for i, r := range runes {
		lowered[i] = unicode.ToLower(r)
	}
	haystack := string(lowered)

	best := -1
	for _, token := range tokens {
		if token == "" {
			continue
		}
		i := strings.Index(haystack, token)
		if i < 0 {
			continue
		}
		pos := utf8.RuneCountInString(haystack[:i])
		if best < 0 || pos < best {
			best = pos
		}
	}
	return best
}

// Highlight wraps every case-insensitive occurrence of token in s with marks.
// The token is matched literally; s is expected to be escaped already.
func Highlight(s, token string) string {
	if token == "" || s == "" {
		return s
	}
	re, err := regexp.Compile("(?i)" + regexp.QuoteMeta(token))
	if err != nil {
		return s
	}
	return re.ReplaceAllString(s, MarkOpen+"${0}"+MarkClose)
}

// EscapeHTML escapes &, <, >, " and '.
func EscapeHTML(s string) string {
	return html.EscapeString(s)
}
