// Package query turns raw search input into normalized search terms.
package query

import (
	"strings"
	"unicode"
)

// separators are the punctuation characters that split terms in addition to whitespace.
const separators = "-_/.,:;!?()"

// Normalize trims surrounding whitespace from a raw query.
func Normalize(raw string) string {
	return strings.TrimSpace(raw)
}

// Tokenize splits text on whitespace and the separator punctuation set.
// All tokens are lowercased and empty tokens are dropped.
// Order is preserved and duplicates are kept.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(text, isSeparator)

	// Return empty slice, not nil, so callers can range and len() uniformly
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		tokens = append(tokens, strings.ToLower(f))
	}
	return tokens
}

// IsSeparator reports whether r splits tokens.
func IsSeparator(r rune) bool {
	return isSeparator(r)
}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(separators, r)
}
