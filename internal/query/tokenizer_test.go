package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "punctuation and case", input: "Hello, World!", want: []string{"hello", "world"}},
		{name: "empty", input: "", want: []string{}},
		{name: "whitespace only", input: "  \t\n ", want: []string{}},
		{name: "hyphen and underscore", input: "static-site_generator", want: []string{"static", "site", "generator"}},
		{name: "path and dots", input: "docs/getting.started", want: []string{"docs", "getting", "started"}},
		{name: "colon semicolon question", input: "why:now;really?", want: []string{"why", "now", "really"}},
		{name: "parentheses", input: "(beta) release", want: []string{"beta", "release"}},
		{name: "duplicates kept in order", input: "go Go GO", want: []string{"go", "go", "go"}},
		{name: "other punctuation stays in token", input: "c++ & rust", want: []string{"c++", "&", "rust"}},
		{name: "unicode lowercased", input: "Ärger ÜBER", want: []string{"ärger", "über"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.input)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTokenize_NeverReturnsNil(t *testing.T) {
	// Given: input with no tokens
	// When: tokenizing
	got := Tokenize(" , . ")

	// Then: an empty, non-nil slice comes back
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalize_TrimsWhitespace(t *testing.T) {
	assert.Equal(t, "cats and dogs", Normalize("  cats and dogs \n"))
	assert.Equal(t, "", Normalize("   "))
}

func TestIsSeparator(t *testing.T) {
	for _, r := range " -_/.,:;!?()\t" {
		assert.True(t, IsSeparator(r), "expected %q to separate", r)
	}
	for _, r := range "a1&+#" {
		assert.False(t, IsSeparator(r), "expected %q not to separate", r)
	}
}
