package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultStyles_HighlightIsBold(t *testing.T) {
	styles := DefaultStyles()

	assert.True(t, styles.Highlight.GetBold())
	assert.True(t, styles.Header.GetBold())
	assert.True(t, styles.Link.GetUnderline())
}

func TestNoColorStyles_RenderPlain(t *testing.T) {
	styles := NoColorStyles()

	for _, s := range []string{
		styles.Header.Render("x"),
		styles.Highlight.Render("x"),
		styles.Title.Render("x"),
		styles.Link.Render("x"),
	} {
		assert.Equal(t, "x", s)
	}
}

func TestGetStyles(t *testing.T) {
	assert.False(t, GetStyles(true).Highlight.GetBold())
	assert.True(t, GetStyles(false).Highlight.GetBold())
}
