package ui

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/sitesearch/internal/render"
)

func TestIsTTY_WithBuffer_ReturnsFalse(t *testing.T) {
	assert.False(t, IsTTY(&bytes.Buffer{}))
	assert.False(t, IsTTY(nil))
}

func TestIsTTY_WithRegularFile_ReturnsFalse(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	assert.False(t, IsTTY(f))
	assert.False(t, UseColor(f))
}

func TestDetectNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	assert.True(t, DetectNoColor())
}

func TestDetectCI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.True(t, DetectCI())
}

func TestStylesFor_NonTTYIsPlain(t *testing.T) {
	styles := StylesFor(&bytes.Buffer{})

	assert.False(t, styles.Highlight.GetBold())
}

func TestHighlighter_PlainBrackets(t *testing.T) {
	hl := Highlighter(NoColorStyles(), false)

	got := render.Terminal("<mark>Cats</mark> are great", hl)

	assert.Equal(t, "[Cats] are great", got)
}
