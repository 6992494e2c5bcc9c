package version

import (
	"encoding/json"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShort_LdflagsVersionWins(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "v1.2.3"

	assert.Equal(t, "v1.2.3", Short())
	assert.Equal(t, "sitesearch/v1.2.3", UserAgent())
}

func TestShort_Dev(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = "dev"

	assert.NotEmpty(t, Short())
}

func TestString(t *testing.T) {
	s := String()

	assert.True(t, strings.HasPrefix(s, "sitesearch "))
	assert.Contains(t, s, "commit:")
	assert.Contains(t, s, runtime.Version())
}

func TestGetInfo_JSON(t *testing.T) {
	data, err := json.Marshal(GetInfo())
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))
	assert.Equal(t, runtime.GOOS, m["os"])
	assert.Equal(t, runtime.GOARCH, m["arch"])
	for _, k := range []string{"version", "commit", "date", "go_version"} {
		assert.Contains(t, m, k)
	}
}
