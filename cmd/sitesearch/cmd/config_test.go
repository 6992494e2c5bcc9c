package cmd

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aman-CERP/sitesearch/internal/config"
)

func TestConfigPath(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "path")

	require.NoError(t, err)
	assert.Equal(t, config.GetUserConfigPath(), strings.TrimSpace(out))
}

func TestConfigInit_CreatesUserConfig(t *testing.T) {
	// Given: no user config
	isolate(t)

	// When: running config init
	out, err := execute(t, "config", "init")

	// Then: a default config is written
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote user configuration")
	data, err := os.ReadFile(config.GetUserConfigPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "index_url: /search_index.en.json")
}

func TestConfigInit_ExistingWithoutForce(t *testing.T) {
	isolate(t)
	_, err := execute(t, "config", "init")
	require.NoError(t, err)

	out, err := execute(t, "config", "init")

	require.NoError(t, err)
	assert.Contains(t, out, "already exists")
	backups, err := config.ListUserConfigBackups()
	require.NoError(t, err)
	assert.Empty(t, backups)
}

func TestConfigInit_ForceBacksUpAndKeepsValues(t *testing.T) {
	// Given: an existing user config and an origin flag
	isolate(t)
	_, err := execute(t, "config", "init")
	require.NoError(t, err)

	// When: forcing init with an origin
	out, err := execute(t, "--origin", "https://example.com", "config", "init", "--force")

	// Then: the old file is backed up and the new one carries the origin
	require.NoError(t, err)
	assert.Contains(t, out, "Backup:")
	backups, err := config.ListUserConfigBackups()
	require.NoError(t, err)
	assert.Len(t, backups, 1)
	data, err := os.ReadFile(config.GetUserConfigPath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "origin: https://example.com")
}

func TestConfigShow_JSONMerged(t *testing.T) {
	isolate(t)
	t.Setenv("SITESEARCH_ORIGIN", "https://env.example.com")

	out, err := execute(t, "config", "show", "--json")

	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, "https://env.example.com", cfg.Site.Origin)
}

func TestConfigShow_DefaultsYAML(t *testing.T) {
	isolate(t)

	out, err := execute(t, "config", "show", "--source", "defaults")

	require.NoError(t, err)
	assert.Contains(t, out, "max_results: 20")
	assert.Contains(t, out, "debounce: 120ms")
}

func TestConfigShow_UnknownSource(t *testing.T) {
	isolate(t)

	_, err := execute(t, "config", "show", "--source", "user")

	require.Error(t, err)
}
