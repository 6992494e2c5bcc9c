package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// isolate points every user-level path at a temp dir and clears
// SITESEARCH_* variables so tests see only their own configuration.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, ".config"))
	for _, key := range []string{"SITESEARCH_ORIGIN", "SITESEARCH_INDEX_URL", "SITESEARCH_ADDR", "SITESEARCH_LOG_LEVEL", "SITESEARCH_MAX_RESULTS"} {
		t.Setenv(key, "")
	}
	t.Chdir(dir)
	return dir
}

// sampleIndex is a small published index with title, summary and body fields.
func sampleIndex(t *testing.T) []byte {
	t.Helper()
	data, err := json.Marshal(map[string]any{
		"fields": []string{"title", "summary", "body"},
		"ref":    "id",
		"documentStore": map[string]any{
			"save": true,
			"docs": map[string]any{
				"/cats/": map[string]any{"id": "/cats/", "title": "Cats", "body": "Cats are great pets for small flats."},
				"/dogs/": map[string]any{"id": "/dogs/", "title": "Dogs", "body": "Dogs are loyal and need walks."},
				"/static-sites/": map[string]any{
					"id":      "/static-sites/",
					"title":   "Static site generators",
					"summary": "Why a static generator is enough",
				},
			},
		},
	})
	require.NoError(t, err)
	return data
}

func writeIndex(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "search_index.en.json")
	require.NoError(t, os.WriteFile(path, sampleIndex(t), 0o644))
	return path
}

// execute runs the root command with args and returns stdout and the error.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}
