package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv("ARCHWEEKLY_CONFIG", "")

	dir := t.TempDir()
	pathFlag := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":     "https://api.example",
		"request_timeout":  "10s",
		"workflow_timeout": "2m",
		"retry_count":      3,
		"no_color":         true,
	})

	t.Run("loads from flags", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", pathFlag}
		cfg := &Config{}
		cfg.LoadDefaults()
		parseJson(cfg)
		assert.Equal(t, "https://api.example", cfg.APIBaseURL)
		assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
		assert.Equal(t, 2*time.Minute, cfg.WorkflowTimeout)
		assert.Equal(t, 3, cfg.RetryCount)
		assert.True(t, cfg.NoColor)

		// not in the file → untouched
		assert.Equal(t, 200*time.Second, cfg.SystemDesignTimeout)
		assert.Equal(t, "archweekly.db", cfg.DatabasePath)
	})

	t.Run("loads from environment", func(t *testing.T) {
		os.Args = []string{"testbin"}
		t.Setenv("ARCHWEEKLY_CONFIG", pathFlag)
		cfg := &Config{}
		parseJson(cfg)
		assert.Equal(t, "https://api.example", cfg.APIBaseURL)
	})

	t.Run("no config → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}
		cfg := &Config{APIBaseURL: "http://defaults:1234", RequestTimeout: 42 * time.Second}
		parseJson(cfg)
		assert.Equal(t, "http://defaults:1234", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.RequestTimeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}
		require.Panics(t, func() { parseJson(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "absent.json")}
		require.Panics(t, func() { parseJson(&Config{}) })
	})
}
