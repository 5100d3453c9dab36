package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name:     "all flags",
			args:     []string{"cmd", "-a", "http://127.0.0.1:9090", "-t", "10", "-d", "s.db", "-f", "json", "-l", "debug"},
			expected: &Config{APIBaseURL: "http://127.0.0.1:9090", RequestTimeout: 10 * time.Second, DatabasePath: "s.db", OutputFormat: "json", LogLevel: "debug"},
		},
		{
			name:     "foreign flags are ignored",
			args:     []string{"cmd", "-c", "conf.json", "-t", "5", "-x"},
			expected: &Config{RequestTimeout: 5 * time.Second},
		},
		{name: "incorrect timeout", args: []string{"cmd", "-t", "abc"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
