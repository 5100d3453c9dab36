package config

import (
	"os"
	"strings"
)

// APIURLEnv overrides the API base URL, mirroring the build-time API URL
// variable of the web client.
const APIURLEnv = "ARCHWEEKLY_API_URL"

func parseEnv(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(APIURLEnv)); v != "" {
		cfg.APIBaseURL = v
	}
}
