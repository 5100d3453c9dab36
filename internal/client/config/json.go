package config

import (
	"encoding/json"
	"os"

	"github.com/preranah7/archweekly/internal/flagx"
	"github.com/preranah7/archweekly/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell "absent" apart from zero values so a partial file only
// overrides what it names.
type JsonConfig struct {
	APIBaseURL          *string         `json:"api_base_url"`
	SiteURL             *string         `json:"site_url"`
	RequestTimeout      *timex.Duration `json:"request_timeout"`
	WorkflowTimeout     *timex.Duration `json:"workflow_timeout"`
	SystemDesignTimeout *timex.Duration `json:"system_design_timeout"`
	DatabasePath        *string         `json:"database_path"`
	StaleTime           *timex.Duration `json:"stale_time"`
	RetryCount          *int            `json:"retry_count"`
	OutputFormat        *string         `json:"output_format"`
	LogLevel            *string         `json:"log_level"`
	NoColor             *bool           `json:"no_color"`
}

// parseJson overlays cfg with values from the JSON file named by -c/-config
// (or $ARCHWEEKLY_CONFIG). It does nothing when no file is configured and
// panics on read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFile(os.Args[1:])
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}
	jc.apply(cfg)
}

func (jc *JsonConfig) apply(cfg *Config) {
	if jc.APIBaseURL != nil {
		cfg.APIBaseURL = *jc.APIBaseURL
	}
	if jc.SiteURL != nil {
		cfg.SiteURL = *jc.SiteURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.WorkflowTimeout != nil {
		cfg.WorkflowTimeout = jc.WorkflowTimeout.Duration
	}
	if jc.SystemDesignTimeout != nil {
		cfg.SystemDesignTimeout = jc.SystemDesignTimeout.Duration
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.StaleTime != nil {
		cfg.StaleTime = jc.StaleTime.Duration
	}
	if jc.RetryCount != nil {
		cfg.RetryCount = *jc.RetryCount
	}
	if jc.OutputFormat != nil {
		cfg.OutputFormat = *jc.OutputFormat
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.NoColor != nil {
		cfg.NoColor = *jc.NoColor
	}
}
