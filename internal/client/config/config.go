package config

import "time"

// Config holds runtime settings for the ArchWeekly CLI.
//
// Fields:
//   - APIBaseURL: base address of the newsletter REST API.
//   - SiteURL: public address of the newsletter site, used in referral links.
//   - RequestTimeout: ceiling for ordinary API calls.
//   - WorkflowTimeout: ceiling for the scrape+score+send admin workflow.
//   - SystemDesignTimeout: ceiling for the system-design update trigger.
//   - DatabasePath: SQLite file backing the persisted session.
//   - StaleTime / RetryCount: query cache policy for read views.
//   - OutputFormat: "text", "json" or "yaml".
//   - LogLevel: slog level name for diagnostics on stderr.
//   - NoColor: disables styled text output.
type Config struct {
	APIBaseURL          string
	SiteURL             string
	RequestTimeout      time.Duration
	WorkflowTimeout     time.Duration
	SystemDesignTimeout time.Duration
	DatabasePath        string
	StaleTime           time.Duration
	RetryCount          int
	OutputFormat        string
	LogLevel            string
	NoColor             bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:3000"
	c.SiteURL = "http://localhost:5173"
	c.RequestTimeout = 30 * time.Second
	c.WorkflowTimeout = 5 * time.Minute
	c.SystemDesignTimeout = 200 * time.Second
	c.DatabasePath = "archweekly.db"
	c.StaleTime = 5 * time.Minute
	c.RetryCount = 1
	c.OutputFormat = "text"
	c.LogLevel = "info"
	c.NoColor = false
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
