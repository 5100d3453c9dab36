// Package config loads runtime configuration for the ArchWeekly CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c / -config or $ARCHWEEKLY_CONFIG.
//  3. Environment: $ARCHWEEKLY_API_URL.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-a string   base URL of the newsletter API
//	-t int      request timeout (seconds)
//	-d string   path of the session database
//	-f string   output format: text, json, yaml
//	-l string   log level: debug, info, warn, error
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "30s" or
// integer nanoseconds:
//
//	{
//	  "api_base_url": "https://api.archweekly.dev",
//	  "site_url": "https://archweekly.dev",
//	  "request_timeout": "30s",
//	  "workflow_timeout": "5m",
//	  "system_design_timeout": "200s",
//	  "database_path": "/var/lib/archweekly/session.db",
//	  "stale_time": "5m",
//	  "retry_count": 1,
//	  "output_format": "text",
//	  "log_level": "info",
//	  "no_color": false
//	}
//
// Fields missing from the file keep their previous value.
package config
