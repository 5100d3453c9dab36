package config

import (
	"flag"
	"os"
	"time"

	"github.com/preranah7/archweekly/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   API base URL
//	-t int      request timeout in seconds
//	-d string   session database path
//	-f string   output format
//	-l string   log level
//
// Only these flags are looked at (see flagx.FilterArgs), so -c/-config and
// anything else on the command line do not interfere.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-d", "-f", "-l"})
	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "base URL of the newsletter API")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "session database path")
	fs.StringVar(&cfg.OutputFormat, "f", cfg.OutputFormat, "output format: text, json, yaml")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level: debug, info, warn, error")
	if err := fs.Parse(args); err != nil {
		panic(err)
	}
	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
