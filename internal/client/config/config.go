package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the jwtdash client.
//
// Fields:
//   - ServerBaseURL: root URL of the backend API; endpoint paths such as
//     "auth/login" are resolved against it.
//   - DatabasePath: SQLite file holding the persisted token, or ":memory:".
//   - RequestTimeout: upper bound for a single API request.
//   - Verbose: enables debug logging.
type Config struct {
	ServerBaseURL  string
	DatabasePath   string
	RequestTimeout time.Duration
	Verbose        bool
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:8080/"
	c.DatabasePath = "jwtdash.db"
	c.RequestTimeout = 10 * time.Second
	c.Verbose = false
}

// LoadConfig builds a Config from defaults, then the JSON file named by
// -c/-config (if any), then command-line flags. Later sources win.
func LoadConfig() *Config {
	return loadFromArgs(os.Args[1:])
}

func loadFromArgs(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
