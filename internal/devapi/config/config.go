// Package config handles configuration for the development backend,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the development backend.
//
// Fields:
//   - EndpointAddr: bind address of the HTTP listener.
//   - SecretKey: HMAC secret for signing access tokens (HS256). Development
//     only; never reuse a real secret here.
//   - AccessTokenValidityDuration: lifetime of issued access tokens.
//   - Users: seed accounts as "name:password" or "name:password:admin".
type Config struct {
	EndpointAddr                string
	SecretKey                   string
	AccessTokenValidityDuration time.Duration
	Users                       []string
}

// LoadDefaults populates Config with development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddr = ":8080"
	c.SecretKey = "queenvictoria"
	c.AccessTokenValidityDuration = 10 * time.Minute
	c.Users = []string{"user:password", "admin:admin:admin"}
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
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
