package config

import (
	"flag"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/jwtdash/internal/flagx"
)

// parseFlags populates cfg from command-line flags:
//
//	-a string   bind address (e.g. ":8080")
//	-s string   token signing secret
//	-t int      access token validity, minutes
//	-u string   comma-separated seed users, name:password[:admin]
//
// Panics on malformed values.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{"-a", "-s", "-t", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.EndpointAddr, "a", cfg.EndpointAddr, "address and port to run server")
	fs.StringVar(&cfg.SecretKey, "s", cfg.SecretKey, "secret key")
	accessTokenValidityDuration := fs.Int("t", int(cfg.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	users := fs.String("u", strings.Join(cfg.Users, ","), "seed users")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// Unset flags leave defaults and JSON values untouched.
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.AccessTokenValidityDuration = time.Duration(*accessTokenValidityDuration) * time.Minute
		case "u":
			cfg.Users = splitUsers(*users)
		}
	})
}

func splitUsers(s string) []string {
	users := make([]string, 0)
	for _, u := range strings.Split(s, ",") {
		if u = strings.TrimSpace(u); u != "" {
			users = append(users, u)
		}
	}
	return users
}
