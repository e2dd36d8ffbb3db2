package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jwtdash/internal/flagx"
	"github.com/dmitrijs2005/jwtdash/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Pointer fields tell
// "absent" apart from a zero value so a partial file only overrides what
// it names.
type JsonConfig struct {
	ServerBaseURL  *string         `json:"server_base_url"`
	DatabasePath   *string         `json:"database_path"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	Verbose        *bool           `json:"verbose"`
}

// parseJson overlays cfg with the file given by -c or -config. It panics on
// read or decode errors.
func parseJson(cfg *Config, args []string) {
	path := flagx.ConfigPath(args)
	if path == "" {
		return
	}

	data, err := os.ReadFile(path)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != nil {
		cfg.ServerBaseURL = *jc.ServerBaseURL
	}
	if jc.DatabasePath != nil {
		cfg.DatabasePath = *jc.DatabasePath
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
}
