package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/jwtdash/internal/flagx"
	"github.com/dmitrijs2005/jwtdash/internal/timex"
)

// JsonConfig is the on-disk shape of the config file. Absent fields keep
// their current value.
type JsonConfig struct {
	EndpointAddr                *string         `json:"endpoint_addr"`
	SecretKey                   *string         `json:"secret_key"`
	AccessTokenValidityDuration *timex.Duration `json:"access_token_validity_duration"`
	Users                       []string        `json:"users"`
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

	if jc.EndpointAddr != nil {
		cfg.EndpointAddr = *jc.EndpointAddr
	}
	if jc.SecretKey != nil {
		cfg.SecretKey = *jc.SecretKey
	}
	if jc.AccessTokenValidityDuration != nil {
		cfg.AccessTokenValidityDuration = jc.AccessTokenValidityDuration.Duration
	}
	if jc.Users != nil {
		cfg.Users = jc.Users
	}
}
