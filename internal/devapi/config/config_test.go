package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, ":8080", c.EndpointAddr)
	assert.Equal(t, "queenvictoria", c.SecretKey)
	assert.Equal(t, 10*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, []string{"user:password", "admin:admin:admin"}, c.Users)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "127.0.0.1:9090", "-s", "secret", "-t", "2", "-u", "bob:pw, eve:pw:admin,"},
			expected: &Config{
				EndpointAddr:                "127.0.0.1:9090",
				SecretKey:                   "secret",
				AccessTokenValidityDuration: 2 * time.Minute,
				Users:                       []string{"bob:pw", "eve:pw:admin"},
			},
		},
		{name: "bad minutes", args: []string{"-t", "x"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoadFromArgs_Precedence(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr":                  ":7000",
		"secret_key":                     "json",
		"access_token_validity_duration": "30s",
		"users":                          []string{"json:pw"},
	})

	cfg := loadFromArgs([]string{"-config", path, "-s", "flag"})

	assert.Equal(t, ":7000", cfg.EndpointAddr)
	assert.Equal(t, "flag", cfg.SecretKey)
	assert.Equal(t, 30*time.Second, cfg.AccessTokenValidityDuration)
	assert.Equal(t, []string{"json:pw"}, cfg.Users)
}

func TestParseJson_MissingFilePanics(t *testing.T) {
	require.Panics(t, func() { parseJson(&Config{}, []string{"-c", "/does/not/exist.json"}) })
}
