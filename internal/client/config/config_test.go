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

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, "rpgkeeper_session.db", c.SessionDBPath)
	assert.Equal(t, 3*time.Second, c.OnlineCheckInterval)
	assert.Equal(t, 5*time.Second, c.RequestTimeout)
	assert.Empty(t, c.Token)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected *Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "10.0.0.1:9090", "-s", "/tmp/s.db", "-t", "tok", "-i", "10", "-r", "2"},
			expected: &Config{ServerEndpointAddr: "10.0.0.1:9090", SessionDBPath: "/tmp/s.db", Token: "tok",
				OnlineCheckInterval: 10 * time.Second, RequestTimeout: 2 * time.Second},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"-c", "cfg.json", "-x", "1", "-a", "h:1"},
			expected: &Config{ServerEndpointAddr: "h:1"},
		},
		{name: "bad interval", args: []string{"-i", "abc"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}

func TestLoadConfig_Precedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cli.json")
	b, err := json.Marshal(map[string]any{
		"server_endpoint_addr":  "json:1",
		"session_db":            "json.db",
		"online_check_interval": "7s",
		"request_timeout":       "9s",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	t.Setenv("RPGKEEPER_ADDR", "env:2")
	t.Setenv("RPGKEEPER_TOKEN", "env-token")
	t.Setenv("RPGKEEPER_SESSION_DB", "")
	t.Setenv("RPGKEEPER_REQUEST_TIMEOUT", "")

	cfg, err := LoadConfig([]string{"-c", path, "-r", "1"})
	require.NoError(t, err)

	assert.Equal(t, &Config{
		ServerEndpointAddr:  "env:2",
		SessionDBPath:       "json.db",
		Token:               "env-token",
		OnlineCheckInterval: 7 * time.Second,
		RequestTimeout:      time.Second,
	}, cfg)
}

func TestLoadConfig_Errors(t *testing.T) {
	_, err := LoadConfig([]string{"-c", filepath.Join(t.TempDir(), "missing.json")})
	require.Error(t, err)

	t.Setenv("RPGKEEPER_REQUEST_TIMEOUT", "soon")
	_, err = LoadConfig(nil)
	require.Error(t, err)
}
