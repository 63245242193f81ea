package config

import (
	"fmt"
	"time"
)

// Config holds runtime settings for the CLI.
type Config struct {
	ServerEndpointAddr  string
	SessionDBPath       string
	Token               string
	OnlineCheckInterval time.Duration
	RequestTimeout      time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.SessionDBPath = "rpgkeeper_session.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 5 * time.Second
}

// LoadConfig applies defaults, then JSON, environment and flags. args exclude
// the program name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJson(cfg, args); err != nil {
		return nil, fmt.Errorf("json config: %w", err)
	}
	if err := parseEnv(cfg); err != nil {
		return nil, fmt.Errorf("env config: %w", err)
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}

func setIfNotEmpty[T comparable](dst *T, v T) {
	var zero T
	if v != zero {
		*dst = v
	}
}
