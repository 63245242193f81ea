package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type EnvConfig struct {
	ServerEndpointAddr string        `env:"RPGKEEPER_ADDR"`
	SessionDBPath      string        `env:"RPGKEEPER_SESSION_DB"`
	Token              string        `env:"RPGKEEPER_TOKEN"`
	RequestTimeout     time.Duration `env:"RPGKEEPER_REQUEST_TIMEOUT"`
}

func parseEnv(config *Config) error {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		return err
	}

	setIfNotEmpty(&config.ServerEndpointAddr, e.ServerEndpointAddr)
	setIfNotEmpty(&config.SessionDBPath, e.SessionDBPath)
	setIfNotEmpty(&config.Token, e.Token)
	setIfNotEmpty(&config.RequestTimeout, e.RequestTimeout)

	return nil
}
