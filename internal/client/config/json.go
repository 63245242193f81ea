package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/rpgkeeper/internal/flagx"
	"github.com/dmitrijs2005/rpgkeeper/internal/timex"
)

type JsonConfig struct {
	ServerEndpointAddr  string         `json:"server_endpoint_addr"`
	SessionDBPath       string         `json:"session_db"`
	OnlineCheckInterval timex.Duration `json:"online_check_interval"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
}

func parseJson(config *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return err
	}

	setIfNotEmpty(&config.ServerEndpointAddr, c.ServerEndpointAddr)
	setIfNotEmpty(&config.SessionDBPath, c.SessionDBPath)
	setIfNotEmpty(&config.OnlineCheckInterval, c.OnlineCheckInterval.Duration)
	setIfNotEmpty(&config.RequestTimeout, c.RequestTimeout.Duration)

	return nil
}
