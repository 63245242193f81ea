package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/rpgkeeper/internal/flagx"
	"github.com/dmitrijs2005/rpgkeeper/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. The token
// secret lives under app_settings.token, mirroring the AppSettings:Token key.
type JsonConfig struct {
	EndpointAddrGRPC string `json:"endpoint_addr_grpc"`
	DatabaseDSN      string `json:"database_dsn"`
	AppSettings      struct {
		Token                 string         `json:"token"`
		TokenValidityDuration timex.Duration `json:"token_validity_duration"`
	} `json:"app_settings"`
	LogLevel       string `json:"log_level"`
	S3RootUser     string `json:"s3_root_user"`
	S3RootPassword string `json:"s3_root_password"`
	S3Bucket       string `json:"s3_bucket"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
}

// parseJson overlays values from the JSON file named by -c/-config. Missing
// flag means nothing to load; keys absent from the file keep their value.
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

	setIfNotEmpty(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setIfNotEmpty(&config.DatabaseDSN, c.DatabaseDSN)
	setIfNotEmpty(&config.TokenSecret, c.AppSettings.Token)
	setIfNotEmpty(&config.TokenValidityDuration, c.AppSettings.TokenValidityDuration.Duration)
	setIfNotEmpty(&config.LogLevel, c.LogLevel)
	setIfNotEmpty(&config.S3RootUser, c.S3RootUser)
	setIfNotEmpty(&config.S3RootPassword, c.S3RootPassword)
	setIfNotEmpty(&config.S3Bucket, c.S3Bucket)
	setIfNotEmpty(&config.S3Region, c.S3Region)
	setIfNotEmpty(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	return nil
}
