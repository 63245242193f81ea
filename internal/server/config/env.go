package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// EnvConfig lists the environment variables the server understands.
type EnvConfig struct {
	EndpointAddrGRPC      string        `env:"RPGKEEPER_GRPC_ADDR"`
	DatabaseDSN           string        `env:"DATABASE_DSN"`
	TokenSecret           string        `env:"APPSETTINGS_TOKEN"`
	TokenValidityDuration time.Duration `env:"APPSETTINGS_TOKEN_VALIDITY"`
	LogLevel              string        `env:"LOG_LEVEL"`
	S3RootUser            string        `env:"S3_ROOT_USER"`
	S3RootPassword        string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket              string        `env:"S3_BUCKET"`
	S3Region              string        `env:"S3_REGION"`
	S3BaseEndpoint        string        `env:"S3_BASE_ENDPOINT"`
}

func parseEnv(config *Config) error {
	var e EnvConfig
	if err := env.Parse(&e); err != nil {
		return err
	}

	setIfNotEmpty(&config.EndpointAddrGRPC, e.EndpointAddrGRPC)
	setIfNotEmpty(&config.DatabaseDSN, e.DatabaseDSN)
	setIfNotEmpty(&config.TokenSecret, e.TokenSecret)
	setIfNotEmpty(&config.TokenValidityDuration, e.TokenValidityDuration)
	setIfNotEmpty(&config.LogLevel, e.LogLevel)
	setIfNotEmpty(&config.S3RootUser, e.S3RootUser)
	setIfNotEmpty(&config.S3RootPassword, e.S3RootPassword)
	setIfNotEmpty(&config.S3Bucket, e.S3Bucket)
	setIfNotEmpty(&config.S3Region, e.S3Region)
	setIfNotEmpty(&config.S3BaseEndpoint, e.S3BaseEndpoint)

	return nil
}
